package handlers

import (
	"errors"
	"net/http"

	"ontheway-api/catalog"
	"ontheway-api/config"
	"ontheway-api/identity"
	"ontheway-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func catalogSvc() *catalog.Service {
	return catalog.NewService(config.DB)
}

// requireActor resolves the actor email (verified token first, body
// fallback) or writes the 400 the admin check documents.
func requireActor(c *gin.Context, bodyEmail string) (string, bool) {
	actor := middleware.ActorEmail(c, bodyEmail)
	if actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required for admin check."})
		return "", false
	}
	return actor, true
}

func identitySvc() *identity.Service {
	return identity.NewService(config.DB)
}

// catalogMessages are the user-facing texts an endpoint substitutes for
// the shared catalog error kinds. The frontend shows them verbatim.
type catalogMessages struct {
	validation string
	conflict   string
	server     string
}

// respondCatalogError maps catalog sentinel errors onto the HTTP surface.
// Raw storage errors are logged and replaced with a generic message.
func respondCatalogError(c *gin.Context, err error, msgs catalogMessages) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgs.validation})
	case errors.Is(err, catalog.ErrPlaceExists):
		c.JSON(http.StatusConflict, gin.H{"message": msgs.conflict})
	case errors.Is(err, catalog.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	case errors.Is(err, catalog.ErrPlaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Place not found."})
	case errors.Is(err, catalog.ErrDelegateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Delegate not found."})
	case errors.Is(err, catalog.ErrNotAdmin):
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized. Admins only."})
	default:
		log.Error().Err(err).Msg(msgs.server)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgs.server})
	}
}
