package handlers

import (
	"net/http"
	"strconv"

	"ontheway-api/catalog"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DelegateRequest struct {
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	Fee    *float64 `json:"fee"`
	Rating float64  `json:"rating"`
	Avatar string   `json:"avatar"`
	Place  string   `json:"place"`
}

// GetDelegates lists every delegate, name ascending. Admin panel view,
// but read-only and therefore open.
func GetDelegates(c *gin.Context) {
	delegates, err := catalogSvc().ListDelegates()
	if err != nil {
		log.Error().Err(err).Msg("error fetching delegates")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching delegates."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"delegates": delegates})
}

// GetDelegatesForPlace lists a place's delegates cheapest-first. The
// client treats the first entry as the recommended option. Public.
func GetDelegatesForPlace(c *gin.Context) {
	delegates, err := catalogSvc().ListDelegatesForPlace(c.Param("placeName"))
	if err != nil {
		log.Error().Err(err).Msg("error fetching delegates")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching delegates."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"delegates": delegates})
}

// AddDelegate creates a delegate under an existing place. Admin only.
func AddDelegate(c *gin.Context) {
	var req DelegateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Fee == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, phone, fee and place are required."})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	delegate, err := catalogSvc().CreateDelegate(actor, catalog.DelegateParams{
		Name:   req.Name,
		Phone:  req.Phone,
		Fee:    *req.Fee,
		Rating: req.Rating,
		Avatar: req.Avatar,
		Place:  req.Place,
	})
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			validation: "Name, phone, fee and place are required.",
			server:     "Error creating delegate.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Delegate created successfully.", "delegate": delegate})
}

// UpdateDelegate rewrites a delegate, optionally repointing it to another
// place. Admin only.
func UpdateDelegate(c *gin.Context) {
	delegateID, err := strconv.ParseUint(c.Param("delegateId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Delegate not found."})
		return
	}

	var req DelegateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Fee == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, phone and fee are required."})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	delegate, err := catalogSvc().UpdateDelegate(actor, uint(delegateID), catalog.DelegateParams{
		Name:   req.Name,
		Phone:  req.Phone,
		Fee:    *req.Fee,
		Rating: req.Rating,
		Avatar: req.Avatar,
		Place:  req.Place,
	})
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			validation: "Name, phone and fee are required.",
			server:     "Error updating delegate.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delegate updated successfully.", "delegate": delegate})
}

// DeleteDelegate removes one delegate. Admin only.
func DeleteDelegate(c *gin.Context) {
	delegateID, err := strconv.ParseUint(c.Param("delegateId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Delegate not found."})
		return
	}

	var req DelegateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	delegate, err := catalogSvc().DeleteDelegate(actor, uint(delegateID))
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			server: "Error deleting delegate.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delegate deleted successfully.", "delegate": delegate})
}
