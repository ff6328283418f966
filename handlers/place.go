package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PlaceRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	City  string `json:"city"`
}

// GetPlaces lists the active places, name ascending. Public.
func GetPlaces(c *gin.Context) {
	places, err := catalogSvc().ListPlaces()
	if err != nil {
		log.Error().Err(err).Msg("error fetching places")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching places."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// AddPlace creates a place. Admin only.
func AddPlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	place, err := catalogSvc().CreatePlace(actor, req.Name, req.City)
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			validation: "Place name is required.",
			conflict:   "Place with this name already exists.",
			server:     "Error creating place.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Place created successfully.", "place": place})
}

// UpdatePlace renames a place; the delegate cascade runs server-side.
// Admin only.
func UpdatePlace(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("placeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Place not found."})
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	place, err := catalogSvc().RenamePlace(actor, uint(placeID), req.Name, req.City)
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			validation: "Place name is required.",
			conflict:   "Another place with this name already exists.",
			server:     "Error updating place.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place updated successfully.", "place": place})
}

// DeletePlace deactivates a place and purges its delegates. Admin only.
func DeletePlace(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("placeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Place not found."})
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	actor, ok := requireActor(c, req.Email)
	if !ok {
		return
	}
	place, err := catalogSvc().DeletePlace(actor, uint(placeID))
	if err != nil {
		respondCatalogError(c, err, catalogMessages{
			server: "Error deleting place.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Place deactivated and related delegates deleted.",
		"place":   place,
	})
}
