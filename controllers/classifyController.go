package controllers

import (
	"net/http"

	"civiclens/location"
	"civiclens/models"

	"github.com/gin-gonic/gin"
)

// ClassifyIssue previews the category, department and report for a description
// without storing anything.
func (ic *IssueController) ClassifyIssue(c *gin.Context) {
	var input struct {
		Description string           `json:"description" binding:"max=5000"`
		Location    *models.Location `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := ic.service.Preview(input.Description, input.Location)
	if err != nil {
		ic.respondError(c, err, "Failed to classify issue")
		return
	}

	c.JSON(http.StatusOK, preview)
}

// GeocodeLocation resolves either device coordinates or a typed address into a location.
// Coordinates win when both are sent.
func (ic *IssueController) GeocodeLocation(c *gin.Context) {
	var input struct {
		Address   string   `json:"address" binding:"max=300"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Latitude != nil && input.Longitude != nil {
		c.JSON(http.StatusOK, location.FromCoordinates(*input.Latitude, *input.Longitude))
		return
	}

	loc, err := ic.service.Geocode(input.Address)
	if err != nil {
		ic.respondError(c, err, "Failed to geocode address")
		return
	}

	c.JSON(http.StatusOK, loc)
}
