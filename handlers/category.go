package handlers

import (
	"net/http"

	"github.com/KevinKupervaser/demoflores/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

// GetCategories returns the fixed category list the shop organizes
// products under.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}
