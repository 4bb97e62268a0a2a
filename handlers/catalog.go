package handlers

import (
	"net/http"

	catalogRepoPkg "glowtheory/database/repository/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes read-only catalog endpoints for the booking wizard.
type CatalogHandler struct {
	Repo catalogRepoPkg.CatalogRepository
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(repo catalogRepoPkg.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

// ListServicesHandler returns all active services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Repo.GetActiveServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// ListServiceStylistsHandler returns the stylists qualified for a service.
func (h *CatalogHandler) ListServiceStylistsHandler(c *gin.Context) {
	serviceID := c.Param("id")
	stylists, err := h.Repo.GetStylistsForService(serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load stylists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stylists": stylists})
}
