package handlers

import (
	"net/http"
	"strconv"

	"glowtheory/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the slot computation endpoint.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(service availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: service}
}

// GetSlotsHandler computes slots for either a named stylist
// (?stylistId=&date=&duration=) or a service across all qualified stylists
// (?serviceId=&date=).
func (h *AvailabilityHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date is required"})
		return
	}

	if stylistID := c.Query("stylistId"); stylistID != "" {
		duration, err := strconv.Atoi(c.Query("duration"))
		if err != nil || duration <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "a positive duration is required"})
			return
		}
		slots, err := h.Service.StylistSlots(c.Request.Context(), stylistID, date, duration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
		return
	}

	if serviceID := c.Query("serviceId"); serviceID != "" {
		slots, err := h.Service.ServiceSlots(c.Request.Context(), serviceID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "stylistId or serviceId is required"})
}
