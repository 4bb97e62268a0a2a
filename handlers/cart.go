package handlers

import (
	"errors"
	"net/http"

	"glowtheory/models"
	"glowtheory/services/checkout"
	"glowtheory/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes cart assembly and checkout endpoints.
type CartHandler struct {
	Service checkout.CheckoutService
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(service checkout.CheckoutService) *CartHandler {
	return &CartHandler{Service: service}
}

// CreateCartHandler opens an empty cart session.
func (h *CartHandler) CreateCartHandler(c *gin.Context) {
	cart, err := h.Service.CreateCart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// GetCartHandler returns the cart with its current totals.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	cart, err := h.Service.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, checkout.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"cart":          cart,
		"totalPrice":    cart.TotalPrice(),
		"totalDuration": cart.TotalDuration(),
	})
}

// AddCartItemHandler validates and stores one pending appointment.
func (h *CartHandler) AddCartItemHandler(c *gin.Context) {
	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
		StylistID string `json:"stylistId" binding:"required"` // concrete id or "any"
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"` // "HH:MM"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "serviceId, stylistId, date and time are required"})
		return
	}
	start, err := utils.ClockToMinutes(req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cart, err := h.Service.AddItem(c.Request.Context(), c.Param("id"), models.CartItem{
		ServiceID: req.ServiceID,
		StylistID: req.StylistID,
		Date:      req.Date,
		Start:     start,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, checkout.ErrCartConflict), errors.Is(err, checkout.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// RemoveCartItemHandler drops one item from the cart.
func (h *CartHandler) RemoveCartItemHandler(c *gin.Context) {
	cart, err := h.Service.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, checkout.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// CheckoutHandler submits every cart item sequentially. Partial failure is
// surfaced with the bookings that were committed so the caller never
// re-submits appointments that already exist.
func (h *CartHandler) CheckoutHandler(c *gin.Context) {
	var req struct {
		Customer models.Customer `json:"customer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "customer details are required"})
		return
	}

	result, err := h.Service.Submit(c.Request.Context(), c.Param("id"), req.Customer)
	if err != nil {
		var partial *checkout.PartialBookingError
		switch {
		case errors.As(err, &partial):
			c.JSON(http.StatusMultiStatus, gin.H{
				"success":         false,
				"error":           "some appointments could not be booked",
				"createdBookings": partial.Created,
				"failedItemId":    partial.FailedItemID,
			})
		case errors.Is(err, checkout.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to submit bookings"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   result.Bookings,
		"totalPrice": result.TotalPrice,
	})
}
