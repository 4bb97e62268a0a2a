package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// OTP endpoints.
	SendOTPHandler   gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc

	// SMS endpoints.
	ConfirmationHandler gin.HandlerFunc

	// Catalog endpoints.
	ListServicesHandler        gin.HandlerFunc
	ListServiceStylistsHandler gin.HandlerFunc

	// Availability endpoints.
	GetSlotsHandler gin.HandlerFunc

	// Cart and checkout endpoints.
	CreateCartHandler     gin.HandlerFunc
	GetCartHandler        gin.HandlerFunc
	AddCartItemHandler    gin.HandlerFunc
	RemoveCartItemHandler gin.HandlerFunc
	CheckoutHandler       gin.HandlerFunc
}
