package handlers

import (
	"errors"
	"net/http"

	"glowtheory/services/otp"

	"github.com/gin-gonic/gin"
)

// OtpHandler exposes the phone verification endpoints.
type OtpHandler struct {
	Service otp.OtpService
}

// NewOtpHandler creates an OtpHandler.
func NewOtpHandler(service otp.OtpService) *OtpHandler {
	return &OtpHandler{Service: service}
}

// SendOTPHandler issues a verification code for a phone number.
func (h *OtpHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone number is required"})
		return
	}

	result, err := h.Service.Issue(c.Request.Context(), req.Phone)
	if err != nil {
		var deliveryErr *otp.DeliveryError
		switch {
		case errors.Is(err, otp.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": err.Error()})
		case errors.As(err, &deliveryErr):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "code stored but could not be delivered; retry after the cooldown"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to send verification code"})
		}
		return
	}

	resp := gin.H{"success": true, "message": result.Message}
	if result.DebugCode != "" {
		resp["code"] = result.DebugCode
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTPHandler checks a submitted code and returns a session bundle.
func (h *OtpHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone and otp are required"})
		return
	}

	session, err := h.Service.Verify(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		var sessionErr *otp.SessionError
		switch {
		case errors.Is(err, otp.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, otp.ErrExpiredOrMissing), errors.Is(err, otp.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.As(err, &sessionErr):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "verification succeeded but session setup failed; retry with the same code request"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}
