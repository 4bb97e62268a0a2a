package handlers

import (
	"net/http"

	"glowtheory/models"
	"glowtheory/services/sms"
	"glowtheory/utils"

	"github.com/gin-gonic/gin"
)

// SmsHandler exposes the confirmation message endpoint.
type SmsHandler struct {
	Notifier *sms.ConfirmationNotifier
}

// NewSmsHandler creates an SmsHandler.
func NewSmsHandler(notifier *sms.ConfirmationNotifier) *SmsHandler {
	return &SmsHandler{Notifier: notifier}
}

type confirmationAppointment struct {
	ServiceName string  `json:"serviceName" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"` // "HH:MM"
	Price       float64 `json:"price"`
}

// ConfirmationHandler composes and dispatches a booking summary message.
// A delivery failure reports success:false but still answers 200; sending
// the summary never sits on a booking's success path.
func (h *SmsHandler) ConfirmationHandler(c *gin.Context) {
	var req struct {
		Phone        string                    `json:"phone" binding:"required"`
		Appointments []confirmationAppointment `json:"appointments" binding:"required"`
		TotalPrice   float64                   `json:"totalPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone and appointments are required"})
		return
	}

	summaries := make([]models.AppointmentSummary, 0, len(req.Appointments))
	for _, a := range req.Appointments {
		start, err := utils.ClockToMinutes(a.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		summaries = append(summaries, models.AppointmentSummary{
			ServiceName: a.ServiceName,
			Date:        a.Date,
			Start:       start,
			Price:       a.Price,
		})
	}

	phone := utils.NormalizePhone(req.Phone)
	if err := h.Notifier.Notify(c.Request.Context(), phone, summaries, req.TotalPrice); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "confirmation message could not be sent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "confirmation sent"})
}
