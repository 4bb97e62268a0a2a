package sms

import (
	"context"
	"fmt"
	"strings"

	"glowtheory/models"
	"glowtheory/utils"

	"go.uber.org/zap"
)

// ConfirmationNotifier composes and dispatches the post-booking summary
// message. Dispatch is best effort: a failed confirmation never invalidates
// a completed booking, so callers log and move on.
type ConfirmationNotifier struct {
	Sender Sender
}

// Notify sends one message listing every confirmed appointment and the
// aggregate price.
func (n *ConfirmationNotifier) Notify(ctx context.Context, phone string, appointments []models.AppointmentSummary, totalPrice float64) error {
	if len(appointments) == 0 {
		return fmt.Errorf("no appointments to confirm")
	}

	message := ComposeConfirmation(appointments, totalPrice)
	if err := n.Sender.Send(ctx, phone, message); err != nil {
		utils.GetLogger().Error("Failed to send booking confirmation",
			zap.String("phone", phone), zap.Error(err))
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

// ComposeConfirmation renders the customer-facing summary text.
func ComposeConfirmation(appointments []models.AppointmentSummary, totalPrice float64) string {
	var b strings.Builder
	b.WriteString("Glow Theory: your appointments are confirmed.\n")
	for _, a := range appointments {
		b.WriteString(fmt.Sprintf("- %s on %s at %s\n",
			a.ServiceName, utils.FormatDate(a.Date), utils.MinutesTo12Hour(a.Start)))
	}
	b.WriteString(fmt.Sprintf("Total: LKR %.2f. See you soon!", totalPrice))
	return b.String()
}
