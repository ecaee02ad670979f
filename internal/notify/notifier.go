package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neighbourgood/booking/internal/kafka"
)

// Sender delivers booking notifications to members. Delivery here logs the
// message; a real channel (email, telegram) plugs in behind the same
// interface without touching the worker loop.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	if log == nil {
		log = slog.Default()
	}
	return &Sender{log: log}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	recipient, message := composeNotification(event)
	if recipient == 0 {
		s.log.Warn("no recipient for event", "type", event.Type, "booking_id", event.BookingID)
		return nil
	}
	s.log.Info("notify", "user_id", recipient, "booking_id", event.BookingID, "message", message)
	return nil
}

// composeNotification picks who hears about an event and what they are
// told. Requests and cancellations concern the owner; verdicts and
// reminders concern the borrower.
func composeNotification(event kafka.BookingEvent) (recipient int64, message string) {
	window := fmt.Sprintf("%s to %s", event.StartDate, event.EndDate)
	switch event.Type {
	case "booking_requested":
		return event.OwnerID, fmt.Sprintf("New borrow request for %q (%s)", event.ResourceTitle, window)
	case "booking_approved":
		return event.BorrowerID, fmt.Sprintf("Your request for %q was approved (%s)", event.ResourceTitle, window)
	case "booking_rejected":
		return event.BorrowerID, fmt.Sprintf("Your request for %q was declined", event.ResourceTitle)
	case "booking_cancelled":
		return event.OwnerID, fmt.Sprintf("The booking of %q (%s) was cancelled", event.ResourceTitle, window)
	case "booking_completed":
		return event.BorrowerID, fmt.Sprintf("Your booking of %q is marked returned", event.ResourceTitle)
	case "booking_return_due":
		return event.BorrowerID, fmt.Sprintf("Reminder: %q was due back on %s", event.ResourceTitle, event.EndDate)
	}
	return 0, ""
}
