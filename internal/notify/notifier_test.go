package notify

import (
	"context"
	"testing"

	"github.com/neighbourgood/booking/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func sampleEvent(eventType string) kafka.BookingEvent {
	return kafka.BookingEvent{
		Type:          eventType,
		BookingID:     7,
		ResourceID:    10,
		ResourceTitle: "Cordless drill",
		OwnerID:       1,
		BorrowerID:    2,
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-03",
	}
}

func TestComposeNotification_recipients(t *testing.T) {
	cases := []struct {
		eventType string
		recipient int64
	}{
		{"booking_requested", 1},
		{"booking_approved", 2},
		{"booking_rejected", 2},
		{"booking_cancelled", 1},
		{"booking_completed", 2},
		{"booking_return_due", 2},
	}
	for _, tc := range cases {
		t.Run(tc.eventType, func(t *testing.T) {
			recipient, message := composeNotification(sampleEvent(tc.eventType))
			assert.Equal(t, tc.recipient, recipient)
			assert.NotEmpty(t, message)
		})
	}
}

func TestComposeNotification_unknownType(t *testing.T) {
	recipient, message := composeNotification(sampleEvent("booking_exploded"))
	assert.Zero(t, recipient)
	assert.Empty(t, message)
}

func TestSender_SendUnknownTypeIsDropped(t *testing.T) {
	sender := NewSender(nil)
	assert.NoError(t, sender.Send(context.Background(), sampleEvent("booking_exploded")))
}
