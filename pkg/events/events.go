package events

import (
	"context"
	"time"

	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingPaid    = "booking.paid"
)

// Envelope is the wire format for booking lifecycle events.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type BookingCreated struct {
	BookingID       string `json:"bookingId"`
	Email           string `json:"email"`
	Treatment       string `json:"treatment"`
	AppointmentDate string `json:"appointmentDate"`
	Slot            string `json:"slot"`
}

type BookingPaid struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort:
// callers log failures and never fail the originating request over them.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, booking *model.Booking) error
	PublishBookingPaid(ctx context.Context, bookingID, transactionID string, amount int64) error
	Close() error
}

// NopPublisher is used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, *model.Booking) error { return nil }

func (NopPublisher) PublishBookingPaid(context.Context, string, string, int64) error { return nil }

func (NopPublisher) Close() error { return nil }
