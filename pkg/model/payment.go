package model

import "time"

// Payment records one reconciled gateway transaction. Exactly one Payment
// exists per paid booking.
type Payment struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	BookingID     string    `json:"bookingId" bson:"bookingId" validate:"required"`
	TransactionID string    `json:"transactionId" bson:"transactionId" validate:"required"`
	Amount        int64     `json:"amount" bson:"amount"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// PaymentIntentRequest asks the gateway for an intent sized to the booking's
// price.
type PaymentIntentRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
}

// PaymentIntent carries the client-usable secret back to the browser.
// Amount is in the gateway's minor-unit convention (cents for a two-decimal
// currency).
type PaymentIntent struct {
	ID           string `json:"id,omitempty"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentConfirmation is the client's report of a completed gateway charge,
// keyed by the booking it settles.
type PaymentConfirmation struct {
	BookingID     string `json:"bookingId" validate:"required"`
	TransactionID string `json:"transactionId" validate:"required"`
}
