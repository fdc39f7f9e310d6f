package model

import "time"

// DateLayout is the wire format for appointment dates. Dates are calendar
// days with no time component.
const DateLayout = "2006-01-02"

type Booking struct {
	ID              string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Treatment       string    `json:"treatment" bson:"treatment" validate:"required,min=2,max=100"`
	AppointmentDate string    `json:"appointmentDate" bson:"appointmentDate" validate:"required,datetime=2006-01-02"`
	Slot            string    `json:"slot" bson:"slot" validate:"required"`
	Price           float64   `json:"price" bson:"price" validate:"omitempty,gt=0"`
	Paid            bool      `json:"paid" bson:"paid"`
	TransactionID   string    `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// BookingAck is the rejection payload for duplicate bookings. The portal
// client expects a 200 response with acknowledged=false rather than an HTTP
// error status, so the shape is preserved as-is.
type BookingAck struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message,omitempty"`
}
