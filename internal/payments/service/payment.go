package service

import (
	"context"
	"errors"
	"math"

	bookingserrors "github.com/Farhatmahi/dentist-spa-server/internal/bookings/errors"
	bookingsrepo "github.com/Farhatmahi/dentist-spa-server/internal/bookings/repository"
	"github.com/Farhatmahi/dentist-spa-server/internal/payments/gateway"
	"github.com/Farhatmahi/dentist-spa-server/internal/payments/repository"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/events"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentService interface {
	// Initiate asks the gateway for an intent covering the booking's price,
	// converted to minor units.
	Initiate(ctx context.Context, bookingID string) (*model.PaymentIntent, error)
	// Complete marks the booking paid and records the payment in one
	// transaction. A booking that is already paid is never paid twice.
	Complete(ctx context.Context, confirmation *model.PaymentConfirmation) (*model.Payment, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	bookings  bookingsrepo.BookingRepository
	gateway   gateway.Gateway
	publisher events.Publisher
	cfg       *config.Config
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings bookingsrepo.BookingRepository,
	gw gateway.Gateway,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		payments:  payments,
		bookings:  bookings,
		gateway:   gw,
		publisher: publisher,
		cfg:       cfg,
	}
}

// minorUnits converts a decimal price to the gateway's integer minor-unit
// amount. Rounding guards against float drift on prices like 19.99.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *paymentService) Initiate(ctx context.Context, bookingID string) (*model.PaymentIntent, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Unavailable("document store", err)
	}

	if booking.Paid {
		return nil, apperrors.Conflict("Booking is already paid")
	}

	intent, err := s.gateway.CreateIntent(ctx, minorUnits(booking.Price), s.cfg.PaymentCurrency)
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "booking_id", bookingID, "error", err)
		return nil, apperrors.Unavailable("payment gateway", err)
	}

	s.cfg.Log.Info("Payment intent created", "booking_id", bookingID, "amount", intent.Amount, "currency", intent.Currency)
	return intent, nil
}

func (s *paymentService) Complete(ctx context.Context, confirmation *model.PaymentConfirmation) (*model.Payment, error) {
	if confirmation.BookingID == "" || confirmation.TransactionID == "" {
		return nil, apperrors.InvalidInput("Booking ID and transaction ID are required")
	}

	var payment *model.Payment
	err := s.bookings.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking, err := s.bookings.FindByID(sessCtx, confirmation.BookingID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", confirmation.BookingID)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return err
		}

		if booking.Paid {
			return apperrors.Conflict("Booking is already paid")
		}

		if err := s.bookings.MarkPaid(sessCtx, booking.ID, confirmation.TransactionID); err != nil {
			return err
		}

		payment = &model.Payment{
			BookingID:     booking.ID,
			TransactionID: confirmation.TransactionID,
			Amount:        minorUnits(booking.Price),
		}
		return s.payments.Insert(sessCtx, payment)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Payment reconciliation failed", "booking_id", confirmation.BookingID, "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	if err := s.publisher.PublishBookingPaid(ctx, payment.BookingID, payment.TransactionID, payment.Amount); err != nil {
		s.cfg.Log.Warn("Failed to publish booking paid event", "booking_id", payment.BookingID, "error", err)
	}

	s.cfg.Log.Info("Payment reconciled",
		"booking_id", payment.BookingID,
		"transaction_id", payment.TransactionID,
		"amount", payment.Amount,
	)
	return payment, nil
}
