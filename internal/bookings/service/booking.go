package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	appointmentserrors "github.com/Farhatmahi/dentist-spa-server/internal/appointments/errors"
	bookingserrors "github.com/Farhatmahi/dentist-spa-server/internal/bookings/errors"
	"github.com/Farhatmahi/dentist-spa-server/internal/bookings/repository"
	"github.com/Farhatmahi/dentist-spa-server/internal/bookings/validator"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/events"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

// TreatmentSource is the slice of the appointment-option repository the
// guard needs to check a booking against the catalog.
type TreatmentSource interface {
	FindByName(ctx context.Context, name string) (*model.AppointmentOption, error)
}

type BookingService interface {
	// Create enforces at-most-one-active-booking-per-(patient, date,
	// treatment) and rejects duplicates with a Conflict error naming the
	// date. Validation failures never reach the repository.
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	options   TreatmentSource
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	options TreatmentSource,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		options:   options,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.Paid = false
	booking.TransactionID = ""

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	option, err := s.options.FindByName(ctx, booking.Treatment)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.Validation("Unknown treatment", map[string]any{"treatment": booking.Treatment})
		}
		return nil, apperrors.Unavailable("document store", err)
	}
	if !slices.Contains(option.Slots, booking.Slot) {
		return nil, apperrors.Validation("Slot is not offered for this treatment", map[string]any{
			"treatment": booking.Treatment,
			"slot":      booking.Slot,
		})
	}
	booking.Price = option.Price

	// The duplicate check and the insert are two separate operations, so
	// concurrent submissions can both pass the check; the guard covers
	// repeat submissions from one patient, not same-slot races between
	// different patients. Last write wins on those.
	existing, err := s.repo.CountByTriple(ctx, booking.Email, booking.AppointmentDate, booking.Treatment)
	if err != nil {
		s.cfg.Log.Error("Failed to check existing bookings", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}
	if existing > 0 {
		return nil, apperrors.Conflict(fmt.Sprintf("You already have a booking on %s", booking.AppointmentDate))
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	if err := s.publisher.PublishBookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking created event", "id", booking.ID, "error", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"email", booking.Email,
		"treatment", booking.Treatment,
		"date", booking.AppointmentDate,
		"slot", booking.Slot,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Unavailable("document store", err)
	}

	return booking, nil
}

func (s *bookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "email", email, "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	return bookings, nil
}
