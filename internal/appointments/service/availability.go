package service

import (
	"context"
	"strings"
	"time"

	"github.com/Farhatmahi/dentist-spa-server/internal/appointments/repository"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

// BookingSource is the slice of the booking repository the resolver needs.
type BookingSource interface {
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
}

type AvailabilityService interface {
	// Resolve returns every appointment option with its slot list reduced to
	// the slots not yet booked on date. An absent or malformed date means
	// "no date filter": full slot lists come back unchanged.
	Resolve(ctx context.Context, date string) ([]*model.AppointmentOption, error)
	Treatments(ctx context.Context) ([]string, error)
}

type availabilityService struct {
	options  repository.AppointmentOptionRepository
	bookings BookingSource
	cfg      *config.Config
}

func NewAvailabilityService(
	options repository.AppointmentOptionRepository,
	bookings BookingSource,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		options:  options,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *availabilityService) Resolve(ctx context.Context, date string) ([]*model.AppointmentOption, error) {
	appointmentOptions, err := s.options.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load appointment options", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return appointmentOptions, nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		s.cfg.Log.Warn("Ignoring malformed date filter", "date", date)
		return appointmentOptions, nil
	}

	booked, err := s.bookings.FindByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for date", "date", date, "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	takenByTreatment := make(map[string]map[string]struct{}, len(booked))
	for _, booking := range booked {
		taken, ok := takenByTreatment[booking.Treatment]
		if !ok {
			taken = make(map[string]struct{})
			takenByTreatment[booking.Treatment] = taken
		}
		taken[booking.Slot] = struct{}{}
	}

	// The filtering is a response view only; stored options are never
	// mutated, so options without bookings pass through untouched.
	resolved := make([]*model.AppointmentOption, 0, len(appointmentOptions))
	for _, option := range appointmentOptions {
		taken := takenByTreatment[option.Name]
		if len(taken) == 0 {
			resolved = append(resolved, option)
			continue
		}

		view := *option
		view.Slots = make([]string, 0, len(option.Slots))
		for _, slot := range option.Slots {
			if _, used := taken[slot]; !used {
				view.Slots = append(view.Slots, slot)
			}
		}
		resolved = append(resolved, &view)
	}

	return resolved, nil
}

func (s *availabilityService) Treatments(ctx context.Context) ([]string, error) {
	names, err := s.options.DistinctNames(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list treatments", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}
	return names, nil
}
