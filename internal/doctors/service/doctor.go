package service

import (
	"context"
	"errors"

	appointmentserrors "github.com/Farhatmahi/dentist-spa-server/internal/appointments/errors"
	doctorserrors "github.com/Farhatmahi/dentist-spa-server/internal/doctors/errors"
	"github.com/Farhatmahi/dentist-spa-server/internal/doctors/repository"
	"github.com/Farhatmahi/dentist-spa-server/internal/doctors/validator"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

// TreatmentSource provides the treatment catalog so a doctor's specialty
// is always anchored to an offered treatment.
type TreatmentSource interface {
	FindByName(ctx context.Context, name string) (*model.AppointmentOption, error)
}

type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error)
	GetAll(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id string) error
}

type doctorService struct {
	repo      repository.DoctorRepository
	options   TreatmentSource
	validator *validator.DoctorValidator
	cfg       *config.Config
}

func NewDoctorService(
	repo repository.DoctorRepository,
	options TreatmentSource,
	validator *validator.DoctorValidator,
	cfg *config.Config,
) DoctorService {
	return &doctorService{
		repo:      repo,
		options:   options,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	if err := s.validator.Validate(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "error", err)
		return nil, apperrors.Validation("Doctor validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.options.FindByName(ctx, doctor.Specialty); err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.Validation("Unknown specialty", map[string]any{"specialty": doctor.Specialty})
		}
		return nil, apperrors.Unavailable("document store", err)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		s.cfg.Log.Error("Failed to create doctor", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	s.cfg.Log.Info("Doctor created successfully", "id", doctor.ID, "name", doctor.Name, "specialty", doctor.Specialty)
	return doctor, nil
}

func (s *doctorService) GetAll(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}
	return doctors, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Doctor", id)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid doctor ID format")
		}
		s.cfg.Log.Error("Failed to delete doctor", "id", id, "error", err)
		return apperrors.Unavailable("document store", err)
	}

	s.cfg.Log.Info("Doctor deleted", "id", id)
	return nil
}
