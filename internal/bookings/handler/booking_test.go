package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authmiddleware "github.com/Farhatmahi/dentist-spa-server/internal/auth/middleware"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc     func(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	getByEmailFunc func(ctx context.Context, email string) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "65a000000000000000000001"
	return booking, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockTokenService struct {
	verifyFunc func(tokenString string) (string, error)
}

func (m *mockTokenService) IssueToken(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (m *mockTokenService) VerifyToken(tokenString string) (string, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(tokenString)
	}
	return "patient@example.com", nil
}

type mockRoleChecker struct{}

func (mockRoleChecker) IsAdmin(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.TEXT,
		Service: "test",
	})
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	auth := authmiddleware.NewAuthenticator(&mockTokenService{}, mockRoleChecker{}, testLogger())
	router := httprouter.New()
	NewBookingHandler(svc, auth, testLogger()).RegisterRoutes(router)
	return router
}

func TestCreate_DuplicateReturns200WithAck(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
			return nil, apperrors.Conflict("You already have a booking on 2024-01-01")
		},
	}
	router := newRouter(svc)

	body := `{"email":"patient@example.com","treatment":"Teeth Cleaning","appointmentDate":"2024-01-01","slot":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("duplicate booking must answer 200, got %d", rec.Code)
	}

	var ack model.BookingAck
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if ack.Acknowledged {
		t.Error("expected acknowledged=false")
	}
	if ack.Message != "You already have a booking on 2024-01-01" {
		t.Errorf("unexpected message %q", ack.Message)
	}
}

func TestCreate_Success(t *testing.T) {
	router := newRouter(&mockBookingService{})

	body := `{"email":"patient@example.com","treatment":"Teeth Cleaning","appointmentDate":"2024-01-01","slot":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var created model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected assigned booking ID in response")
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestGetByEmail_RequiresCredential(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/booking?email=patient@example.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a credential, got %d", rec.Code)
	}
}

func TestGetByEmail_OwnerOnly(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/booking?email=other@example.com", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for another owner's email, got %d", rec.Code)
	}
}

func TestGetByEmail_Owner(t *testing.T) {
	svc := &mockBookingService{
		getByEmailFunc: func(ctx context.Context, email string) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "65a000000000000000000001", Email: email}}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/booking?email=patient@example.com", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d", rec.Code)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("expected one booking, got %d", len(bookings))
	}
}
