package service

import (
	"context"
	"errors"
	"testing"

	bookingserrors "github.com/Farhatmahi/dentist-spa-server/internal/bookings/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	mongotx "github.com/Farhatmahi/dentist-spa-server/pkg/db/mongo"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/events"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepository struct {
	findByIDFunc   func(ctx context.Context, id string) (*model.Booking, error)
	markPaidFunc   func(ctx context.Context, id, transactionID string) error
	markPaidCalled bool
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Booking{ID: id, Email: "patient@example.com", Price: 30}, nil
}

func (m *mockBookingRepository) FindByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) CountByTriple(ctx context.Context, email, date, treatment string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) MarkPaid(ctx context.Context, id, transactionID string) error {
	m.markPaidCalled = true
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, transactionID)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockPaymentRepository struct {
	insertFunc      func(ctx context.Context, payment *model.Payment) error
	insertedPayment *model.Payment
	insertCount     int
}

func (m *mockPaymentRepository) Insert(ctx context.Context, payment *model.Payment) error {
	m.insertCount++
	m.insertedPayment = payment
	if m.insertFunc != nil {
		return m.insertFunc(ctx, payment)
	}
	payment.ID = "65a000000000000000000042"
	return nil
}

func (m *mockPaymentRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*model.Payment, error) {
	return nil, nil
}

type mockGateway struct {
	createIntentFunc func(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, amount, currency)
	}
	return &model.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		PaymentCurrency: "usd",
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.TEXT,
			Service: "test",
		}),
	}
}

func newTestService(bookings *mockBookingRepository, payments *mockPaymentRepository, gw *mockGateway) PaymentService {
	return NewPaymentService(payments, bookings, gw, events.NopPublisher{}, testConfig())
}

func TestInitiate_ConvertsPriceToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{price: 30, want: 3000},
		{price: 19.99, want: 1999},
		{price: 0.1, want: 10},
		{price: 123.455, want: 12346},
	}

	for _, tt := range tests {
		bookings := &mockBookingRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
				return &model.Booking{ID: id, Price: tt.price}, nil
			},
		}
		svc := newTestService(bookings, &mockPaymentRepository{}, &mockGateway{})

		intent, err := svc.Initiate(context.Background(), "65a000000000000000000001")
		if err != nil {
			t.Fatalf("price %v: expected no error, got %v", tt.price, err)
		}
		if intent.Amount != tt.want {
			t.Errorf("price %v: expected %d minor units, got %d", tt.price, tt.want, intent.Amount)
		}
		if intent.Currency != "usd" {
			t.Errorf("expected configured currency, got %q", intent.Currency)
		}
	}
}

func TestInitiate_BookingNotFound(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(bookings, &mockPaymentRepository{}, &mockGateway{})

	_, err := svc.Initiate(context.Background(), "65a000000000000000000099")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestInitiate_AlreadyPaid(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Price: 30, Paid: true}, nil
		},
	}
	svc := newTestService(bookings, &mockPaymentRepository{}, &mockGateway{})

	_, err := svc.Initiate(context.Background(), "65a000000000000000000001")
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestInitiate_GatewayDown(t *testing.T) {
	gw := &mockGateway{
		createIntentFunc: func(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(&mockBookingRepository{}, &mockPaymentRepository{}, gw)

	_, err := svc.Initiate(context.Background(), "65a000000000000000000001")
	if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestComplete_Success(t *testing.T) {
	bookings := &mockBookingRepository{}
	payments := &mockPaymentRepository{}
	svc := newTestService(bookings, payments, &mockGateway{})

	payment, err := svc.Complete(context.Background(), &model.PaymentConfirmation{
		BookingID:     "65a000000000000000000001",
		TransactionID: "txn_123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bookings.markPaidCalled {
		t.Error("expected booking to be marked paid")
	}
	if payments.insertCount != 1 {
		t.Fatalf("expected exactly one payment record, got %d", payments.insertCount)
	}
	if payment.TransactionID != "txn_123" {
		t.Errorf("expected transaction id preserved, got %q", payment.TransactionID)
	}
	if payment.Amount != 3000 {
		t.Errorf("expected amount in minor units, got %d", payment.Amount)
	}
}

func TestComplete_AlreadyPaid(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Price: 30, Paid: true, TransactionID: "txn_prev"}, nil
		},
	}
	payments := &mockPaymentRepository{}
	svc := newTestService(bookings, payments, &mockGateway{})

	_, err := svc.Complete(context.Background(), &model.PaymentConfirmation{
		BookingID:     "65a000000000000000000001",
		TransactionID: "txn_123",
	})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict for an already paid booking, got %v", err)
	}
	if bookings.markPaidCalled {
		t.Error("paid booking must not be marked paid again")
	}
	if payments.insertCount != 0 {
		t.Errorf("expected no payment records, got %d", payments.insertCount)
	}
}

func TestComplete_BookingNotFound(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	payments := &mockPaymentRepository{}
	svc := newTestService(bookings, payments, &mockGateway{})

	_, err := svc.Complete(context.Background(), &model.PaymentConfirmation{
		BookingID:     "65a000000000000000000099",
		TransactionID: "txn_123",
	})
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if payments.insertCount != 0 {
		t.Errorf("expected no payment records, got %d", payments.insertCount)
	}
}

func TestComplete_MissingFields(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockPaymentRepository{}, &mockGateway{})

	for _, confirmation := range []*model.PaymentConfirmation{
		{BookingID: "", TransactionID: "txn_123"},
		{BookingID: "65a000000000000000000001", TransactionID: ""},
	} {
		_, err := svc.Complete(context.Background(), confirmation)
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	}
}

func TestComplete_InsertFailureSurfacesUnavailable(t *testing.T) {
	payments := &mockPaymentRepository{
		insertFunc: func(ctx context.Context, payment *model.Payment) error {
			return errors.New("connection reset")
		},
	}
	svc := newTestService(&mockBookingRepository{}, payments, &mockGateway{})

	_, err := svc.Complete(context.Background(), &model.PaymentConfirmation{
		BookingID:     "65a000000000000000000001",
		TransactionID: "txn_123",
	})
	if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}
