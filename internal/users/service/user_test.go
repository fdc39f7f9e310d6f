package service

import (
	"context"
	"errors"
	"testing"

	userserrors "github.com/Farhatmahi/dentist-spa-server/internal/users/errors"
	"github.com/Farhatmahi/dentist-spa-server/internal/users/validator"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

type mockUserRepository struct {
	upsertFunc      func(ctx context.Context, user *model.User) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findAllFunc     func(ctx context.Context) ([]*model.User, error)
	promoteFunc     func(ctx context.Context, id string) error
	capturedUpsert  *model.User
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	m.capturedUpsert = user
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, user)
	}
	stored := *user
	stored.ID = "65a000000000000000000001"
	stored.Role = model.RolePatient
	return &stored, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Promote(ctx context.Context, id string) error {
	if m.promoteFunc != nil {
		return m.promoteFunc(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.TEXT,
			Service: "test",
		}),
	}
}

func newTestService(repo *mockUserRepository) UserService {
	return NewUserService(repo, validator.NewUserValidator(), testConfig())
}

func TestUpsert_StripsClientRole(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestService(repo)

	user := &model.User{
		Email: "patient@example.com",
		Name:  "Pat Example",
		Role:  model.RoleAdmin,
	}
	if _, err := svc.Upsert(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.capturedUpsert.Role != "" {
		t.Errorf("client-supplied role must be discarded, got %q", repo.capturedUpsert.Role)
	}
}

func TestUpsert_InvalidEmail(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestService(repo)

	user := &model.User{Email: "not-an-email", Name: "Pat Example"}
	_, err := svc.Upsert(context.Background(), user)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.capturedUpsert != nil {
		t.Error("invalid user must not reach the repository")
	}
}

func TestIsAdmin_DefaultDeny(t *testing.T) {
	tests := []struct {
		name string
		repo *mockUserRepository
	}{
		{
			name: "unknown email",
			repo: &mockUserRepository{},
		},
		{
			name: "patient role",
			repo: &mockUserRepository{
				findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
					return &model.User{Email: email, Role: model.RolePatient}, nil
				},
			},
		},
		{
			name: "no role",
			repo: &mockUserRepository{
				findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
					return &model.User{Email: email}, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.repo)
			admin, err := svc.IsAdmin(context.Background(), "someone@example.com")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if admin {
				t.Error("expected non-admin result")
			}
		})
	}
}

func TestIsAdmin_EmptyEmail(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	admin, err := svc.IsAdmin(context.Background(), "")
	if err != nil || admin {
		t.Errorf("empty email must resolve to non-admin without error, got %v %v", admin, err)
	}
}

func TestIsAdmin_AdminRole(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleAdmin}, nil
		},
	}
	svc := newTestService(repo)

	admin, err := svc.IsAdmin(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !admin {
		t.Error("expected admin result")
	}
}

func TestIsAdmin_StoreFailure(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	_, err := svc.IsAdmin(context.Background(), "someone@example.com")
	if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestPromote_UnknownID(t *testing.T) {
	repo := &mockUserRepository{
		promoteFunc: func(ctx context.Context, id string) error {
			return userserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	err := svc.Promote(context.Background(), "65a000000000000000000099")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestPromote_InvalidID(t *testing.T) {
	repo := &mockUserRepository{
		promoteFunc: func(ctx context.Context, id string) error {
			return userserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	err := svc.Promote(context.Background(), "nope")
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
