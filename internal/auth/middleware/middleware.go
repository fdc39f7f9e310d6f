package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Farhatmahi/dentist-spa-server/internal/auth/service"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/julienschmidt/httprouter"
)

type contextKey string

const identityKey contextKey = "identity"

// EmailExtractor pulls the claimed owner email from a request, e.g. from a
// query parameter or a route parameter.
type EmailExtractor func(r *http.Request, ps httprouter.Params) string

// RoleChecker resolves whether an identity carries the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Authenticator provides the two composable authorization gates. A missing
// credential yields 401, a present but insufficient one 403.
type Authenticator struct {
	tokens service.TokenService
	roles  RoleChecker
	log    *logger.Logger
}

func NewAuthenticator(tokens service.TokenService, roles RoleChecker, log *logger.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		roles:  roles,
		log:    log,
	}
}

// Authenticate verifies the bearer token and stores the embedded identity in
// the request context for downstream gates.
func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString, ok := bearerToken(r)
		if !ok {
			a.writeError(w, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		email, err := a.tokens.VerifyToken(tokenString)
		if err != nil {
			a.log.Warn("Token verification failed", "path", r.URL.Path, "error", err)
			a.writeError(w, apperrors.Forbidden("Forbidden access"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, email)
		next(w, r.WithContext(ctx), ps)
	}
}

// OwnerMatch passes only when the verified identity equals the claimed
// email. It stops callers from reading another patient's bookings through
// query-parameter manipulation. Must run after Authenticate.
func (a *Authenticator) OwnerMatch(claimed EmailExtractor, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			a.writeError(w, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		if claimed(r, ps) != identity {
			a.log.Warn("Owner mismatch", "identity", identity, "path", r.URL.Path)
			a.writeError(w, apperrors.Forbidden("Forbidden access"))
			return
		}

		next(w, r, ps)
	}
}

// RequireAdmin passes only when the verified identity carries the admin
// role. Unknown users and users without a role are non-admin. Must run
// after Authenticate.
func (a *Authenticator) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			a.writeError(w, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		admin, err := a.roles.IsAdmin(r.Context(), identity)
		if err != nil {
			a.writeError(w, err)
			return
		}
		if !admin {
			a.log.Warn("Admin gate rejected caller", "identity", identity, "path", r.URL.Path)
			a.writeError(w, apperrors.Forbidden("Forbidden access"))
			return
		}

		next(w, r, ps)
	}
}

func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey).(string)
	return identity, ok && identity != ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func (a *Authenticator) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		a.log.Error("failed to write error response", "middleware", "auth", "error", writeErr)
	}
}
