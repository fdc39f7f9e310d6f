package handler

import (
	"net/http"

	"github.com/Farhatmahi/dentist-spa-server/internal/auth/service"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/julienschmidt/httprouter"
)

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type TokenHandler struct {
	tokens service.TokenService
	log    *logger.Logger
}

func NewTokenHandler(tokens service.TokenService, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		tokens: tokens,
		log:    log,
	}
}

// Issue responds 200 with a signed token for registered users and 403 with
// an empty token field otherwise, which the portal client treats as "not
// authenticated yet".
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")
	if email == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Query parameter 'email' is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "error", writeErr)
		}
		return
	}

	token, err := h.tokens.IssueToken(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "error", writeErr)
		}
		return
	}

	if token == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusForbidden, tokenResponse{AccessToken: ""}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Issue", "error", writeErr)
		}
		return
	}

	if writeErr := httputil.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token}); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", "Issue", "error", writeErr)
	}
}

func (h *TokenHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/jwt", h.Issue)
}
