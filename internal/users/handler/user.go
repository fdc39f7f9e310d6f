package handler

import (
	"encoding/json"
	"net/http"

	authmiddleware "github.com/Farhatmahi/dentist-spa-server/internal/auth/middleware"
	"github.com/Farhatmahi/dentist-spa-server/internal/users/service"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/julienschmidt/httprouter"
)

type adminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type ackResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

type UserHandler struct {
	service service.UserService
	auth    *authmiddleware.Authenticator
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, auth *authmiddleware.Authenticator, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	stored, err := h.service.Upsert(r.Context(), &user)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stored); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	admin, err := h.service.IsAdmin(r.Context(), ps.ByName("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "IsAdmin", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, adminResponse{IsAdmin: admin}); err != nil {
		h.log.Error("failed to write success response", "handler", "IsAdmin", "error", err)
	}
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Promote(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Promote", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ackResponse{Acknowledged: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Promote", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.Upsert)
	// Listing stays ungated to match the existing portal client; see the
	// gating notes in DESIGN.md before tightening.
	router.GET("/users", h.GetAll)
	router.GET("/users/admin/:email", h.auth.Authenticate(h.IsAdmin))
	router.PUT("/users/admin/:id", h.auth.Authenticate(h.auth.RequireAdmin(h.Promote)))
}
