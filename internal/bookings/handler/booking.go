package handler

import (
	"encoding/json"
	"net/http"

	authmiddleware "github.com/Farhatmahi/dentist-spa-server/internal/auth/middleware"
	"github.com/Farhatmahi/dentist-spa-server/internal/bookings/service"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	auth    *authmiddleware.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *authmiddleware.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		// Duplicate bookings come back as a 200 with acknowledged=false;
		// the portal client reads the flag, not the status code.
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			if writeErr := httputil.WriteJSON(w, http.StatusOK, model.BookingAck{
				Acknowledged: false,
				Message:      apperrors.AsAppError(err).Message,
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
			}
			return
		}
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, created); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByEmail", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/booking", h.Create)
	router.GET("/booking", h.auth.Authenticate(h.auth.OwnerMatch(claimedEmail, h.GetByEmail)))
	router.GET("/booking/:id", h.GetByID)
}

func claimedEmail(r *http.Request, _ httprouter.Params) string {
	return r.URL.Query().Get("email")
}
