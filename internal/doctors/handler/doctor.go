package handler

import (
	"encoding/json"
	"net/http"

	authmiddleware "github.com/Farhatmahi/dentist-spa-server/internal/auth/middleware"
	"github.com/Farhatmahi/dentist-spa-server/internal/doctors/service"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/julienschmidt/httprouter"
)

type ackResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

type DoctorHandler struct {
	service service.DoctorService
	auth    *authmiddleware.Authenticator
	log     *logger.Logger
}

func NewDoctorHandler(service service.DoctorService, auth *authmiddleware.Authenticator, log *logger.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doctor model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &doctor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, created); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *DoctorHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, doctors); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ackResponse{Acknowledged: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/doctors", h.auth.Authenticate(h.auth.RequireAdmin(h.Create)))
	router.GET("/doctors", h.auth.Authenticate(h.auth.RequireAdmin(h.GetAll)))
	router.DELETE("/doctors/:id", h.auth.Authenticate(h.auth.RequireAdmin(h.Delete)))
}
