package handler

import (
	"net/http"

	"github.com/Farhatmahi/dentist-spa-server/internal/appointments/service"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/julienschmidt/httprouter"
)

type AppointmentOptionHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAppointmentOptionHandler(service service.AvailabilityService, log *logger.Logger) *AppointmentOptionHandler {
	return &AppointmentOptionHandler{
		service: service,
		log:     log,
	}
}

func (h *AppointmentOptionHandler) GetOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	appointmentOptions, err := h.service.Resolve(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOptions", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, appointmentOptions); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOptions", "error", err)
	}
}

func (h *AppointmentOptionHandler) GetSpecialities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	names, err := h.service.Treatments(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSpecialities", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, names); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSpecialities", "error", err)
	}
}

func (h *AppointmentOptionHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/appointmentOptions", h.GetOptions)
	router.GET("/appointmentSpeciality", h.GetSpecialities)
}
