package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Farhatmahi/dentist-spa-server/internal/payments/service"
	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateIntent", "error", writeErr)
		}
		return
	}

	intent, err := h.service.Initiate(r.Context(), req.BookingID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateIntent", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, intent); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateIntent", "error", err)
	}
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var confirmation model.PaymentConfirmation
	if err := json.NewDecoder(r.Body).Decode(&confirmation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Confirm", "error", writeErr)
		}
		return
	}

	payment, err := h.service.Complete(r.Context(), &confirmation)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Confirm", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "Confirm", "error", err)
	}
}

// Both routes stay tokenless to preserve the existing client contract; the
// service resolves amounts from the stored booking, never from the caller.
func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/create-payment-intent", h.CreateIntent)
	router.POST("/payment", h.Confirm)
}
