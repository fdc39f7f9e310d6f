package app

import (
	"context"
	"net/http"
	"time"

	httputil "github.com/Farhatmahi/dentist-spa-server/pkg/http"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type healthHandler struct {
	mongo *mongo.Client
	log   *logger.Logger
}

type healthResponse struct {
	Status string `json:"status"`
	Mongo  string `json:"mongo"`
}

func newHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *healthHandler {
	return &healthHandler{mongo: mongoClient, log: log}
}

func (h *healthHandler) Root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Doctor's portal server is running")); err != nil {
		h.log.Error("failed to write root response", "error", err)
	}
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthResponse{Status: "ok", Mongo: "up"}
	code := http.StatusOK
	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error("Health check mongo ping failed", "error", err)
		status = healthResponse{Status: "degraded", Mongo: "down"}
		code = http.StatusServiceUnavailable
	}

	if err := httputil.WriteJSON(w, code, status); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}

func (h *healthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
}
