package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RootHandler answers the API root
type RootHandler struct {
	logger *zap.Logger
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{logger: zap.NewNop()}
}

// RegisterRoutes registers the routes for this handler
func (h *RootHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("root")
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
}

func (h *RootHandler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Hello World"})
}
