package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shaibs3/election-api/internal/db"
	"github.com/shaibs3/election-api/internal/storage"
	"go.uber.org/zap"
)

// PartiesHandler serves the party resource. Parties are read and deleted only.
type PartiesHandler struct {
	parties *db.PartyStore
	logger  *zap.Logger
}

// NewPartiesHandler creates a new parties handler
func NewPartiesHandler(gateway storage.Gateway) *PartiesHandler {
	return &PartiesHandler{
		parties: db.NewPartyStore(gateway),
		logger:  zap.NewNop(),
	}
}

// RegisterRoutes registers the routes for this handler
func (h *PartiesHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("parties")
	router.HandleFunc("/api/parties", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/api/party/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/party/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *PartiesHandler) handleList(w http.ResponseWriter, req *http.Request) {
	parties, err := h.parties.List(req.Context())
	if err != nil {
		h.logger.Error("failed to list parties", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dataResponse{Message: "success", Data: parties})
}

func (h *PartiesHandler) handleGet(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	party, err := h.parties.Get(req.Context(), id)
	if err != nil {
		h.logger.Error("failed to get party", zap.Int64("id", id), zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dataResponse{Message: "success", Data: party})
}

func (h *PartiesHandler) handleDelete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := h.parties.Delete(req.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete party", zap.Int64("id", id), zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, deletedResponse{Message: "successfully deleted", Changes: changes})
}
