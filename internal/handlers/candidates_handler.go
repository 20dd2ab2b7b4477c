package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shaibs3/election-api/internal/db"
	"github.com/shaibs3/election-api/internal/storage"
	"github.com/shaibs3/election-api/internal/validator"
	"go.uber.org/zap"
)

var (
	createCandidateFields = []string{"first_name", "last_name", "industry_connected"}
	updateCandidateFields = []string{"party_id"}
)

// CandidatesHandler serves the candidate resource
type CandidatesHandler struct {
	candidates *db.CandidateStore
	logger     *zap.Logger
}

// NewCandidatesHandler creates a new candidates handler
func NewCandidatesHandler(gateway storage.Gateway) *CandidatesHandler {
	return &CandidatesHandler{
		candidates: db.NewCandidateStore(gateway),
		logger:     zap.NewNop(),
	}
}

// RegisterRoutes registers the routes for this handler
func (h *CandidatesHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("candidates")
	router.HandleFunc("/api/candidates", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/api/candidate/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/candidate", h.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/api/candidate/{id}", h.handleUpdateParty).Methods(http.MethodPut)
	router.HandleFunc("/api/candidate/{id}", h.handleDelete).Methods(http.MethodDelete)
}

// handleList handles GET /api/candidates
func (h *CandidatesHandler) handleList(w http.ResponseWriter, req *http.Request) {
	candidates, err := h.candidates.List(req.Context())
	if err != nil {
		h.logger.Error("failed to list candidates", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dataResponse{Message: "success", Data: candidates})
}

// handleGet handles GET /api/candidate/{id}; an unknown id yields null data
func (h *CandidatesHandler) handleGet(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	candidate, err := h.candidates.Get(req.Context(), id)
	if err != nil {
		h.logger.Error("failed to get candidate", zap.Int64("id", id), zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dataResponse{Message: "success", Data: candidate})
}

// handleCreate handles POST /api/candidate
func (h *CandidatesHandler) handleCreate(w http.ResponseWriter, req *http.Request) {
	body, err := decodeBody(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	errs := validator.Validate(body, createCandidateFields...)
	errs = append(errs, partyIDErrors(body)...)
	if len(errs) > 0 {
		writeError(w, h.logger, http.StatusBadRequest, errs)
		return
	}

	id, err := h.candidates.Create(req.Context(),
		body["first_name"], body["last_name"], body["industry_connected"], body["party_id"])
	if err != nil {
		h.logger.Error("failed to create candidate", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("candidate created", zap.Int64("id", id))
	writeJSON(w, h.logger, http.StatusOK, createdResponse{Message: "success", Data: body, ID: id})
}

// handleUpdateParty handles PUT /api/candidate/{id}; only party_id is mutable
func (h *CandidatesHandler) handleUpdateParty(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	body, err := decodeBody(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if errs := validator.Validate(body, updateCandidateFields...); len(errs) > 0 {
		writeError(w, h.logger, http.StatusBadRequest, errs)
		return
	}
	if errs := partyIDErrors(body); len(errs) > 0 {
		writeError(w, h.logger, http.StatusBadRequest, errs)
		return
	}

	changes, err := h.candidates.UpdateParty(req.Context(), id, body["party_id"])
	if err != nil {
		h.logger.Error("failed to update candidate party", zap.Int64("id", id), zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, changedResponse{Message: "success", Data: body, Changes: changes})
}

// handleDelete handles DELETE /api/candidate/{id}
func (h *CandidatesHandler) handleDelete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := h.candidates.Delete(req.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete candidate", zap.Int64("id", id), zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, deletedResponse{Message: "successfully deleted", Changes: changes})
}

// partyIDErrors rejects a present, non-null party_id that is not a JSON integer
func partyIDErrors(body map[string]interface{}) []string {
	value, ok := body["party_id"]
	if !ok || value == nil {
		return nil
	}
	if n, ok := value.(json.Number); ok {
		if _, err := n.Int64(); err == nil {
			return nil
		}
	}
	return []string{"party_id should be an integer"}
}
