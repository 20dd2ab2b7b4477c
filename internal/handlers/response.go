package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type dataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type createdResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	ID      int64       `json:"id"`
}

type changedResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Changes int64       `json:"changes"`
}

type deletedResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// errorResponse carries either a message or a list of validation errors
type errorResponse struct {
	Error interface{} `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, err interface{}) {
	writeJSON(w, logger, status, errorResponse{Error: err})
}

// pathID parses the {id} route variable
func pathID(req *http.Request) (int64, error) {
	raw := mux.Vars(req)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return id, nil
}

// decodeBody reads a JSON object, keeping numbers as json.Number so they echo back unchanged.
// An empty body decodes to an empty record.
func decodeBody(req *http.Request) (map[string]interface{}, error) {
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}
