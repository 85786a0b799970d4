package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"trustscope/internal/logging"
	"trustscope/internal/model"
)

const maxBodyBytes = 4 << 20

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		if code >= 500 {
			logging.Error("http_error", map[string]any{"code": code, "message": message, "error": err.Error()})
		} else {
			response["detail"] = err.Error()
		}
	}
	respondWithJSON(w, code, response)
}

// statusFor maps pipeline errors onto HTTP codes.
func statusFor(err error) int {
	if errors.Is(err, model.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
