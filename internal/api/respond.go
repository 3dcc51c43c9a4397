// internal/api/respond.go

package api

import (
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/hlog"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/lifecycle"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Message string                 `json:"message"`
	Errors  []lifecycle.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status: not found is 404, rejected input is 400,
// anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *lifecycle.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Errors: verr.Fields})
	case errors.Is(err, errMalformedBody):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, document.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}
