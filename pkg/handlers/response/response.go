// Package response writes the JSON envelope shared by every route.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/tally-gateway/pkg/models/api"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/client"
	"github.com/rs/zerolog"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func OK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, api.Response{Success: true, Data: data})
}

// List is OK with the item count next to the data.
func List[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	JSON(w, r, http.StatusOK, api.Response{Success: true, Data: items, Count: &count})
}

// Error maps err onto a status code and writes the failure envelope.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	logger := zerolog.Ctx(r.Context())

	// Unreachable Tally is reported with just the hint, not the operation chain.
	msg := err.Error()
	var connection *client.ConnectionError
	if errors.As(err, &connection) {
		msg = connection.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Info().Err(err).Int("status", status).Msg("request rejected")
	}
	JSON(w, r, status, api.Response{Success: false, Error: msg})
}

func Status(err error) int {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		remote     *domain.RemoteError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &remote):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
