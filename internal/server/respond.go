package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/logging"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/store"
)

var errDecodeBody = &apperr.Error{
	Message: "unable to decode request body",
}

type errorBody struct {
	Message string `json:"message"`
}

// apiError is an error with the status and message sent to the client.
type apiError struct {
	cause   error
	message string
	status  int
}

func (e *apiError) Error() string {
	if e.cause == nil {
		return e.message
	}

	return e.message + ": " + e.cause.Error()
}

func (e *apiError) Unwrap() error {
	return e.cause
}

// failure classifies err for a request about entity. action completes the
// sentence "Failed to ...".
func failure(err error, entity, action string) error {
	switch {
	case errors.Is(err, errDecodeBody), errors.Is(err, models.ErrInvalidInput):
		return &apiError{
			status:  http.StatusBadRequest,
			message: "Invalid " + entity + " data",
			cause:   err,
		}
	case errors.Is(err, store.ErrNotFound):
		return &apiError{
			status:  http.StatusNotFound,
			message: capitalize(entity) + " not found",
			cause:   err,
		}
	default:
		return &apiError{
			status:  http.StatusInternalServerError,
			message: "Failed to " + action,
			cause:   err,
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// handlerFunc is an http.HandlerFunc that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (h handlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h(w, r)
	if err == nil {
		return
	}

	ctx := r.Context()

	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = &apiError{
			status:  http.StatusInternalServerError,
			message: http.StatusText(http.StatusInternalServerError),
			cause:   err,
		}
	}

	level := slog.LevelWarn
	if apiErr.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logging.FromContext(ctx).Log(ctx, level, "request failed",
		slog.Int("status", apiErr.status),
		slog.Any("error", err),
	)

	writeJSON(ctx, w, apiErr.status, errorBody{Message: apiErr.message})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "failed to encode response", slog.Any("error", err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errDecodeBody.Wrap(err)
	}

	return nil
}
