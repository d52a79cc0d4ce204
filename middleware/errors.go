// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

var ErrForbidden = errors.New("forbidden access")

// HTTPError is an error with an explicit status and client-facing message.
type HTTPError struct {
	Status  int
	Message string
	Errors  any
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NotFound(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: message}
}

func BadRequest(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message}
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// WithErrors adapts h to http.HandlerFunc, translating returned errors.
func WithErrors(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError is the single place errors become responses.
//
//	*HTTPError            its own status
//	auth.ErrUnauthorized  401
//	ErrForbidden          403
//	store.ErrNotFound     404
//	store.ErrInvalidID    400
//	anything else         500
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp := models.ErrorResponse{}
	var status int

	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		status, resp.Message, resp.Errors = httpErr.Status, httpErr.Message, httpErr.Errors
	case errors.Is(err, auth.ErrUnauthorized):
		status, resp.Message = http.StatusUnauthorized, "Unauthorized Access"
	case errors.Is(err, ErrForbidden):
		status, resp.Message = http.StatusForbidden, "forbidden access"
	case errors.Is(err, store.ErrNotFound):
		status, resp.Message = http.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrInvalidID):
		status, resp.Message = http.StatusBadRequest, "Invalid id"
	default:
		status, resp.Message = http.StatusInternalServerError, "Internal Server Error"
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	JSONResponse(w, status, resp)
}
