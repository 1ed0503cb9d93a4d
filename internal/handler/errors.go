package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

const (
	msgTaskNotFound = "Task not found"
	msgInvalidJSON  = "Invalid JSON body"
	msgBodyTooLarge = "Request body too large"
	msgInternal     = "Internal server error"
)

// handleErrors maps service and repository errors to a status and a message
// that is safe to show. Unknown errors are logged and never echoed back.
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrorNoFields):
		respond.Error(w, r, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, service.ErrDuplicateIdentity):
		respond.Error(w, r, http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
	default:
		logger.Error("internal error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		respond.Error(w, r, http.StatusInternalServerError, msgInternal)
	}
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeError отвечает на тело, которое не удалось прочитать.
func decodeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(w, r, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	respond.Error(w, r, http.StatusBadRequest, msgInvalidJSON)
}
