package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/chem1sto/test-moscow-metro/internal/api/middleware"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

// apiError is an error with a fixed status and a detail shown to the client.
type apiError struct {
	status int
	detail string
}

func (e *apiError) Error() string {
	return e.detail
}

var (
	errUserNotFound     = &apiError{http.StatusNotFound, "user not found"}
	errPostNotFound     = &apiError{http.StatusNotFound, "post not found"}
	errEmailTaken       = &apiError{http.StatusBadRequest, "email already in use by another user"}
	errUnsupportedMedia = &apiError{http.StatusBadRequest, "only image files are allowed (jpeg, png, gif, webp)"}
	errFileTooLarge     = &apiError{http.StatusRequestEntityTooLarge, "file too large"}
)

// writeError translates any handler, repository or storage error into a
// JSON error response. Errors without a known meaning become a 500 that
// carries the underlying message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr *apiError
		valErr *schemas.ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		utils.ErrorResponse(w, apiErr.status, apiErr.detail)
	case errors.As(err, &valErr):
		utils.JSONResponse(w, http.StatusUnprocessableEntity, utils.ErrorPayload{
			Detail: valErr.Error(),
			Errors: valErr.Errors,
		})
	case errors.Is(err, repositories.ErrDuplicateEmail):
		utils.ErrorResponse(w, errEmailTaken.status, errEmailTaken.detail)
	case errors.Is(err, repositories.ErrUserNotFound):
		utils.ErrorResponse(w, errUserNotFound.status, errUserNotFound.detail)
	case errors.Is(err, repositories.ErrNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "not found")
	default:
		log.Printf("request_id=%s %s %s failed: %v", middleware.RequestID(r.Context()), r.Method, r.URL.Path, err)
		utils.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// storageError marks an I/O failure whose text is passed through to the client.
func storageError(err error) error {
	return &apiError{http.StatusInternalServerError, err.Error()}
}
