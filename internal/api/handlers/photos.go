package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chem1sto/test-moscow-metro/internal/api/middleware"
	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
	"github.com/gabriel-vasile/mimetype"
)

const photoField = "file"

var (
	allowedImageTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/gif":  {},
		"image/webp": {},
	}

	safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

type PhotoHandler struct {
	users         UserStore
	photos        PhotoStore
	maxUploadSize int64
}

func NewPhotoHandler(users UserStore, photos PhotoStore, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{users: users, photos: photos, maxUploadSize: maxUploadSize}
}

// POST /users_photo/{id}/
// UploadPhoto godoc
// @Summary Upload a user's photo
// @Description Stores the image as photo_user_<id><ext>, replacing the previous photo, and saves its public URL on the user.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "User ID"
// @Param file formData file true "JPEG, PNG, GIF or WEBP image"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Not an allowed image type"
// @Failure 404 {object} utils.ErrorPayload
// @Failure 413 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload "Storage failure"
// @Router /users_photo/{id}/ [post]
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.ContentLength > h.maxUploadSize {
		writeError(w, r, errFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	file, header, err := r.FormFile(photoField)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, errFileTooLarge)
			return
		}
		writeError(w, r, schemas.Invalid(photoField, "field required"))
		return
	}
	defer file.Close()

	contentType := normalizeMimeType(header.Header.Get("Content-Type"))
	if _, ok := allowedImageTypes[contentType]; !ok {
		writeError(w, r, errUnsupportedMedia)
		return
	}

	user, err := loadUser(r.Context(), h.users, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	name := photoName(user.ID, photoExt(header.Filename, contentType))
	url, err := h.photos.Save(r.Context(), repositories.Upload{
		Name:        name,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeError(w, r, storageError(err))
		return
	}
	if strings.HasPrefix(url, "/") {
		url = requestOrigin(r) + url
	}

	previous, hadPrevious := storedPhotoName(user)
	user.PhotoURL = &url
	if err := h.users.Update(r.Context(), user, "photo_url"); err != nil {
		writeError(w, r, notFoundAs(err, errUserNotFound))
		return
	}

	if hadPrevious && previous != name {
		if err := h.photos.Delete(r.Context(), previous); err != nil {
			log.Printf("request_id=%s failed to remove old photo %s: %v", middleware.RequestID(r.Context()), previous, err)
		}
	}
	utils.JSONResponse(w, http.StatusCreated, user)
}

func normalizeMimeType(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if separator := strings.Index(normalized, ";"); separator >= 0 {
		normalized = strings.TrimSpace(normalized[:separator])
	}
	return normalized
}

func photoPrefix(userID uint) string {
	return fmt.Sprintf("photo_user_%d", userID)
}

func photoName(userID uint, ext string) string {
	return photoPrefix(userID) + ext
}

// photoExt keeps the client's extension when it looks sane, otherwise
// derives one from the content type.
func photoExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if safeExt.MatchString(ext) {
		return ext
	}
	if mt := mimetype.Lookup(contentType); mt != nil {
		return mt.Extension()
	}
	return ""
}

// storedPhotoName returns the object name behind the user's photo URL when
// it is one of the names this service stores for that user.
func storedPhotoName(user *models.User) (string, bool) {
	if user.PhotoURL == nil || *user.PhotoURL == "" {
		return "", false
	}
	name := path.Base(*user.PhotoURL)
	prefix := photoPrefix(user.ID)
	if name != prefix && !strings.HasPrefix(name, prefix+".") {
		return "", false
	}
	return name, true
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
