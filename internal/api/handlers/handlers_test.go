package handlers

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParsePage(t *testing.T) {
	p, err := parsePage(httptest.NewRequest(http.MethodGet, "/users/", nil))
	require.NoError(t, err)
	assert.Equal(t, page{Offset: 0, Limit: 100}, p)

	p, err = parsePage(httptest.NewRequest(http.MethodGet, "/users/?offset=5&limit=20", nil))
	require.NoError(t, err)
	assert.Equal(t, page{Offset: 5, Limit: 20}, p)

	_, err = parsePage(httptest.NewRequest(http.MethodGet, "/users/?offset=-1&limit=101", nil))
	var verr *schemas.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 2)
	assert.Equal(t, "offset", verr.Errors[0].Field)
	assert.Equal(t, "limit", verr.Errors[1].Field)
}

func TestNormalizeMimeType(t *testing.T) {
	assert.Equal(t, "image/png", normalizeMimeType(" Image/PNG "))
	assert.Equal(t, "image/jpeg", normalizeMimeType("image/jpeg; charset=binary"))
	assert.Empty(t, normalizeMimeType(""))
}

func TestPhotoExt(t *testing.T) {
	cases := []struct {
		filename, contentType, want string
	}{
		{"me.JPG", "image/jpeg", ".jpg"},
		{"me.jpeg", "image/jpeg", ".jpeg"},
		{"photo", "image/png", ".png"},
		{"photo.", "image/gif", ".gif"},
		{"photo.p n g", "image/png", ".png"},
		{"weird", "image/x-unknown", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, photoExt(tc.filename, tc.contentType), tc.filename)
	}
}

func TestStoredPhotoName(t *testing.T) {
	cases := []struct {
		url    *string
		name   string
		stored bool
	}{
		{nil, "", false},
		{strPtr(""), "", false},
		{strPtr("http://127.0.0.1:8000/static/photo_user_7.jpg"), "photo_user_7.jpg", true},
		{strPtr("https://cdn.example.com/photo_user_7"), "photo_user_7", true},
		{strPtr("http://127.0.0.1:8000/static/photo_user_70.jpg"), "", false},
		{strPtr("https://avatars.example.com/u/7.png"), "", false},
	}
	for _, tc := range cases {
		name, ok := storedPhotoName(&models.User{ID: 7, PhotoURL: tc.url})
		assert.Equal(t, tc.stored, ok)
		assert.Equal(t, tc.name, name)
	}
}

func TestRequestOrigin(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/users_photo/1/", nil)
	r.Host = "127.0.0.1:8000"
	assert.Equal(t, "http://127.0.0.1:8000", requestOrigin(r))

	r.Header.Set("X-Forwarded-Proto", "HTTPS")
	assert.Equal(t, "https://127.0.0.1:8000", requestOrigin(r))

	r = httptest.NewRequest(http.MethodPost, "/users_photo/1/", nil)
	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://example.com", requestOrigin(r))
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{errPostNotFound, http.StatusNotFound, "post not found"},
		{repositories.ErrDuplicateEmail, http.StatusBadRequest, "email already in use by another user"},
		{repositories.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{repositories.ErrNotFound, http.StatusNotFound, "not found"},
		{schemas.Invalid("id", "must be a positive integer"), http.StatusUnprocessableEntity, ""},
		{errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Contains(t, rec.Body.String(), tc.detail)
	}
}
