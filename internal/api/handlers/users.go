package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/chem1sto/test-moscow-metro/internal/api/middleware"
	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

type UserHandler struct {
	users  UserStore
	posts  PostStore
	photos PhotoStore
}

func NewUserHandler(users UserStore, posts PostStore, photos PhotoStore) *UserHandler {
	return &UserHandler{users: users, posts: posts, photos: photos}
}

// GET /users/
// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param offset query int false "Rows to skip" minimum(0) default(0)
// @Param limit query int false "Rows to return" minimum(1) maximum(100) default(100)
// @Success 200 {array} models.User
// @Failure 422 {object} utils.ErrorPayload
// @Router /users/ [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := h.users.List(r.Context(), p.Offset, p.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, users)
}

// GET /users/{id}/
// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorPayload
// @Router /users/{id}/ [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := loadUser(r.Context(), h.users, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, user)
}

// POST /users/
// CreateUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body schemas.UserCreate true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Email already in use"
// @Failure 422 {object} utils.ErrorPayload
// @Router /users/ [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input schemas.UserCreate
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}

	// The unique index has the final word; this only avoids a failed insert.
	if err := checkEmail(r.Context(), h.users, input.Email, 0); err != nil {
		writeError(w, r, err)
		return
	}

	user := input.User()
	if err := h.users.Create(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, user)
}

// PUT /users/{id}/
// ReplaceUser godoc
// @Summary Replace every field of a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body schemas.UserUpdate true "Full user"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Email already in use"
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /users/{id}/ [put]
func (h *UserHandler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input schemas.UserUpdate
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := loadUser(r.Context(), h.users, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if input.Email != user.Email {
		if err := checkEmail(r.Context(), h.users, input.Email, id); err != nil {
			writeError(w, r, err)
			return
		}
	}

	input.Apply(user)
	if err := h.users.Update(r.Context(), user); err != nil {
		writeError(w, r, notFoundAs(err, errUserNotFound))
		return
	}
	utils.JSONResponse(w, http.StatusOK, user)
}

// PATCH /users/{id}/
// UpdateUser godoc
// @Summary Change some fields of a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body schemas.UserPatch true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Email already in use"
// @Failure 404 {object} utils.ErrorPayload
// @Failure 422 {object} utils.ErrorPayload
// @Router /users/{id}/ [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input schemas.UserPatch
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := loadUser(r.Context(), h.users, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if input.Email.Set && input.Email.Value != user.Email {
		if err := checkEmail(r.Context(), h.users, input.Email.Value, id); err != nil {
			writeError(w, r, err)
			return
		}
	}

	columns := input.Columns()
	if len(columns) == 0 {
		utils.JSONResponse(w, http.StatusOK, user)
		return
	}
	input.Apply(user)
	if err := h.users.Update(r.Context(), user, columns...); err != nil {
		writeError(w, r, notFoundAs(err, errUserNotFound))
		return
	}
	utils.JSONResponse(w, http.StatusOK, user)
}

// DELETE /users/{id}/
// DeleteUser godoc
// @Summary Delete a user together with their posts and photo
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} utils.ErrorPayload
// @Router /users/{id}/ [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := loadUser(r.Context(), h.users, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, notFoundAs(err, errUserNotFound))
		return
	}

	if name, ok := storedPhotoName(user); ok {
		if err := h.photos.Delete(r.Context(), name); err != nil {
			log.Printf("request_id=%s failed to remove photo %s: %v", middleware.RequestID(r.Context()), name, err)
		}
	}
	utils.NoContent(w)
}

// GET /users/{id}/posts/
// ListUserPosts godoc
// @Summary List the posts of one user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Param offset query int false "Rows to skip" minimum(0) default(0)
// @Param limit query int false "Rows to return" minimum(1) maximum(100) default(100)
// @Success 200 {array} models.Post
// @Failure 404 {object} utils.ErrorPayload
// @Router /users/{id}/posts/ [get]
func (h *UserHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureUser(r.Context(), h.users, id); err != nil {
		writeError(w, r, err)
		return
	}
	posts, err := h.posts.List(r.Context(), p.Offset, p.Limit, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, posts)
}

func loadUser(ctx context.Context, users UserStore, id uint) (*models.User, error) {
	user, err := users.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errUserNotFound)
	}
	return user, nil
}

func ensureUser(ctx context.Context, users UserStore, id uint) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errUserNotFound
	}
	return nil
}

func checkEmail(ctx context.Context, users UserStore, email string, exceptID uint) error {
	taken, err := users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return errEmailTaken
	}
	return nil
}

// notFoundAs replaces a generic repositories.ErrNotFound with an entity-specific error.
func notFoundAs(err error, notFound *apiError) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return err
}
