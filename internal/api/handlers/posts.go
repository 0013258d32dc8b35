package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

type PostHandler struct {
	posts PostStore
	users UserStore
}

func NewPostHandler(posts PostStore, users UserStore) *PostHandler {
	return &PostHandler{posts: posts, users: users}
}

// GET /posts/
// ListPosts godoc
// @Summary List posts
// @Tags Posts
// @Produce json
// @Param offset query int false "Rows to skip" minimum(0) default(0)
// @Param limit query int false "Rows to return" minimum(1) maximum(100) default(100)
// @Param user_id query int false "Only posts of this user"
// @Success 200 {array} models.Post
// @Failure 422 {object} utils.ErrorPayload
// @Router /posts/ [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			writeError(w, r, schemas.Invalid("user_id", "must be a positive integer"))
			return
		}
		userID = id
	}

	posts, err := h.posts.List(r.Context(), p.Offset, p.Limit, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, posts)
}

// GET /posts/{id}/
// GetPost godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} utils.ErrorPayload
// @Router /posts/{id}/ [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	utils.JSONResponse(w, http.StatusOK, post)
}

// POST /posts/
// CreatePost godoc
// @Summary Create a post for an existing user
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body schemas.PostCreate true "New post"
// @Success 201 {object} models.Post
// @Failure 404 {object} utils.ErrorPayload "User not found"
// @Failure 422 {object} utils.ErrorPayload
// @Router /posts/ [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input schemas.PostCreate
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureUser(r.Context(), h.users, input.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	post := input.Post()
	if err := h.posts.Create(r.Context(), post); err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, post)
}

// PUT /posts/{id}/
// ReplacePost godoc
// @Summary Replace every field of a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body schemas.PostUpdate true "Full post"
// @Success 200 {object} models.Post
// @Failure 404 {object} utils.ErrorPayload "Post or user not found"
// @Failure 422 {object} utils.ErrorPayload
// @Router /posts/{id}/ [put]
func (h *PostHandler) ReplacePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input schemas.PostUpdate
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	if err := h.checkOwnerChange(r.Context(), post.UserID, input.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	input.Apply(post)
	if err := h.posts.Update(r.Context(), post); err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	utils.JSONResponse(w, http.StatusOK, post)
}

// PATCH /posts/{id}/
// UpdatePost godoc
// @Summary Change some fields of a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body schemas.PostPatch true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 404 {object} utils.ErrorPayload "Post or user not found"
// @Failure 422 {object} utils.ErrorPayload
// @Router /posts/{id}/ [patch]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input schemas.PostPatch
	if err := schemas.Decode(r.Body, &input); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	if input.UserID.Set {
		if err := h.checkOwnerChange(r.Context(), post.UserID, input.UserID.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}

	columns := input.Columns()
	if len(columns) == 0 {
		utils.JSONResponse(w, http.StatusOK, post)
		return
	}
	input.Apply(post)
	if err := h.posts.Update(r.Context(), post, columns...); err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	utils.JSONResponse(w, http.StatusOK, post)
}

// DELETE /posts/{id}/
// DeletePost godoc
// @Summary Delete a post
// @Tags Posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} utils.ErrorPayload
// @Router /posts/{id}/ [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeError(w, r, notFoundAs(err, errPostNotFound))
		return
	}
	utils.NoContent(w)
}

// checkOwnerChange validates the new author when a write moves a post to another user.
func (h *PostHandler) checkOwnerChange(ctx context.Context, current, next uint) error {
	if current == next {
		return nil
	}
	return ensureUser(ctx, h.users, next)
}
