package handlers

import (
	"context"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
)

// UserStore is the persistence the user, post and photo handlers need.
// Implemented by repositories.UserRepo.
type UserStore interface {
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	// Update writes the named columns of user, or all of them when none are given.
	Update(ctx context.Context, user *models.User, columns ...string) error
	Delete(ctx context.Context, id uint) error
}

// PostStore is implemented by repositories.PostRepo.
type PostStore interface {
	List(ctx context.Context, offset, limit int, userID uint) ([]models.Post, error)
	Get(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post, columns ...string) error
	Delete(ctx context.Context, id uint) error
}

// PhotoStore is implemented by repositories.DiskPhotos and repositories.R2Photos.
type PhotoStore interface {
	Save(ctx context.Context, upload repositories.Upload) (string, error)
	Delete(ctx context.Context, name string) error
}
