package repositories

import (
	"context"
	"errors"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// List returns a page of posts in insertion order, restricted to one author
// when userID is not zero.
func (r *PostRepo) List(ctx context.Context, offset, limit int, userID uint) ([]models.Post, error) {
	posts := make([]models.Post, 0, limit)
	q := r.db.WithContext(ctx)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("id").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepo) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = 0
	return postError(r.db.WithContext(ctx).Create(post).Error)
}

// Update writes the named columns of post, or every mutable column when none are given.
func (r *PostRepo) Update(ctx context.Context, post *models.Post, columns ...string) error {
	q := r.db.WithContext(ctx).Model(post)
	if len(columns) > 0 {
		q = q.Select(columns)
	} else {
		q = q.Select("*").Omit("ID", "CreatedAt")
	}
	res := q.Updates(post)
	if res.Error != nil {
		return postError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func postError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrUserNotFound
	}
	return translate(err)
}
