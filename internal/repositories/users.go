package repositories

import (
	"context"
	"errors"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// List returns a page of users in insertion order.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	users := make([]models.User, 0, limit)
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether a user other than exceptID already has email.
// Pass exceptID 0 to check against every user.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = 0
	return userError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// Update writes the named columns of user, nulls included, and bumps
// updated_at. With no columns every mutable column is written.
func (r *UserRepo) Update(ctx context.Context, user *models.User, columns ...string) error {
	q := r.db.WithContext(ctx).Model(user)
	if len(columns) > 0 {
		q = q.Select(columns)
	} else {
		q = q.Select("*").Omit("ID", "CreatedAt", clause.Associations)
	}
	res := q.Updates(user)
	if res.Error != nil {
		return userError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user; its posts go with it through the cascading foreign key.
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func userError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return translate(err)
}
