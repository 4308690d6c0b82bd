package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xclone/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// FindByID loads a user without the password column.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// FindByUsername loads a user including the password hash.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddFollow(ctx context.Context, followerID, followingID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Omit("password").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// AddFollow records that followerID follows followingID. Repeated edges are ignored.
func (r *userRepository) AddFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	edge := model.Follow{FollowerID: followerID, FollowingID: followingID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (r *userRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) loadRelations(ctx context.Context, user *model.User) error {
	user.Followers = []uuid.UUID{}
	user.Following = []uuid.UUID{}

	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", user.ID).
		Order("created_at").
		Pluck("follower_id", &user.Followers).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", user.ID).
		Order("created_at").
		Pluck("following_id", &user.Following).Error
}
