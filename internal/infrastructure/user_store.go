package infrastructure

import (
	"context"
	"errors"

	"github.com/babo072/my-shopping-mall/internal/model"
	"github.com/babo072/my-shopping-mall/internal/service"

	"gorm.io/gorm"
)

// UserStore is the gorm-backed persistence layer for accounts and profiles.
type UserStore struct {
	db *gorm.DB
}

var _ service.UserStore = (*UserStore)(nil)

// NewUserStore creates a user store over db.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateAccount inserts the user and its profile in one transaction. The
// email-uniqueness check runs inside the transaction to keep the pair
// consistent with the unique index on users.email.
func (s *UserStore) CreateAccount(ctx context.Context, user *model.User, profile *model.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return service.ErrEmailTaken
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) UpdateProfileFields(ctx context.Context, userID string, updates map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
