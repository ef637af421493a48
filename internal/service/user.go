package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email/password verification fails.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned by a UserStore when the signup email is already
// registered.
var ErrEmailTaken = errors.New("email is already registered")

// UserStore is the persistence surface for accounts and profiles. The gorm
// implementation lives in internal/infrastructure.
type UserStore interface {
	// CreateAccount inserts the user and its profile in one transaction and
	// returns ErrEmailTaken when the email is already registered.
	CreateAccount(ctx context.Context, user *model.User, profile *model.Profile) error

	FindUserByEmail(ctx context.Context, email string) (*model.User, error)

	FindProfile(ctx context.Context, userID string) (*model.Profile, error)

	// UpdateProfileFields applies the given column updates and returns the
	// number of rows touched.
	UpdateProfileFields(ctx context.Context, userID string, updates map[string]any) (int64, error)
}

// UserService manages accounts and profiles.
type UserService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.Profile, error)
	VerifyCredentials(ctx context.Context, email, password string) (*model.Profile, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
}

type userServiceImpl struct {
	store UserStore
}

// NewUserService creates a user service over store.
func NewUserService(store UserStore) UserService {
	return &userServiceImpl{store: store}
}

// Signup creates the account and its customer profile. Every new account
// starts as a customer; promotion never happens through a request path.
func (s *userServiceImpl) Signup(ctx context.Context, req *model.SignupRequest) (*model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	profile := &model.Profile{
		UserID:   user.ID,
		Email:    email,
		Role:     model.RoleCustomer,
		UserName: strings.TrimSpace(req.UserName),
	}

	if err := s.store.CreateAccount(ctx, user, profile); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, fmt.Errorf("%w: email is already registered", ErrInvalidRequest)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return profile, nil
}

// VerifyCredentials checks the password and returns the matching profile.
func (s *userServiceImpl) VerifyCredentials(ctx context.Context, email, password string) (*model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.GetProfile(ctx, user.ID)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return s.store.FindProfile(ctx, userID)
}

// UpdateProfile applies the non-nil fields. The role is never part of the
// update set, so this path cannot escalate privileges.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = strings.TrimSpace(*req.UserName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Postcode != nil {
		updates["postcode"] = strings.TrimSpace(*req.Postcode)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.DetailAddress != nil {
		updates["detail_address"] = strings.TrimSpace(*req.DetailAddress)
	}

	if len(updates) > 0 {
		rows, err := s.store.UpdateProfileFields(ctx, userID, updates)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if rows == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetProfile(ctx, userID)
}
