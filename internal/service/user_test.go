package service

import (
	"context"
	"sync"
	"testing"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory UserStore recording the column updates it
// was asked to apply.
type fakeUserStore struct {
	mu                 sync.Mutex
	usersByEmail       map[string]*model.User
	profiles           map[string]*model.Profile
	lastProfileUpdates map[string]any
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		usersByEmail: map[string]*model.User{},
		profiles:     map[string]*model.Profile{},
	}
}

func (f *fakeUserStore) CreateAccount(ctx context.Context, user *model.User, profile *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.usersByEmail[user.Email]; exists {
		return ErrEmailTaken
	}
	storedUser := *user
	storedProfile := *profile
	f.usersByEmail[user.Email] = &storedUser
	f.profiles[profile.UserID] = &storedProfile
	return nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeUserStore) UpdateProfileFields(ctx context.Context, userID string, updates map[string]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastProfileUpdates = updates
	profile, ok := f.profiles[userID]
	if !ok {
		return 0, nil
	}
	for column, value := range updates {
		text, _ := value.(string)
		switch column {
		case "user_name":
			profile.UserName = text
		case "phone_number":
			profile.PhoneNumber = text
		case "postcode":
			profile.Postcode = text
		case "address":
			profile.Address = text
		case "detail_address":
			profile.DetailAddress = text
		case "role":
			profile.Role = text
		}
	}
	return 1, nil
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer profile with a hashed password", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store)

		profile, err := svc.Signup(ctx, &model.SignupRequest{
			Email:    "  Shopper@Example.COM ",
			Password: "sup3r-secret",
			UserName: " Jae ",
		})
		require.NoError(t, err)

		assert.Equal(t, model.RoleCustomer, profile.Role)
		assert.Equal(t, "shopper@example.com", profile.Email)
		assert.Equal(t, "Jae", profile.UserName)
		assert.False(t, profile.IsAdmin())

		user := store.usersByEmail["shopper@example.com"]
		require.NotNil(t, user)
		assert.NotEqual(t, "sup3r-secret", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sup3r-secret")))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store)

		_, err := svc.Signup(ctx, &model.SignupRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, &model.SignupRequest{Email: "A@B.com", Password: "secret2"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("rejects a blank email", func(t *testing.T) {
		svc := NewUserService(newFakeUserStore())

		_, err := svc.Signup(ctx, &model.SignupRequest{Email: "   ", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewUserService(store)

	_, err := svc.Signup(ctx, &model.SignupRequest{Email: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	t.Run("valid credentials return the profile", func(t *testing.T) {
		profile, err := svc.VerifyCredentials(ctx, "A@b.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", profile.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "a@b.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same as a wrong password", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "nobody@b.com", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the given fields trimmed", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store)

		created, err := svc.Signup(ctx, &model.SignupRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)

		name := " New Name "
		phone := "010-1234-5678"
		profile, err := svc.UpdateProfile(ctx, created.UserID, &model.UpdateProfileRequest{
			UserName:    &name,
			PhoneNumber: &phone,
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", profile.UserName)
		assert.Equal(t, "010-1234-5678", profile.PhoneNumber)
	})

	t.Run("cannot change the role", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store)

		created, err := svc.Signup(ctx, &model.SignupRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)

		name := "attacker"
		profile, err := svc.UpdateProfile(ctx, created.UserID, &model.UpdateProfileRequest{UserName: &name})
		require.NoError(t, err)

		assert.NotContains(t, store.lastProfileUpdates, "role")
		assert.Equal(t, model.RoleCustomer, profile.Role)
	})

	t.Run("nothing to update returns the current profile", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store)

		created, err := svc.Signup(ctx, &model.SignupRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)

		profile, err := svc.UpdateProfile(ctx, created.UserID, &model.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, created.UserID, profile.UserID)
	})

	t.Run("missing profile is not found", func(t *testing.T) {
		svc := NewUserService(newFakeUserStore())

		name := "x"
		_, err := svc.UpdateProfile(ctx, "ghost", &model.UpdateProfileRequest{UserName: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
