package auth

import (
	"testing"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService([]byte("test-secret"))

	token, err := svc.IssueToken(&model.Profile{
		UserID: "user-1",
		Email:  "user@example.com",
		Role:   model.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, model.RoleCustomer, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService([]byte("test-secret"))

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	issuer := NewService([]byte("key-one"))
	verifier := NewService([]byte("key-two"))

	token, err := issuer.IssueToken(&model.Profile{UserID: "user-1", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
