package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadflowhq/leadflow/internal/infra/auth"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.CreateToken("user-1", "Jane Roe", "jane@leadflow.app", secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Jane Roe", claims.Name)
	assert.Equal(t, "jane@leadflow.app", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := auth.CreateToken("user-1", "Jane Roe", "jane@leadflow.app", secret)
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token, []byte("another-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	claims, err := auth.VerifyToken("not.a.token", secret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
