package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetshop/backend/internal/model"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
}

func testUser() *model.User {
	return &model.User{
		BaseModel:    model.BaseModel{ID: "u-1"},
		Email:        "ada@example.com",
		Role:         model.RoleUser,
		TokenVersion: 3,
	}
}

func TestIssueRefresh_ParseRoundTrip(t *testing.T) {
	issuer := testIssuer()
	u := testUser()

	token, err := issuer.IssueRefresh(u)
	require.NoError(t, err)

	claims, err := issuer.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestIssueRefresh_TokensAreUnique(t *testing.T) {
	issuer := testIssuer()
	u := testUser()

	t1, err := issuer.IssueRefresh(u)
	require.NoError(t, err)
	t2, err := issuer.IssueRefresh(u)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestParseRefresh_RejectsAccessToken(t *testing.T) {
	issuer := testIssuer()

	access, err := issuer.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRefresh_RejectsWrongSecret(t *testing.T) {
	token, err := testIssuer().IssueRefresh(testUser())
	require.NoError(t, err)

	other := NewTokenIssuer("different-secret", time.Minute, time.Hour)
	_, err = other.ParseRefresh(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRefresh_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, -time.Minute)

	token, err := issuer.IssueRefresh(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseRefresh(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRefresh_GarbageInput(t *testing.T) {
	_, err := testIssuer().ParseRefresh("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDigestToken_Deterministic(t *testing.T) {
	assert.Equal(t, DigestToken("abc"), DigestToken("abc"))
	assert.NotEqual(t, DigestToken("abc"), DigestToken("abd"))
	assert.Len(t, DigestToken("abc"), 64)
}
