package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/user"
	"github.com/sweetshop/backend/internal/user/dto"
)

type stubRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:    map[string]*model.User{},
		byEmail: map[string]*model.User{},
	}
}

func (r *stubRepo) Create(ctx context.Context, u *model.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubRepo) StoreRefreshToken(ctx context.Context, userID string, digest *string) error {
	u := r.byID[userID]
	u.RefreshToken = digest
	return nil
}

func (r *stubRepo) BumpTokenVersion(ctx context.Context, userID string) (int, error) {
	u := r.byID[userID]
	u.TokenVersion++
	u.RefreshToken = nil
	return u.TokenVersion, nil
}

func newTestUseCase(repo user.Repository) user.UseCase {
	tokens := user.NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	return NewUserUseCase(repo, tokens, logger.NewNop())
}

func register(t *testing.T, uc user.UseCase, email string) *dto.AuthResult {
	t.Helper()
	result, err := uc.Register(context.Background(), &dto.RegisterInput{
		Email:    email,
		Password: "chocolate-rain",
		Name:     "Ada",
	})
	require.NoError(t, err)
	return result
}

func TestRegister_NewUser(t *testing.T) {
	repo := newStubRepo()
	uc := newTestUseCase(repo)

	result := register(t, uc, "ada@example.com")

	assert.Equal(t, model.RoleUser, result.User.Role)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.NotEqual(t, "chocolate-rain", result.User.PasswordHash)

	// The refresh token digest is stored, never the token itself.
	stored := repo.byID[result.User.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, user.DigestToken(result.Tokens.RefreshToken), *stored.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := newTestUseCase(newStubRepo())
	register(t, uc, "ada@example.com")

	_, err := uc.Register(context.Background(), &dto.RegisterInput{
		Email:    "ada@example.com",
		Password: "another-password",
		Name:     "Imposter",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	uc := newTestUseCase(newStubRepo())
	register(t, uc, "ada@example.com")

	result, err := uc.Login(context.Background(), &dto.LoginInput{
		Email:    "ada@example.com",
		Password: "chocolate-rain",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = uc.Login(context.Background(), &dto.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), &dto.LoginInput{
		Email:    "nobody@example.com",
		Password: "chocolate-rain",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	uc := newTestUseCase(newStubRepo())
	result := register(t, uc, "ada@example.com")

	pair, err := uc.Refresh(context.Background(), result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, result.Tokens.RefreshToken, pair.RefreshToken)

	// The replaced token is dead.
	_, err = uc.Refresh(context.Background(), result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, user.ErrTokenRevoked)

	// The new one works.
	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_RevokedAfterLogout(t *testing.T) {
	uc := newTestUseCase(newStubRepo())
	result := register(t, uc, "ada@example.com")

	require.NoError(t, uc.Logout(context.Background(), result.User.ID))

	_, err := uc.Refresh(context.Background(), result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, user.ErrTokenRevoked)
}

func TestRefresh_GarbageToken(t *testing.T) {
	uc := newTestUseCase(newStubRepo())

	_, err := uc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, user.ErrTokenInvalid)
}

func TestGetProfile(t *testing.T) {
	uc := newTestUseCase(newStubRepo())
	result := register(t, uc, "ada@example.com")

	u, err := uc.GetProfile(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = uc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
