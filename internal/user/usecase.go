package user

import (
	"context"

	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResult, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResult, error)

	// Refresh rotates the pair: the presented refresh token must match the
	// stored digest and carry the current token version; after success it is
	// unusable.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)

	// Logout revokes every outstanding refresh token by bumping the user's
	// token version.
	Logout(ctx context.Context, userID string) error

	GetProfile(ctx context.Context, userID string) (*model.User, error)
}
