package user

import (
	"context"

	"github.com/sweetshop/backend/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)

	// StoreRefreshToken replaces the stored refresh-token digest; nil clears it.
	StoreRefreshToken(ctx context.Context, userID string, digest *string) error

	// BumpTokenVersion atomically increments the user's generation counter and
	// clears the stored refresh token, returning the new version.
	BumpTokenVersion(ctx context.Context, userID string) (int, error)
}
