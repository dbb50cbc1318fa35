package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/user"
	"github.com/sweetshop/backend/internal/user/dto"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo   user.Repository
	tokens *user.TokenIssuer
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens *user.TokenIssuer, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResult, error) {
	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := user.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         model.RoleUser,
		TokenVersion: 0,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", u.ID))
	return uc.issuePair(ctx, u)
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResult, error) {
	u, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrInvalidCredentials
	}

	ok, err := user.VerifyPassword(input.Password, u.PasswordHash)
	if err != nil || !ok {
		return nil, user.ErrInvalidCredentials
	}

	return uc.issuePair(ctx, u)
}

func (uc *userUseCase) issuePair(ctx context.Context, u *model.User) (*dto.AuthResult, error) {
	access, err := uc.tokens.IssueAccess(u)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.tokens.IssueRefresh(u)
	if err != nil {
		return nil, err
	}

	digest := user.DigestToken(refresh)
	if err := uc.repo.StoreRefreshToken(ctx, u.ID, &digest); err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User: u,
		Tokens: dto.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

func (uc *userUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := uc.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := uc.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrTokenInvalid
	}

	// Generation check: a version bump since issuance revokes the token.
	if claims.TokenVersion != u.TokenVersion {
		return nil, user.ErrTokenRevoked
	}

	// Rotation check: only the most recently issued refresh token is live.
	digest := user.DigestToken(refreshToken)
	if u.RefreshToken == nil || *u.RefreshToken != digest {
		return nil, user.ErrTokenRevoked
	}

	result, err := uc.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}
	return &result.Tokens, nil
}

func (uc *userUseCase) Logout(ctx context.Context, userID string) error {
	_, err := uc.repo.BumpTokenVersion(ctx, userID)
	if err != nil {
		return err
	}
	uc.logger.Info("user sessions revoked", zap.String("user_id", userID))
	return nil
}

func (uc *userUseCase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}
