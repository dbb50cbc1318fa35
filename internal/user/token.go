package user

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sweetshop/backend/internal/model"
)

// TokenIssuer mints and verifies the service's HS256 tokens. Refresh tokens
// embed the user's token-version generation counter: bumping the counter
// invalidates every refresh token issued before the bump.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (t *TokenIssuer) IssueAccess(u *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       u.ID,
		"email":         u.Email,
		"role":          u.Role,
		"token_version": u.TokenVersion,
		"exp":           time.Now().Add(t.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) IssueRefresh(u *model.User) (string, error) {
	// jti keeps tokens distinct even when two are minted within the same
	// second, so rotation always invalidates the previous one.
	claims := jwt.MapClaims{
		"user_id":       u.ID,
		"token_version": u.TokenVersion,
		"typ":           "refresh",
		"jti":           uuid.New().String(),
		"exp":           time.Now().Add(t.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

type RefreshClaims struct {
	UserID       string
	TokenVersion int
}

// ParseRefresh verifies signature, expiry and token type; version and
// rotation checks against stored state are the caller's job.
func (t *TokenIssuer) ParseRefresh(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, ErrTokenInvalid
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}
	version, ok := claims["token_version"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return &RefreshClaims{
		UserID:       userID,
		TokenVersion: int(version),
	}, nil
}

// DigestToken returns the hex sha-256 of a token; only the digest of the
// current refresh token is stored.
func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
