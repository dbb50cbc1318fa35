package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	BaseModel
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Name         string  `db:"name" json:"name"`
	Role         string  `db:"role" json:"role"`
	TokenVersion int     `db:"token_version" json:"-"`
	RefreshToken *string `db:"refresh_token" json:"-"` // sha-256 digest of the current refresh token
}
