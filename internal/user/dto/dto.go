package dto

import "github.com/sweetshop/backend/internal/model"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResult struct {
	User   *model.User `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}
