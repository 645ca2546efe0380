package entity

import "github.com/golang-jwt/jwt/v5"

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims is the payload of an access token
type Claims struct {
	IsAdmin int `json:"is_admin"`
	jwt.RegisteredClaims
}

type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Disabled bool   `json:"disabled"`
	IsAdmin  int    `json:"is_admin"`
}

type VerifyResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin int    `json:"is_admin"`
}

type UserItem struct {
	ItemID int    `json:"item_id"`
	Owner  string `json:"owner"`
}
