package dto

import "time"

// LoginRequest carries the credentials of an account.
type LoginRequest struct {
	AccountName string `json:"account" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
