package dto

import (
	"time"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// RegisterAccountRequest defines the data needed to register a new account.
type RegisterAccountRequest struct {
	AccountName string `json:"account" binding:"required,accountname"`
	Password    string `json:"password" binding:"required,min=8"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountName string    `json:"account"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountName: a.AccountName,
		CreatedAt:   a.CreatedAt,
	}
}
