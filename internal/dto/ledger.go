package dto

import (
	"time"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// Quantities travel as strings of the form "100.0000 TOK"; the number of
// fraction digits is the symbol precision.

// CreateTokenRequest defines the data needed to register a token symbol.
type CreateTokenRequest struct {
	Issuer        string `json:"issuer" binding:"required,accountname"`
	MaximumSupply string `json:"maximumSupply" binding:"required" example:"1000.0000 TOK"`
}

// IssueRequest defines the data needed to issue units of a token.
type IssueRequest struct {
	To       string `json:"to" binding:"required,accountname"`
	Quantity string `json:"quantity" binding:"required" example:"100.0000 TOK"`
	Memo     string `json:"memo"`
}

// BurnRequest defines the data needed to retire units of a token.
type BurnRequest struct {
	From     string `json:"from" binding:"required,accountname"`
	Quantity string `json:"quantity" binding:"required" example:"10.0000 TOK"`
	Memo     string `json:"memo"`
}

// SignupRequest defines the data needed to open a zero balance record.
type SignupRequest struct {
	Owner    string `json:"owner" binding:"required,accountname"`
	Quantity string `json:"quantity" binding:"required" example:"0.0000 TOK"`
}

// TransferRequest defines the data needed to move units between accounts.
type TransferRequest struct {
	From     string `json:"from" binding:"required,accountname"`
	To       string `json:"to" binding:"required,accountname"`
	Quantity string `json:"quantity" binding:"required" example:"40.0000 TOK"`
	Memo     string `json:"memo"`
}

// TokenStatResponse defines the data returned for a registered token.
type TokenStatResponse struct {
	Symbol        string    `json:"symbol"`
	Issuer        string    `json:"issuer"`
	Supply        string    `json:"supply"`
	MaximumSupply string    `json:"maximumSupply"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToTokenStatResponse converts a domain.TokenStat to TokenStatResponse DTO
func ToTokenStatResponse(t *domain.TokenStat) TokenStatResponse {
	return TokenStatResponse{
		Symbol:        t.Symbol().String(),
		Issuer:        t.Issuer,
		Supply:        t.Supply.String(),
		MaximumSupply: t.MaxSupply.String(),
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToListTokenStatResponse converts a slice of domain.TokenStat to a slice of TokenStatResponse DTOs
func ToListTokenStatResponse(stats []domain.TokenStat) []TokenStatResponse {
	res := make([]TokenStatResponse, len(stats))
	for i := range stats {
		res[i] = ToTokenStatResponse(&stats[i])
	}
	return res
}

// BalanceResponse defines the data returned for a balance record.
type BalanceResponse struct {
	Owner         string    `json:"owner"`
	Symbol        string    `json:"symbol"`
	Balance       string    `json:"balance"`
	Payer         string    `json:"payer"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse DTO
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		Owner:         b.Owner,
		Symbol:        b.Balance.Symbol.String(),
		Balance:       b.Balance.String(),
		Payer:         b.Payer,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBalanceResponse converts a slice of domain.Balance to a slice of BalanceResponse DTOs
func ToListBalanceResponse(balances []domain.Balance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i := range balances {
		res[i] = ToBalanceResponse(&balances[i])
	}
	return res
}

// SupplyAuditResponse defines the data returned by a supply audit.
type SupplyAuditResponse struct {
	Symbol       string `json:"symbol"`
	Supply       string `json:"supply"`
	BalancesSum  string `json:"balancesSum"`
	RecordCount  int    `json:"recordCount"`
	IsConsistent bool   `json:"isConsistent"`
}

// ToSupplyAuditResponse converts a domain.SupplyAudit to SupplyAuditResponse DTO
func ToSupplyAuditResponse(a *domain.SupplyAudit) SupplyAuditResponse {
	return SupplyAuditResponse{
		Symbol:       a.Symbol.String(),
		Supply:       a.Supply.String(),
		BalancesSum:  a.BalancesSum.String(),
		RecordCount:  a.RecordCount,
		IsConsistent: a.IsConsistent,
	}
}
