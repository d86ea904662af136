package dto

import (
	"time"

	"github.com/SscSPs/token_ledger/internal/core/domain"
)

// ActionResponse defines the data returned for an applied action.
type ActionResponse struct {
	Sequence       int64     `json:"sequence"`
	ActionID       string    `json:"actionID"`
	ParentActionID *string   `json:"parentActionID,omitempty"`
	Name           string    `json:"name"`
	Actor          string    `json:"actor"`
	From           string    `json:"from,omitempty"`
	To             string    `json:"to,omitempty"`
	Quantity       string    `json:"quantity"`
	Memo           string    `json:"memo,omitempty"`
	Recipients     []string  `json:"recipients"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToActionResponse converts a domain.Action to ActionResponse DTO
func ToActionResponse(a *domain.Action) ActionResponse {
	recipients := a.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return ActionResponse{
		Sequence:       a.Sequence,
		ActionID:       a.ActionID,
		ParentActionID: a.ParentActionID,
		Name:           string(a.Name),
		Actor:          a.Actor,
		From:           a.From,
		To:             a.To,
		Quantity:       a.Quantity.String(),
		Memo:           a.Memo,
		Recipients:     recipients,
		CreatedAt:      a.CreatedAt,
	}
}

// ToListActionResponse converts a slice of domain.Action to a slice of ActionResponse DTOs
func ToListActionResponse(actions []domain.Action) []ActionResponse {
	res := make([]ActionResponse, len(actions))
	for i := range actions {
		res[i] = ToActionResponse(&actions[i])
	}
	return res
}

// AppliedActionsResponse wraps the actions applied by one ledger request.
type AppliedActionsResponse struct {
	Actions []ActionResponse `json:"actions"`
}

// ListActionsParams defines query parameters for listing the action log.
type ListActionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Account   string  `form:"account"`
}

// ListActionsResponse wraps a page of the action log.
type ListActionsResponse struct {
	Actions   []ActionResponse `json:"actions"`
	NextToken *string          `json:"nextToken,omitempty"`
}
