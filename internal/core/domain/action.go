package domain

import "time"

// ActionName names an operation applied to the ledger.
type ActionName string

const (
	ActionCreate       ActionName = "create"
	ActionIssue        ActionName = "issue"
	ActionIssueFree    ActionName = "issuefree"
	ActionBurn         ActionName = "burn"
	ActionSignup       ActionName = "signup"
	ActionTransfer     ActionName = "transfer"
	ActionTransferFree ActionName = "transferfree"
)

// Action is one applied ledger operation as seen by observers. Operations that
// induce further operations (issue to a third party) produce a child action with
// ParentActionID set.
type Action struct {
	Sequence       int64      `json:"sequence"` // assigned by storage, increasing
	ActionID       string     `json:"actionID"` // Primary Key (UUID)
	ParentActionID *string    `json:"parentActionID,omitempty"`
	Name           ActionName `json:"name"`
	Actor          string     `json:"actor"` // identity whose authority the action carries
	From           string     `json:"from,omitempty"`
	To             string     `json:"to,omitempty"`
	Quantity       Amount     `json:"quantity"`
	Memo           string     `json:"memo,omitempty"`
	Recipients     []string   `json:"recipients"` // identities notified of the action
	CreatedAt      time.Time  `json:"createdAt"`
}

// AddRecipient records that identity is to be notified, once.
func (a *Action) AddRecipient(identity string) {
	for _, r := range a.Recipients {
		if r == identity {
			return
		}
	}
	a.Recipients = append(a.Recipients, identity)
}

// FundsNewRecords reports whether the action may create a destination balance
// record paid for by the sender.
func (n ActionName) FundsNewRecords() bool {
	return n != ActionIssueFree && n != ActionTransferFree
}
