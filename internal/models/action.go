package models

import "time"

// Action is a row of the actions table.
type Action struct {
	Sequence        int64     `db:"sequence"`
	ActionID        string    `db:"action_id"`
	ParentActionID  *string   `db:"parent_action_id"` // Nullable
	Name            string    `db:"name"`
	Actor           string    `db:"actor"`
	FromAccount     string    `db:"from_account"`
	ToAccount       string    `db:"to_account"`
	Quantity        int64     `db:"quantity"`
	SymbolPrecision int16     `db:"symbol_precision"`
	SymbolCode      string    `db:"symbol_code"`
	Memo            string    `db:"memo"`
	Recipients      []string  `db:"recipients"`
	CreatedAt       time.Time `db:"created_at"`
}
