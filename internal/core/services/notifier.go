package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/utils"
)

// posthogNotifier delivers action notifications as PostHog events, one per
// notified identity.
type posthogNotifier struct {
	client *utils.PosthogClientWrapper
}

// NewPosthogNotifier builds a Notifier backed by PostHog. An uninitialised client
// makes it a no-op.
func NewPosthogNotifier(client *utils.PosthogClientWrapper) portssvc.Notifier {
	return &posthogNotifier{client: client}
}

func (n *posthogNotifier) Notify(_ context.Context, identity string, action domain.Action) {
	props := map[string]any{
		"action_id": action.ActionID,
		"actor":     action.Actor,
		"quantity":  action.Quantity.String(),
		"symbol":    action.Quantity.Symbol.Code,
	}
	if action.ParentActionID != nil {
		props["parent_action_id"] = *action.ParentActionID
	}
	if action.From != "" {
		props["from"] = action.From
	}
	if action.To != "" {
		props["to"] = action.To
	}
	if action.Memo != "" {
		props["memo"] = action.Memo
	}
	n.client.Enqueue(identity, "ledger_"+string(action.Name), props)
}

// loggingNotifier logs every notification before handing it to next.
type loggingNotifier struct {
	BaseService
	next portssvc.Notifier
}

// NewLoggingNotifier wraps next, which may be nil, with debug logging.
func NewLoggingNotifier(next portssvc.Notifier) portssvc.Notifier {
	return &loggingNotifier{next: next}
}

func (n *loggingNotifier) Notify(ctx context.Context, identity string, action domain.Action) {
	n.LogDebug(ctx, "Notifying recipient",
		slog.String("recipient", identity),
		slog.String("action", string(action.Name)),
		slog.String("action_id", action.ActionID))
	if n.next != nil {
		n.next.Notify(ctx, identity, action)
	}
}
