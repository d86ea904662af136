package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/token_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
)

type authorityCtxKey struct{}

// WithAuthority returns a copy of ctx in which exactly the given identities have
// authorised the action being applied.
func WithAuthority(ctx context.Context, identities ...string) context.Context {
	return context.WithValue(ctx, authorityCtxKey{}, identities)
}

// AuthoritiesFromCtx returns the identities that authorised the current action.
func AuthoritiesFromCtx(ctx context.Context) []string {
	identities, _ := ctx.Value(authorityCtxKey{}).([]string)
	return identities
}

// actionAuthorizer grants an identity's authority only if the current action
// was signed by it.
type actionAuthorizer struct{}

// NewActionAuthorizer returns the default Authorizer.
func NewActionAuthorizer() portssvc.Authorizer {
	return actionAuthorizer{}
}

func (actionAuthorizer) RequireAuth(ctx context.Context, identity string) error {
	for _, id := range AuthoritiesFromCtx(ctx) {
		if id == identity {
			return nil
		}
	}
	return fmt.Errorf("%w of %s", apperrors.ErrUnauthorized, identity)
}

var _ portssvc.Authorizer = actionAuthorizer{}
