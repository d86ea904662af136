package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	"github.com/SscSPs/token_ledger/internal/dto"
)

// Quantities are passed as one argument, e.g. "100.0000 TOK".

var cmdCreate = &cobra.Command{
	Use:   "create [issuer] [maximum supply]",
	Short: "Register a token symbol (signed by the ledger owner)",
	Args:  cobra.ExactArgs(2),
	Run:   create,
}

var cmdIssue = &cobra.Command{
	Use:   "issue [to] [quantity] [memo]",
	Short: "Issue tokens (signed by the issuer)",
	Args:  cobra.RangeArgs(2, 3),
	Run:   issue,
}

var cmdBurn = &cobra.Command{
	Use:   "burn [from] [quantity] [memo]",
	Short: "Burn tokens (signed by the holder)",
	Args:  cobra.RangeArgs(2, 3),
	Run:   burn,
}

var cmdSignup = &cobra.Command{
	Use:   "signup [owner] [quantity]",
	Short: "Open a zero balance record (signed by the owner)",
	Args:  cobra.ExactArgs(2),
	Run:   signup,
}

var cmdTransfer = &cobra.Command{
	Use:   "transfer [from] [to] [quantity] [memo]",
	Short: "Transfer tokens (signed by the sender)",
	Args:  cobra.RangeArgs(3, 4),
	Run:   transfer,
}

var flagFree struct {
	Free bool
}

func init() {
	cmdMain.AddCommand(cmdCreate, cmdIssue, cmdBurn, cmdSignup, cmdTransfer)

	for _, cmd := range []*cobra.Command{cmdIssue, cmdTransfer} {
		cmd.Flags().BoolVar(&flagFree.Free, "free", false, "Refuse to create the recipient's balance record")
	}
}

func parseQuantity(s string) domain.Amount {
	quantity, err := domain.ParseAmount(s)
	checkf(err, "parse quantity %q", s)
	return quantity
}

func memoArg(args []string, i int) string {
	if len(args) > i {
		return strings.Join(args[i:], " ")
	}
	return ""
}

func printApplied(actions []domain.Action) {
	printJSON(dto.AppliedActionsResponse{Actions: dto.ToListActionResponse(actions)})
}

func create(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	actions, err := svc.Ledger.CreateToken(ctx, args[0], parseQuantity(args[1]), actor())
	checkf(err, "create")
	printApplied(actions)
}

func issue(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	actions, err := svc.Ledger.Issue(ctx, args[0], parseQuantity(args[1]), memoArg(args, 2), !flagFree.Free, actor())
	checkf(err, "issue")
	printApplied(actions)
}

func burn(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	actions, err := svc.Ledger.Burn(ctx, args[0], parseQuantity(args[1]), memoArg(args, 2), actor())
	checkf(err, "burn")
	printApplied(actions)
}

func signup(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	actions, err := svc.Ledger.Signup(ctx, args[0], parseQuantity(args[1]), actor())
	checkf(err, "signup")
	printApplied(actions)
}

func transfer(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	actions, err := svc.Ledger.Transfer(ctx, args[0], args[1], parseQuantity(args[2]), memoArg(args, 3), !flagFree.Free, actor())
	checkf(err, "transfer")
	printApplied(actions)
}
