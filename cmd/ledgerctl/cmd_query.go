package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/token_ledger/internal/dto"
)

var cmdBalance = &cobra.Command{
	Use:   "balance [account] [symbol code]",
	Short: "Show an account's balances, or one balance",
	Args:  cobra.RangeArgs(1, 2),
	Run:   balance,
}

var cmdAudit = &cobra.Command{
	Use:   "audit [symbol code]",
	Short: "Check that a symbol's supply equals the sum of its balances",
	Args:  cobra.ExactArgs(1),
	Run:   audit,
}

var cmdLog = &cobra.Command{
	Use:   "log",
	Short: "List applied actions, newest first",
	Args:  cobra.NoArgs,
	Run:   listLog,
}

var flagLog struct {
	Account   string
	Limit     int
	NextToken string
}

func init() {
	cmdMain.AddCommand(cmdBalance, cmdAudit, cmdLog)

	cmdLog.Flags().StringVar(&flagLog.Account, "account", "", "Only actions involving this account")
	cmdLog.Flags().IntVar(&flagLog.Limit, "limit", 20, "Maximum number of actions")
	cmdLog.Flags().StringVar(&flagLog.NextToken, "next", "", "Token from a previous page")
}

func balance(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	if len(args) == 2 {
		b, err := svc.Ledger.GetBalance(ctx, args[0], strings.ToUpper(args[1]))
		checkf(err, "balance of %s", args[0])
		printJSON(dto.ToBalanceResponse(b))
		return
	}

	balances, err := svc.Ledger.ListBalances(ctx, args[0])
	checkf(err, "balances of %s", args[0])
	printJSON(dto.ToListBalanceResponse(balances))
}

func audit(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	result, err := svc.Ledger.AuditSupply(ctx, strings.ToUpper(args[0]))
	checkf(err, "audit %s", args[0])
	printJSON(dto.ToSupplyAuditResponse(result))
	if !result.IsConsistent {
		fmt.Fprintf(os.Stderr, "Supply of %s does not match its balances\n", result.Symbol.Code)
		os.Exit(2)
	}
}

func listLog(_ *cobra.Command, _ []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	params := dto.ListActionsParams{Limit: flagLog.Limit, Account: flagLog.Account}
	if flagLog.NextToken != "" {
		params.NextToken = &flagLog.NextToken
	}
	resp, err := svc.Ledger.ListActions(ctx, params)
	checkf(err, "list actions")
	printJSON(resp)
}
