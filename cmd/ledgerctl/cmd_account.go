package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SscSPs/token_ledger/internal/dto"
)

var cmdRegister = &cobra.Command{
	Use:   "register [account]",
	Short: "Register a named account",
	Args:  cobra.ExactArgs(1),
	Run:   register,
}

var flagRegister struct {
	Password string
}

func init() {
	cmdMain.AddCommand(cmdRegister)

	cmdRegister.Flags().StringVar(&flagRegister.Password, "password", "", "Password used to log in to the HTTP API")
	_ = cmdRegister.MarkFlagRequired("password")
}

func register(_ *cobra.Command, args []string) {
	ctx := context.Background()
	svc, done := openServices(ctx)
	defer done()

	account, err := svc.Account.CreateAccount(ctx, dto.RegisterAccountRequest{
		AccountName: args[0],
		Password:    flagRegister.Password,
	})
	checkf(err, "register %s", args[0])
	printJSON(dto.ToAccountResponse(account))
}
