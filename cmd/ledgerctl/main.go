package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/core/services"
	"github.com/SscSPs/token_ledger/internal/platform/config"
	"github.com/SscSPs/token_ledger/internal/platform/storage"
	"github.com/SscSPs/token_ledger/internal/utils"
)

var cmdMain = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the token ledger directly against its store",
	Long: "ledgerctl applies ledger actions and reads ledger state without going through the HTTP API.\n" +
		"Storage is selected with the same environment variables as the server (STORAGE_DRIVER, PGSQL_URL, ...).",
	Run: printUsageAndExit1,
}

var flagMain struct {
	As      string
	Verbose bool
}

func init() {
	cmdMain.PersistentFlags().StringVar(&flagMain.As, "as", "", "Account whose authority signs the action")
	cmdMain.PersistentFlags().BoolVarP(&flagMain.Verbose, "verbose", "v", false, "Log at debug level")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		os.Exit(1)
	}
}

func printUsageAndExit1(cmd *cobra.Command, _ []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}

func checkf(err error, format string, otherArgs ...any) {
	if err != nil {
		fatalf(format+": %v", append(otherArgs, err)...)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagMain.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the same configuration as the server.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	checkf(err, "load config")
	return cfg
}

// openServices opens the configured store and builds the services over it. The
// returned function releases the store.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func()) {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg := loadConfig()
	repos, closeRepos, err := storage.Open(ctx, cfg, false, logger)
	checkf(err, "open %s storage", cfg.StorageDriver)

	// Analytics stays off for operator commands.
	return services.NewServiceContainer(cfg, repos, utils.InitializePosthogClient("", logger)), closeRepos
}

// actor returns the --as account or exits.
func actor() string {
	if flagMain.As == "" {
		fatalf("--as <account> is required to sign this action")
	}
	return flagMain.As
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	check(enc.Encode(v))
}
