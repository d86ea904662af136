package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/token_ledger/internal/platform/config"
	"github.com/SscSPs/token_ledger/pkg/database"
)

var cmdMigrate = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert the database schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	Run:       runMigrate,
}

func init() {
	cmdMain.AddCommand(cmdMigrate)
}

func runMigrate(_ *cobra.Command, args []string) {
	direction := database.MigrateUp
	if len(args) == 1 {
		direction = database.MigrateDirection(args[0])
	}

	cfg := loadConfig()
	if cfg.StorageDriver != config.StorageDriverPostgres {
		fatalf("migrations only apply to the %s storage driver", config.StorageDriverPostgres)
	}

	changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction, newLogger())
	checkf(err, "migrate %s", direction)
	if changed {
		fmt.Printf("Migrated %s\n", direction)
	} else {
		fmt.Println("No change")
	}
}
