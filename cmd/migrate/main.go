package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Behyna/credit-ledger/internal/config"
	"github.com/Behyna/credit-ledger/internal/database"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the credit ledger schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./config/config.yml)")

	rootCmd.AddCommand(gooseCommand("up", "Apply all pending migrations", cobra.NoArgs))
	rootCmd.AddCommand(gooseCommand("up-by-one", "Apply the next pending migration", cobra.NoArgs))
	rootCmd.AddCommand(gooseCommand("down", "Roll back the latest migration", cobra.NoArgs))
	rootCmd.AddCommand(gooseCommand("status", "Print the status of all migrations", cobra.NoArgs))
	rootCmd.AddCommand(gooseCommand("version", "Print the current schema version", cobra.NoArgs))
	rootCmd.AddCommand(gooseCommand("up-to", "Migrate up to VERSION", cobra.ExactArgs(1)))
	rootCmd.AddCommand(gooseCommand("down-to", "Roll back down to VERSION", cobra.ExactArgs(1)))
}

func gooseCommand(name, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dsn, err := database.DSN(cfg)
			if err != nil {
				return err
			}

			return repository.RunMigrations(cmd.Context(), cfg.Database.Driver, dsn, name, args...)
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
