package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/goldsmith-storefront/internal/config"
	"github.com/suPer8Hu/goldsmith-storefront/internal/db"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "goldctl",
		Short: "Goldsmith storefront admin tool",
		Long: `Administer the storefront database: migrate the schema, load seed data,
inspect or override gold prices, run the price calculator and issue signed
upload credentials.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newPriceCmd())
	root.AddCommand(newCalcCmd())
	root.AddCommand(newSignUploadCmd())
	return root
}

// env is what a command needs from the configuration.
type env struct {
	cfg config.Config
	log *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := zap.NewNop()
	if verbose {
		if log, err = logging.New(cfg.LogLevel, "console"); err != nil {
			return nil, err
		}
	}
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) openDB(ctx context.Context) (*gorm.DB, error) {
	gdb, err := db.Connect(ctx, e.cfg.DBDriver, e.cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
