package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"realestate-agent/internal/config"
	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"
	"realestate-agent/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		reset      bool
		file       string
		initSchema bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample property listings into the catalog",
		Long: `Load sample property listings into the PostgreSQL catalog.

By default the bundled Goa sample catalog is inserted when the properties
table is empty. Use --reset to replace existing listings, or --file to load
a custom YAML catalog.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := cfg.Logging.NewLogger(os.Stderr)

			props := seed.Default()
			if file != "" {
				if props, err = seed.LoadFile(file); err != nil {
					return err
				}
			}

			return runSeed(cmd, cfg, logger, props, reset, initSchema)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing properties before seeding")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the bundled sample")
	cmd.Flags().BoolVar(&initSchema, "init-schema", true, "create tables and extensions if missing")

	return cmd
}

func runSeed(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, props []model.Property, reset, initSchema bool) error {
	ctx := cmd.Context()

	db, err := repository.Connect(cfg.GetPostgreSQLDSN(), cfg.PostgreSQL.MaxConnections, cfg.PostgreSQL.MaxIdleConnections)
	if err != nil {
		return err
	}
	defer db.Close()

	if initSchema {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	n, err := seed.Seed(ctx, repository.NewPostgresRepository(db), props, reset, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d properties\n", n)
	return nil
}
