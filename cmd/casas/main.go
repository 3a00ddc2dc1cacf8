package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"house-catalog/internal/adapters/storage/schema"
	"house-catalog/internal/adapters/storage/sqldb"
	"house-catalog/internal/app"
	"house-catalog/internal/platform/config"
	"house-catalog/internal/platform/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "casas",
		Short:         "CRUD de viviendas (casas y departamentos)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runApp,
	}
	rootCmd.PersistentFlags().String("database-url", "", "pisa DATABASE_URL (ruta sqlite, postgres://... o memory:)")
	rootCmd.PersistentFlags().String("log-level", "", "pisa LOG_LEVEL (debug|info|warn|error)")

	rootCmd.AddCommand(schemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}

func schemaCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Crea las tablas houses_kind y houses",
		Long:  `Crea (o completa) las tablas houses_kind y houses en la base de DATABASE_URL. Con --seed carga los tipos casa, departamento y PH si la tabla de tipos está vacía.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if strings.EqualFold(cfg.DatabaseURL, app.MemoryURL) {
				return fmt.Errorf("schema: %s has no schema to provision", app.MemoryURL)
			}

			ctx := cmd.Context()
			db, dialect, err := sqldb.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("error connecting to %s: %w", cfg.DatabaseURL, err)
			}
			defer db.Close()

			if err := schema.Provision(ctx, db, dialect, schema.Options{Seed: seed}); err != nil {
				return fmt.Errorf("failed to provision schema: %w", err)
			}

			fmt.Printf("Schema listo en %s (%s)\n", cfg.DatabaseURL, dialect)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "sembrar tipos por defecto si no hay ninguno")
	return cmd
}

// loadConfig lee .env + entorno y aplica los flags globales encima.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()

	if url, _ := cmd.Flags().GetString("database-url"); strings.TrimSpace(url) != "" {
		cfg.DatabaseURL = strings.TrimSpace(url)
		err = nil
	}
	if err != nil {
		return cfg, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = logger.ParseLevel(lvl)
	}
	return cfg, nil
}
