package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"countdown-quiz/internal/config"
	"countdown-quiz/internal/infra/file"
	pgstore "countdown-quiz/internal/infra/postgres"
	pgmigrations "countdown-quiz/internal/infra/postgres/migrations"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "import the YAML question banks from questions.dir")
	return cmd
}

func runMigrations(ctx context.Context, configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg, seed)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, seed bool) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	log.Printf("migrations applied")

	if seed {
		return seedBanks(ctx, cfg)
	}
	return nil
}

// seedBanks copies every <id>.yaml bank from the questions directory into Postgres.
func seedBanks(ctx context.Context, cfg config.Config) error {
	if cfg.Questions.Dir == "" {
		return fmt.Errorf("questions dir not configured")
	}
	paths, err := filepath.Glob(filepath.Join(cfg.Questions.Dir, "*.yaml"))
	if err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := file.NewBankLoader(cfg.Questions.Dir)
	store := pgstore.NewBankLoader(pool)
	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), ".yaml")
		bank, err := loader.LoadBank(ctx, id)
		if err != nil {
			return err
		}
		if err := bank.Validate(); err != nil {
			return err
		}
		if err := store.SaveBank(ctx, bank); err != nil {
			return err
		}
		log.Printf("seeded bank %s (%d questions)", id, len(bank.Questions))
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no question banks found in %s\n", cfg.Questions.Dir)
	}
	return nil
}
