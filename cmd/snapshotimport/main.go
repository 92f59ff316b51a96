// Command snapshotimport loads a legacy leaderboard export into the snapshot store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"donorboard/internal/adapter/backend"
	"donorboard/internal/infra"
)

func main() {
	var (
		orgFlag    int64
		fileFlag   string
		dryRunFlag bool
	)
	flag.Int64Var(&orgFlag, "org", 0, "organization id the export belongs to")
	flag.StringVar(&fileFlag, "file", "", "path to the JSON export")
	flag.BoolVar(&dryRunFlag, "dry-run", false, "build snapshots and print a summary without writing")
	flag.Parse()

	if orgFlag <= 0 {
		exitWithError(errors.New("-org must be a positive organization id"))
	}
	if fileFlag == "" {
		exitWithError(errors.New("-file is required"))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadStoreConfig()
	if err != nil {
		exitWithError(err)
	}
	if cfg.SnapshotBackend == infra.SnapshotBackendNone && !dryRunFlag {
		exitWithError(errors.New("LEGACY_SNAPSHOT_BACKEND is none; nothing to import into"))
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "snapshotimport").Int64("organization_id", orgFlag).Logger()

	f, err := os.Open(fileFlag)
	if err != nil {
		exitWithError(fmt.Errorf("open export: %w", err))
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var sql infra.SQLExecutor
	if cfg.SnapshotBackend == infra.SnapshotBackendPostgres {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			exitWithError(fmt.Errorf("failed to connect database: %w", err))
		}
		defer pool.Close()
		sql = infra.NewSQLRunner(pool, logger)
	}

	store, err := backend.SnapshotStore(ctx, cfg, sql, logger)
	if err != nil {
		exitWithError(err)
	}

	summary, err := importSnapshots(ctx, store, orgFlag, f, dryRunFlag, logger)
	if err != nil {
		exitWithError(err)
	}
	fmt.Println(summary)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "snapshotimport: %v\n", err)
	os.Exit(1)
}
