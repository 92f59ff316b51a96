package backend

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"donorboard/internal/adapter/repo"
	"donorboard/internal/infra"
)

type nopSQL struct{}

func (nopSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (nopSQL) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (nopSQL) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func TestSnapshotStore(t *testing.T) {
	ctx := context.Background()

	store, err := SnapshotStore(ctx, &infra.Config{SnapshotBackend: infra.SnapshotBackendPostgres}, nopSQL{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	if _, ok := store.(*repo.SnapshotRepositoryPG); !ok {
		t.Fatalf("expected postgres repository, got %T", store)
	}

	if _, err := SnapshotStore(ctx, &infra.Config{SnapshotBackend: infra.SnapshotBackendPostgres}, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected error without a database connection")
	}

	store, err = SnapshotStore(ctx, &infra.Config{SnapshotBackend: infra.SnapshotBackendNone}, nil, zerolog.Nop())
	if err != nil || store != nil {
		t.Fatalf("none: expected nil store, got %v, %v", store, err)
	}

	if _, err := SnapshotStore(ctx, &infra.Config{SnapshotBackend: "redis"}, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
