// Package backend selects the legacy snapshot store named by the configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"donorboard/internal/adapter/dynamo"
	"donorboard/internal/adapter/repo"
	"donorboard/internal/domain"
	"donorboard/internal/infra"
)

// SnapshotStore returns the configured store, or nil for the "none" backend. sql may be
// nil unless the backend is postgres.
func SnapshotStore(ctx context.Context, cfg *infra.Config, sql infra.SQLExecutor, logger zerolog.Logger) (domain.SnapshotStore, error) {
	switch cfg.SnapshotBackend {
	case infra.SnapshotBackendPostgres:
		if sql == nil {
			return nil, fmt.Errorf("postgres snapshot backend needs a database connection")
		}
		return repo.NewSnapshotRepository(sql), nil
	case infra.SnapshotBackendDynamoDB:
		client, err := infra.NewDynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return dynamo.NewSnapshotStore(client, cfg.LegacyDynamoDBTable, logger), nil
	case infra.SnapshotBackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
