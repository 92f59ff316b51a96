package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"donorboard/internal/domain"
	"donorboard/internal/legacy"
)

// importSnapshots decodes an export, builds the per-kind snapshots and saves each one.
// Kinds missing from the export are left untouched in the store.
func importSnapshots(ctx context.Context, store domain.SnapshotStore, organizationID int64, r io.Reader, dryRun bool, logger zerolog.Logger) (string, error) {
	var export []legacy.ExportRow
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return "", fmt.Errorf("decode export: %w", err)
	}

	result, err := legacy.BuildSnapshots(organizationID, export)
	if err != nil {
		return "", err
	}
	for _, key := range result.Skipped {
		logger.Warn().Str("key", key).Msg("skipping export row without a graduation cohort")
	}

	kinds := make([]string, 0, len(result.Rows))
	for kind := range result.Rows {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	lines := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		kind := domain.SnapshotKind(k)
		rows := result.Rows[kind]
		if !dryRun {
			if err := store.Save(ctx, organizationID, kind, rows); err != nil {
				return "", fmt.Errorf("save %s snapshot: %w", kind, err)
			}
			logger.Info().Str("kind", k).Int("rows", len(rows)).Msg("snapshot saved")
		}
		lines = append(lines, fmt.Sprintf("%s: %d rows", kind, len(rows)))
	}
	lines = append(lines, fmt.Sprintf("skipped: %d", len(result.Skipped)))
	if dryRun {
		lines = append(lines, "dry run: nothing written")
	}
	return strings.Join(lines, "\n"), nil
}
