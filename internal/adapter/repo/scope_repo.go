package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"donorboard/internal/domain"
	"donorboard/internal/infra"
	"donorboard/internal/sqlinline"
)

// ScopeRepositoryPG checks projects and organizations in PostgreSQL.
type ScopeRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewScopeRepository creates a new ScopeRepositoryPG.
func NewScopeRepository(sql infra.SQLExecutor) *ScopeRepositoryPG {
	return &ScopeRepositoryPG{sql: sql}
}

// ResolveScope returns scope with OrganizationID filled in, or domain.ErrInvalidScope
// when the project or organization does not exist.
func (r *ScopeRepositoryPG) ResolveScope(ctx context.Context, scope domain.Scope) (domain.Scope, error) {
	var err error
	switch scope.Kind {
	case domain.ScopeProject:
		err = r.sql.QueryRow(ctx, sqlinline.QResolveProjectScope, scope.ID).Scan(&scope.ID, &scope.OrganizationID)
	case domain.ScopeOrganization:
		err = r.sql.QueryRow(ctx, sqlinline.QResolveOrganizationScope, scope.ID).Scan(&scope.ID)
		scope.OrganizationID = scope.ID
	default:
		return domain.Scope{}, domain.ErrInvalidScope
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Scope{}, domain.ErrInvalidScope
	}
	if err != nil {
		return domain.Scope{}, fmt.Errorf("%w: resolve %s: %w", domain.ErrDataSourceUnavailable, scope.Kind, err)
	}
	return scope, nil
}

var _ domain.ScopeResolver = (*ScopeRepositoryPG)(nil)
