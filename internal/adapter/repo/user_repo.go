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

// UserRepositoryPG reads registered users from PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id).Scan(&user.ID, &user.Name, &user.Phone, &user.Photo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %w", domain.ErrDataSourceUnavailable, err)
	}
	return &user, nil
}

// UserPhotos returns the stored avatar path of every user in ids that has one.
func (r *UserRepositoryPG) UserPhotos(ctx context.Context, ids []int64) (map[int64]string, error) {
	photos := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return photos, nil
	}
	rows, err := r.sql.Query(ctx, sqlinline.QSelectUserPhotos, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: list user photos: %w", domain.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			photo string
		)
		if err := rows.Scan(&id, &photo); err != nil {
			return nil, fmt.Errorf("%w: scan user photo: %w", domain.ErrDataSourceUnavailable, err)
		}
		photos[id] = photo
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list user photos: %w", domain.ErrDataSourceUnavailable, err)
	}
	return photos, nil
}

var _ domain.UserSource = (*UserRepositoryPG)(nil)
