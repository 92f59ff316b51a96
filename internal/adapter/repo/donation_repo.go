package repo

import (
	"context"
	"fmt"

	"donorboard/internal/domain"
	"donorboard/internal/infra"
	"donorboard/internal/sqlinline"
)

// DonationRepositoryPG reads donations and payment transactions from PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// CompletedDonations returns completed donations matching filter, ordered by id.
func (r *DonationRepositoryPG) CompletedDonations(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectCompletedDonations,
		string(filter.Scope.Kind),
		filter.Scope.ID,
		filter.Since,
		filter.IDs,
		filter.DonorID,
		filter.DonorPhone,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list donations: %w", domain.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	items := make([]domain.Donation, 0)
	for rows.Next() {
		var (
			d      domain.Donation
			status string
		)
		if err := rows.Scan(
			&d.ID,
			&d.ProjectID,
			&d.OrganizationID,
			&d.DonorID,
			&d.DonorName,
			&d.DonorPhone,
			&d.Amount,
			&status,
			&d.PaymentTransactionID,
			&d.PaymentMethod,
			&d.PaymentDetails,
			&d.PaidAt,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan donation: %w", domain.ErrDataSourceUnavailable, err)
		}
		d.Status = domain.DonationStatus(status)
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list donations: %w", domain.ErrDataSourceUnavailable, err)
	}
	return items, nil
}

// TransactionMetadata returns the payment details of the given transactions.
func (r *DonationRepositoryPG) TransactionMetadata(ctx context.Context, ids []int64) ([]domain.PaymentTransaction, error) {
	if len(ids) == 0 {
		return []domain.PaymentTransaction{}, nil
	}
	rows, err := r.sql.Query(ctx, sqlinline.QSelectTransactionMetadata, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", domain.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	items := make([]domain.PaymentTransaction, 0, len(ids))
	for rows.Next() {
		var txn domain.PaymentTransaction
		if err := rows.Scan(&txn.ID, &txn.PaymentDetails); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", domain.ErrDataSourceUnavailable, err)
		}
		items = append(items, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", domain.ErrDataSourceUnavailable, err)
	}
	return items, nil
}

var (
	_ domain.DonationSource    = (*DonationRepositoryPG)(nil)
	_ domain.TransactionSource = (*DonationRepositoryPG)(nil)
)
