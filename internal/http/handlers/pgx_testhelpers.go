package handlers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SimpleRow is a pgx.Row backed by a scan function. A nil function behaves like an
// empty result.
type SimpleRow struct {
	scan func(dest ...any) error
}

func NewSimpleRow(scanner func(dest ...any) error) SimpleRow {
	return SimpleRow{scan: scanner}
}

func (r SimpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// TestRowsBase supplies the pgx.Rows methods that row fakes do not care about.
type TestRowsBase struct{}

func (TestRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (TestRowsBase) Conn() *pgx.Conn { return nil }

func (TestRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (TestRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (TestRowsBase) RawValues() [][]byte { return nil }

// StubSQL answers every QueryRow with Row and records the statements it saw.
type StubSQL struct {
	Row     pgx.Row
	Queries []string
}

func (s *StubSQL) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	s.Queries = append(s.Queries, query)
	return pgconn.CommandTag{}, nil
}

func (s *StubSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	s.Queries = append(s.Queries, query)
	if s.Row == nil {
		return SimpleRow{}
	}
	return s.Row
}

func (s *StubSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	s.Queries = append(s.Queries, query)
	return &emptyRows{}, nil
}

type emptyRows struct {
	TestRowsBase
}

func (*emptyRows) Close()             {}
func (*emptyRows) Err() error         { return nil }
func (*emptyRows) Next() bool         { return false }
func (*emptyRows) Scan(...any) error { return pgx.ErrNoRows }
