package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"donorboard/internal/sqlinline"
)

func TestHealth(t *testing.T) {
	cases := []struct {
		name   string
		row    SimpleRow
		code   int
		status string
	}{
		{
			name: "database answers",
			row: NewSimpleRow(func(dest ...any) error {
				*dest[0].(*int) = 1
				return nil
			}),
			code:   http.StatusOK,
			status: `"status":"ok"`,
		},
		{
			name:   "database down",
			row:    NewSimpleRow(func(...any) error { return errors.New("connection refused") }),
			code:   http.StatusServiceUnavailable,
			status: `"status":"degraded"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql := &StubSQL{Row: tc.row}
			app := NewApp(&fakeReports{}, fakeUsers{}, sql, zerolog.Nop())

			rec := httptest.NewRecorder()
			app.Health(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.status) {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
			if len(sql.Queries) != 1 || sql.Queries[0] != sqlinline.QHealthPing {
				t.Fatalf("expected the health ping query, got %v", sql.Queries)
			}
		})
	}
}
