package infra

import (
	"errors"
	"strings"
	"testing"

	"donorboard/internal/sqlinline"
)

func TestExtractMarker(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantMarker string
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "valid",
			query:      "\n--sql 0b0a3c52-5d0e-4d2c-9d0f-6a1f0d4e2b11\nselect 1;\n",
			wantMarker: "0b0a3c52-5d0e-4d2c-9d0f-6a1f0d4e2b11",
			wantBody:   "select 1;",
		},
		{name: "missing marker", query: "select 1;", wantErr: true},
		{name: "uppercase uuid", query: "--sql 0B0A3C52-5D0E-4D2C-9D0F-6A1F0D4E2B11\nselect 1;", wantErr: true},
		{name: "empty", query: "   ", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			marker, body, err := extractMarker(tc.query)
			if tc.wantErr {
				if !errors.Is(err, ErrSQLMarker) {
					t.Fatalf("expected ErrSQLMarker, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractMarker error: %v", err)
			}
			if marker != tc.wantMarker || strings.TrimSpace(body) != tc.wantBody {
				t.Fatalf("got marker=%q body=%q", marker, body)
			}
		})
	}
}

func TestReportQueriesCarryMarkers(t *testing.T) {
	queries := map[string]string{
		"QSelectCompletedDonations":  sqlinline.QSelectCompletedDonations,
		"QSelectTransactionMetadata": sqlinline.QSelectTransactionMetadata,
		"QResolveProjectScope":       sqlinline.QResolveProjectScope,
		"QResolveOrganizationScope":  sqlinline.QResolveOrganizationScope,
		"QSelectUserByID":            sqlinline.QSelectUserByID,
		"QSelectUserPhotos":          sqlinline.QSelectUserPhotos,
		"QLegacyHasOrganization":     sqlinline.QLegacyHasOrganization,
		"QLegacySelectSnapshot":      sqlinline.QLegacySelectSnapshot,
		"QLegacyReplaceSnapshot":     sqlinline.QLegacyReplaceSnapshot,
		"QHealthPing":                sqlinline.QHealthPing,
	}
	seen := map[string]string{}
	for name, query := range queries {
		marker, _, err := extractMarker(query)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if other, dup := seen[marker]; dup {
			t.Fatalf("%s reuses the marker of %s", name, other)
		}
		seen[marker] = name
	}
}
