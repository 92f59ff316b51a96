package format

import (
	"math"
	"testing"
)

func TestPaginateInvariants(t *testing.T) {
	for total := 0; total <= 23; total++ {
		rows := make([]int, total)
		for i := range rows {
			rows[i] = i
		}
		for perPage := 1; perPage <= 7; perPage++ {
			first := Paginate(rows, 1, perPage, 100)
			wantLast := (total + perPage - 1) / perPage
			if wantLast < 1 {
				wantLast = 1
			}
			if first.Pagination.LastPage != wantLast {
				t.Fatalf("total=%d perPage=%d: last_page=%d, want %d", total, perPage, first.Pagination.LastPage, wantLast)
			}

			seen := make([]int, 0, total)
			for page := 1; page <= first.Pagination.LastPage; page++ {
				env := Paginate(rows, page, perPage, 100)
				if env.Pagination.Total != total {
					t.Fatalf("total mismatch: %d != %d", env.Pagination.Total, total)
				}
				seen = append(seen, env.Data...)
			}
			if len(seen) != total {
				t.Fatalf("total=%d perPage=%d: reconstructed %d rows", total, perPage, len(seen))
			}
			for i, v := range seen {
				if v != i {
					t.Fatalf("total=%d perPage=%d: row %d = %d (duplicate or omission)", total, perPage, i, v)
				}
			}
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	rows := []string{"a", "b", "c"}

	env := Paginate(rows, 0, 0, 50)
	if env.Pagination.CurrentPage != 1 || env.Pagination.PerPage != 1 {
		t.Fatalf("unexpected clamp: %#v", env.Pagination)
	}
	if len(env.Data) != 1 || env.Data[0] != "a" {
		t.Fatalf("unexpected data: %#v", env.Data)
	}

	env = Paginate(rows, 1, 500, 50)
	if env.Pagination.PerPage != 50 || env.Pagination.LastPage != 1 {
		t.Fatalf("unexpected clamp: %#v", env.Pagination)
	}

	env = Paginate(rows, 9, 2, 50)
	if len(env.Data) != 0 || env.Pagination.CurrentPage != 9 || env.Pagination.LastPage != 2 {
		t.Fatalf("unexpected out-of-range page: %#v", env)
	}
}

func TestPaginateEmpty(t *testing.T) {
	env := Paginate[string](nil, 1, 10, 100)
	if env.Data == nil || len(env.Data) != 0 {
		t.Fatalf("expected empty non-nil data, got %#v", env.Data)
	}
	if env.Pagination.Total != 0 || env.Pagination.LastPage != 1 {
		t.Fatalf("unexpected pagination: %#v", env.Pagination)
	}
}

func TestPaginateHugePage(t *testing.T) {
	rows := []int{1, 2, 3}
	for _, page := range []int{math.MaxInt, math.MaxInt / 20, math.MaxInt/20 + 1} {
		env := Paginate(rows, page, 20, 100)
		if len(env.Data) != 0 || env.Pagination.CurrentPage != page || env.Pagination.Total != 3 {
			t.Fatalf("page %d: unexpected envelope %#v", page, env)
		}
	}
}
