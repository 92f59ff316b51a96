package format

// Default page size limits.
const (
	DefaultPerPage          = 20
	DefaultMaxPerPage       = 100
	DefaultRecurringMaxPage = 50
)

// Pagination describes the slice of a fully materialised result list.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Envelope is a page of display rows.
type Envelope[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ClampPage normalizes page and perPage: page >= 1, 1 <= perPage <= maxPerPage.
// A non-positive maxPerPage falls back to DefaultMaxPerPage.
func ClampPage(page, perPage, maxPerPage int) (int, int) {
	if maxPerPage <= 0 {
		maxPerPage = DefaultMaxPerPage
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// Paginate cuts one page out of rows, which must already be sorted. Aggregation has to
// finish before this point because merged cohorts cannot be paginated in SQL.
func Paginate[T any](rows []T, page, perPage, maxPerPage int) Envelope[T] {
	page, perPage = ClampPage(page, perPage, maxPerPage)
	total := len(rows)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	data := make([]T, 0, min(perPage, total))
	// Pages past the end are empty; the check precedes the multiplication so huge page
	// numbers cannot overflow the offset.
	if page-1 < lastPage {
		start := (page - 1) * perPage
		end := min(start+perPage, total)
		if start < end {
			data = append(data, rows[start:end]...)
		}
	}

	return Envelope[T]{
		Data: data,
		Pagination: Pagination{
			CurrentPage: page,
			LastPage:    lastPage,
			PerPage:     perPage,
			Total:       total,
		},
	}
}
