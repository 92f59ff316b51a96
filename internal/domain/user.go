package domain

// User is the authenticated donor a "my donations" view is built for.
type User struct {
	ID    int64
	Name  string
	Phone *string
	Photo *string
}
