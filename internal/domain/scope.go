package domain

import (
	"fmt"
	"time"
)

// ScopeKind selects whether a report covers a single project or a whole organization.
type ScopeKind string

const (
	ScopeProject      ScopeKind = "project"
	ScopeOrganization ScopeKind = "organization"
)

// Scope is an already-authorized reporting scope. OrganizationID is filled in by
// ScopeResolver for project scopes.
type Scope struct {
	Kind           ScopeKind
	ID             int64
	OrganizationID int64
}

// IsOrganization reports whether the scope spans an entire organization.
func (s Scope) IsOrganization() bool {
	return s.Kind == ScopeOrganization
}

func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

// Period is a rolling report window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query value onto a Period, defaulting to PeriodAll.
func ParsePeriod(v string) Period {
	switch Period(v) {
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	default:
		return PeriodAll
	}
}

// Since returns the lower bound of the window relative to now, or nil for PeriodAll.
func (p Period) Since(now time.Time) *time.Time {
	var since time.Time
	switch p {
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &since
}
