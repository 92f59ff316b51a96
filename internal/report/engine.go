// Package report computes donation leaderboards and listings for an authorized scope.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"donorboard/internal/aggregate"
	"donorboard/internal/domain"
	"donorboard/internal/format"
	"donorboard/internal/identity"
	"donorboard/internal/recurring"
)

// DefaultTopLimit is used when TopDonors is called without a positive limit.
const DefaultTopLimit = 10

// Engine orchestrates label resolution, aggregation, recurring detection and
// formatting. It holds no per-request state.
type Engine struct {
	Scopes    domain.ScopeResolver
	Donations domain.DonationSource
	Detector  *recurring.Detector
	Users     domain.UserSource
	// Legacy may be nil when no organization was migrated.
	Legacy domain.LegacyDataProvider
	Clock  func() time.Time
	Logger zerolog.Logger

	MaxPerPage          int
	RecurringMaxPerPage int
	StoragePrefix       string
}

// Deps lists the collaborators of an Engine.
type Deps struct {
	Scopes       domain.ScopeResolver
	Donations    domain.DonationSource
	Transactions domain.TransactionSource
	Users        domain.UserSource
	Legacy       domain.LegacyDataProvider
}

// NewEngine builds an Engine with default limits and the wall clock.
func NewEngine(deps Deps, logger zerolog.Logger) *Engine {
	return &Engine{
		Scopes:              deps.Scopes,
		Donations:           deps.Donations,
		Detector:            recurring.NewDetector(deps.Donations, deps.Transactions),
		Users:               deps.Users,
		Legacy:              deps.Legacy,
		Clock:               time.Now,
		Logger:              logger,
		MaxPerPage:          format.DefaultMaxPerPage,
		RecurringMaxPerPage: format.DefaultRecurringMaxPage,
		StoragePrefix:       format.DefaultStoragePrefix,
	}
}

// TopDonors returns the donors with the largest completed totals in the window.
// With graduateOnly set, rows are folded into cohorts and personal names are dropped;
// migrated organizations are then served from their graduation snapshot.
func (e *Engine) TopDonors(ctx context.Context, scope domain.Scope, period domain.Period, limit int, graduateOnly bool) ([]TopDonorRow, error) {
	scope, err := e.resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	limit = e.topLimit(limit)

	if graduateOnly {
		snapshot, ok, err := e.legacyRows(ctx, scope, domain.SnapshotOneTimeGraduation, limit)
		if err != nil {
			return nil, err
		}
		if ok {
			out := make([]TopDonorRow, 0, len(snapshot))
			for _, row := range snapshot {
				out = append(out, topDonorRowFromSnapshot(row))
			}
			return out, nil
		}
	}

	donations, err := e.Donations.CompletedDonations(ctx, domain.DonationFilter{
		Scope: scope,
		Since: period.Since(e.now()),
	})
	if err != nil {
		return nil, err
	}

	rows := aggregate.ByDonor(donations)
	if graduateOnly {
		// All groups are merged before the cut so a cohort spread over many raw
		// spellings is never truncated away.
		rows = identity.MergeGraduateRows(rows, limit)
	} else if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]TopDonorRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, topDonorRow(row))
	}
	return out, nil
}

// TopRecurringDonors returns a page of donors with recurring payments. Explicit gateway
// flags are used when present; organizations without any flagged donation fall back to
// repeat-payment detection, tagged with recurring.SignalBehavior.
func (e *Engine) TopRecurringDonors(ctx context.Context, scope domain.Scope, period domain.Period, page, perPage int, graduateOnly bool) (format.Envelope[RecurringDonorRow], error) {
	scope, err := e.resolve(ctx, scope)
	if err != nil {
		return format.Envelope[RecurringDonorRow]{}, err
	}
	now := e.now()

	if graduateOnly {
		snapshot, ok, err := e.legacyRows(ctx, scope, domain.SnapshotRecurring, 0)
		if err != nil {
			return format.Envelope[RecurringDonorRow]{}, err
		}
		if ok {
			out := make([]RecurringDonorRow, 0, len(snapshot))
			for _, row := range snapshot {
				out = append(out, recurringRowFromSnapshot(row, now))
			}
			return format.Paginate(out, page, perPage, e.recurringMax()), nil
		}
	}

	since := period.Since(now)
	ids, err := e.Detector.FindIDs(ctx, scope, since)
	if err != nil {
		return format.Envelope[RecurringDonorRow]{}, err
	}

	var (
		rows   []domain.AggregateRow
		signal = recurring.SignalExplicit
	)
	switch {
	case len(ids) > 0:
		donations, err := e.Donations.CompletedDonations(ctx, domain.DonationFilter{Scope: scope, Since: since, IDs: ids})
		if err != nil {
			return format.Envelope[RecurringDonorRow]{}, err
		}
		// Organization and cohort views count donors, project views count payments.
		switch {
		case graduateOnly:
			rows = identity.MergeGraduateRows(aggregate.ByDonorDistinct(donations), 0)
		case scope.IsOrganization():
			rows = aggregate.ByDonorDistinct(donations)
		default:
			rows = aggregate.ByDonor(donations)
		}
	case scope.IsOrganization():
		donations, err := e.Donations.CompletedDonations(ctx, domain.DonationFilter{Scope: scope, Since: since})
		if err != nil {
			return format.Envelope[RecurringDonorRow]{}, err
		}
		signal = recurring.SignalBehavior
		rows = recurring.DetectByBehavior(donations)
		// Each behaviour row is one donor identity.
		for i := range rows {
			rows[i].DonationsCount = 1
		}
		if graduateOnly {
			rows = identity.MergeGraduateRows(rows, 0)
		}
		e.Logger.Debug().Str("scope", scope.String()).Int("rows", len(rows)).Msg("recurring: no explicit flags, using repeat payments")
	}

	photos, err := e.photos(ctx, rows)
	if err != nil {
		return format.Envelope[RecurringDonorRow]{}, err
	}

	out := make([]RecurringDonorRow, 0, len(rows))
	for _, row := range rows {
		r := recurringRow(row, signal, now)
		if row.DonorID != nil {
			r.PhotoURL = photos[*row.DonorID]
		}
		out = append(out, r)
	}
	return format.Paginate(out, page, perPage, e.recurringMax()), nil
}

// AllDonations lists every completed donation of the scope, newest first. Organization
// listings keep one row per payment transaction.
func (e *Engine) AllDonations(ctx context.Context, scope domain.Scope, page, perPage int) (format.Envelope[DonationRow], error) {
	scope, err := e.resolve(ctx, scope)
	if err != nil {
		return format.Envelope[DonationRow]{}, err
	}
	donations, err := e.Donations.CompletedDonations(ctx, domain.DonationFilter{Scope: scope})
	if err != nil {
		return format.Envelope[DonationRow]{}, err
	}
	donations = aggregate.Completed(donations)
	if scope.IsOrganization() {
		donations = aggregate.DedupByTransaction(donations)
	}
	aggregate.SortByEffectiveDesc(donations)
	return format.Paginate(donationRows(donations), page, perPage, e.maxPerPage()), nil
}

// MyDonations lists the donations made by user, matched by account id or by phone.
func (e *Engine) MyDonations(ctx context.Context, user domain.User, scope domain.Scope, page, perPage int) (format.Envelope[DonationRow], error) {
	donations, err := e.myDonations(ctx, user, scope)
	if err != nil {
		return format.Envelope[DonationRow]{}, err
	}
	return format.Paginate(donationRows(donations), page, perPage, e.maxPerPage()), nil
}

// MyRecurringDonations lists the donations of user that carry an explicit recurring flag.
func (e *Engine) MyRecurringDonations(ctx context.Context, user domain.User, scope domain.Scope, page, perPage int) (format.Envelope[DonationRow], error) {
	donations, err := e.myDonations(ctx, user, scope)
	if err != nil {
		return format.Envelope[DonationRow]{}, err
	}
	flagged, err := e.Detector.Filter(ctx, donations)
	if err != nil {
		return format.Envelope[DonationRow]{}, err
	}
	return format.Paginate(donationRows(flagged), page, perPage, e.maxPerPage()), nil
}

// MyPaymentMethods returns the distinct payment methods user has paid with, most
// recently used first.
func (e *Engine) MyPaymentMethods(ctx context.Context, user domain.User, scope domain.Scope) ([]PaymentMethodRow, error) {
	donations, err := e.myDonations(ctx, user, scope)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]PaymentMethodRow, 0)
	for _, d := range donations {
		if d.PaymentMethod == nil {
			continue
		}
		method := strings.TrimSpace(*d.PaymentMethod)
		if method == "" {
			continue
		}
		if _, ok := seen[method]; ok {
			continue
		}
		seen[method] = struct{}{}
		out = append(out, PaymentMethodRow{Method: method, Label: format.PaymentMethodLabel(&method)})
	}
	return out, nil
}

// myDonations returns the deduplicated completed donations of user, newest first.
func (e *Engine) myDonations(ctx context.Context, user domain.User, scope domain.Scope) ([]domain.Donation, error) {
	scope, err := e.resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	userID := user.ID
	filter := domain.DonationFilter{Scope: scope, DonorID: &userID}
	if user.Phone != nil {
		if phone, ok := identity.NormalizePhone(*user.Phone); ok {
			filter.DonorPhone = &phone
		}
	}
	donations, err := e.Donations.CompletedDonations(ctx, filter)
	if err != nil {
		return nil, err
	}
	donations = aggregate.DedupByTransaction(aggregate.Completed(donations))
	aggregate.SortByEffectiveDesc(donations)
	return donations, nil
}

func (e *Engine) resolve(ctx context.Context, scope domain.Scope) (domain.Scope, error) {
	if scope.ID <= 0 || (scope.Kind != domain.ScopeProject && scope.Kind != domain.ScopeOrganization) {
		return domain.Scope{}, domain.ErrInvalidScope
	}
	return e.Scopes.ResolveScope(ctx, scope)
}

// legacyRows returns snapshot rows for a migrated organization. ok is false when the
// live path should be used: no provider, not an organization, not migrated, or an
// empty snapshot. Snapshot errors are returned, never replaced by live numbers.
func (e *Engine) legacyRows(ctx context.Context, scope domain.Scope, kind domain.SnapshotKind, limit int) ([]domain.LegacySnapshotRow, bool, error) {
	if e.Legacy == nil || !scope.IsOrganization() {
		return nil, false, nil
	}
	migrated, err := e.Legacy.IsForOrganization(ctx, scope.ID)
	if err != nil {
		return nil, false, err
	}
	if !migrated {
		return nil, false, nil
	}

	var rows []domain.LegacySnapshotRow
	switch kind {
	case domain.SnapshotOneTimeGraduation:
		rows, err = e.Legacy.TopOneTimeByGraduation(ctx, scope.ID, limit)
	default:
		rows, err = e.Legacy.TopRecurring(ctx, scope.ID)
	}
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		e.Logger.Debug().Str("scope", scope.String()).Str("kind", string(kind)).Msg("legacy snapshot empty, computing live")
		return nil, false, nil
	}
	e.Logger.Debug().Str("scope", scope.String()).Str("kind", string(kind)).Int("rows", len(rows)).Msg("serving legacy snapshot")
	return rows, true, nil
}

func (e *Engine) photos(ctx context.Context, rows []domain.AggregateRow) (map[int64]string, error) {
	if e.Users == nil {
		return map[int64]string{}, nil
	}
	ids := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, row := range rows {
		if row.DonorID == nil {
			continue
		}
		if _, ok := seen[*row.DonorID]; ok {
			continue
		}
		seen[*row.DonorID] = struct{}{}
		ids = append(ids, *row.DonorID)
	}
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	paths, err := e.Users.UserPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}
	urls := make(map[int64]string, len(paths))
	for id, path := range paths {
		if url := format.PhotoURL(path, e.StoragePrefix); url != "" {
			urls[id] = url
		}
	}
	return urls, nil
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

func (e *Engine) topLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if ceiling := e.maxPerPage(); limit > ceiling {
		return ceiling
	}
	return limit
}

func (e *Engine) maxPerPage() int {
	if e.MaxPerPage <= 0 {
		return format.DefaultMaxPerPage
	}
	return e.MaxPerPage
}

func (e *Engine) recurringMax() int {
	if e.RecurringMaxPerPage <= 0 {
		return format.DefaultRecurringMaxPage
	}
	return e.RecurringMaxPerPage
}
