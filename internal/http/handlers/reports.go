package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"donorboard/internal/domain"
	"donorboard/internal/format"
	"donorboard/internal/middleware"
	"donorboard/internal/report"
)

const defaultTopLimit = report.DefaultTopLimit

var scopeKinds = map[string]domain.ScopeKind{
	"projects":      domain.ScopeProject,
	"organizations": domain.ScopeOrganization,
}

type scopeParams struct {
	Kind string `validate:"required,oneof=projects organizations"`
	ID   int64  `validate:"gt=0"`
}

// reportParams are the query options of a report. Page and PerPage are clamped by the
// engine rather than rejected.
type reportParams struct {
	Period       string `validate:"omitempty,oneof=week month all"`
	Limit        int    `validate:"gte=1,lte=100"`
	Page         int
	PerPage      int
	GraduateOnly bool
}

// TopDonors serves GET /v1/{scope}/{id}/reports/top-donors.
func (a *App) TopDonors(w http.ResponseWriter, r *http.Request) {
	scope, params, ok := a.parseReportRequest(w, r)
	if !ok {
		return
	}
	rows, err := a.Reports.TopDonors(r.Context(), scope, domain.ParsePeriod(params.Period), params.Limit, params.GraduateOnly)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"data": rows})
}

// TopRecurringDonors serves GET /v1/{scope}/{id}/reports/top-recurring.
func (a *App) TopRecurringDonors(w http.ResponseWriter, r *http.Request) {
	scope, params, ok := a.parseReportRequest(w, r)
	if !ok {
		return
	}
	env, err := a.Reports.TopRecurringDonors(r.Context(), scope, domain.ParsePeriod(params.Period), params.Page, params.PerPage, params.GraduateOnly)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, env)
}

// AllDonations serves GET /v1/{scope}/{id}/donations.
func (a *App) AllDonations(w http.ResponseWriter, r *http.Request) {
	scope, params, ok := a.parseReportRequest(w, r)
	if !ok {
		return
	}
	env, err := a.Reports.AllDonations(r.Context(), scope, params.Page, params.PerPage)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, env)
}

// MyDonations serves GET /v1/{scope}/{id}/me/donations.
func (a *App) MyDonations(w http.ResponseWriter, r *http.Request) {
	scope, params, user, ok := a.parseMyRequest(w, r)
	if !ok {
		return
	}
	env, err := a.Reports.MyDonations(r.Context(), *user, scope, params.Page, params.PerPage)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, env)
}

// MyRecurringDonations serves GET /v1/{scope}/{id}/me/recurring.
func (a *App) MyRecurringDonations(w http.ResponseWriter, r *http.Request) {
	scope, params, user, ok := a.parseMyRequest(w, r)
	if !ok {
		return
	}
	env, err := a.Reports.MyRecurringDonations(r.Context(), *user, scope, params.Page, params.PerPage)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, env)
}

// MyPaymentMethods serves GET /v1/{scope}/{id}/me/payment-methods.
func (a *App) MyPaymentMethods(w http.ResponseWriter, r *http.Request) {
	scope, _, user, ok := a.parseMyRequest(w, r)
	if !ok {
		return
	}
	methods, err := a.Reports.MyPaymentMethods(r.Context(), *user, scope)
	if err != nil {
		a.reportError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"data": methods})
}

func (a *App) parseMyRequest(w http.ResponseWriter, r *http.Request) (domain.Scope, reportParams, *domain.User, bool) {
	userID, ok := a.currentUserID(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return domain.Scope{}, reportParams{}, nil, false
	}
	scope, params, ok := a.parseReportRequest(w, r)
	if !ok {
		return domain.Scope{}, reportParams{}, nil, false
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "unknown user")
		return domain.Scope{}, reportParams{}, nil, false
	}
	if err != nil {
		a.reportError(w, r, err)
		return domain.Scope{}, reportParams{}, nil, false
	}
	return scope, params, user, true
}

// parseReportRequest reads the scope from the path and the report options from the
// query string. It writes a 400 response and returns false on invalid input.
func (a *App) parseReportRequest(w http.ResponseWriter, r *http.Request) (domain.Scope, reportParams, bool) {
	sp := scopeParams{Kind: chi.URLParam(r, "scope")}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "id must be an integer")
			return domain.Scope{}, reportParams{}, false
		}
		sp.ID = id
	}
	if err := a.validate.Struct(sp); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(err))
		return domain.Scope{}, reportParams{}, false
	}

	q := r.URL.Query()
	params := reportParams{Period: q.Get("period")}
	var err error
	if params.Limit, err = intParam(q.Get("limit"), defaultTopLimit); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return domain.Scope{}, reportParams{}, false
	}
	if params.Page, err = intParam(q.Get("page"), 1); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "page must be an integer")
		return domain.Scope{}, reportParams{}, false
	}
	if params.PerPage, err = intParam(q.Get("per_page"), format.DefaultPerPage); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "per_page must be an integer")
		return domain.Scope{}, reportParams{}, false
	}
	if raw := q.Get("graduate_only"); raw != "" {
		if params.GraduateOnly, err = strconv.ParseBool(raw); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "graduate_only must be a boolean")
			return domain.Scope{}, reportParams{}, false
		}
	}
	if err := a.validate.Struct(params); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(err))
		return domain.Scope{}, reportParams{}, false
	}

	return domain.Scope{Kind: scopeKinds[sp.Kind], ID: sp.ID}, params, true
}

func (a *App) reportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScope), errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "scope not found")
	default:
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("report failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load report")
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid " + fe.Field() + ": failed " + fe.Tag()
	}
	return "invalid request"
}
