package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"donorboard/internal/domain"
	"donorboard/internal/format"
	"donorboard/internal/infra"
	"donorboard/internal/middleware"
	"donorboard/internal/report"
)

// Reports is the reporting surface the handlers serve.
type Reports interface {
	TopDonors(ctx context.Context, scope domain.Scope, period domain.Period, limit int, graduateOnly bool) ([]report.TopDonorRow, error)
	TopRecurringDonors(ctx context.Context, scope domain.Scope, period domain.Period, page, perPage int, graduateOnly bool) (format.Envelope[report.RecurringDonorRow], error)
	AllDonations(ctx context.Context, scope domain.Scope, page, perPage int) (format.Envelope[report.DonationRow], error)
	MyDonations(ctx context.Context, user domain.User, scope domain.Scope, page, perPage int) (format.Envelope[report.DonationRow], error)
	MyRecurringDonations(ctx context.Context, user domain.User, scope domain.Scope, page, perPage int) (format.Envelope[report.DonationRow], error)
	MyPaymentMethods(ctx context.Context, user domain.User, scope domain.Scope) ([]report.PaymentMethodRow, error)
}

type App struct {
	Reports  Reports
	Users    domain.UserSource
	SQL      infra.SQLExecutor
	Logger   zerolog.Logger
	validate *validator.Validate
}

func NewApp(reports Reports, users domain.UserSource, sql infra.SQLExecutor, logger zerolog.Logger) *App {
	return &App{
		Reports:  reports,
		Users:    users,
		SQL:      sql,
		Logger:   logger,
		validate: validator.New(),
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

func (a *App) currentUserID(r *http.Request) (int64, bool) {
	return middleware.UserIDFromContext(r.Context())
}
