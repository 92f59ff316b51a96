package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donorboard/internal/http/handlers"
	"donorboard/internal/middleware"
)

// Options configures the router middleware.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/{scope:projects|organizations}/{id:[0-9]+}", func(r chi.Router) {
		r.Get("/reports/top-donors", app.TopDonors)
		r.Get("/reports/top-recurring", app.TopRecurringDonors)
		r.Get("/donations", app.AllDonations)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret))
			r.Get("/me/donations", app.MyDonations)
			r.Get("/me/recurring", app.MyRecurringDonations)
			r.Get("/me/payment-methods", app.MyPaymentMethods)
		})
	})

	return r
}
