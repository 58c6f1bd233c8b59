package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events   *controllers.EventController
	Bookings *controllers.BookingController
	Auth     *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
// Organizer-only routes are wrapped with RequireAuth.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/featured", c.Events.ListFeaturedEvents)
	mux.HandleFunc("GET /events/{slug}", c.Events.GetEvent)
	mux.HandleFunc("GET /events/{slug}/similar", c.Events.SimilarEvents)
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("PATCH /events/{slug}", auth(c.Events.UpdateEvent))

	// Bookings
	mux.HandleFunc("POST /events/{slug}/bookings", c.Bookings.CreateBooking)
	mux.HandleFunc("GET /events/{slug}/bookings", auth(c.Bookings.ListBookings))
	mux.HandleFunc("GET /events/{slug}/bookings/count", c.Bookings.CountBookings)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the CORS and request logging middleware.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
