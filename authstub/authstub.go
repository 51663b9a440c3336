// Package authstub is an in-process implementation of the remote auth
// service surface the client consumes. It backs the CLI's stub mode and
// the integration tests; it is not a production server.
package authstub

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
	"github.com/google/uuid"

	"github.com/ridecircle/sessionkit/authapi"
)

//go:embed openapi.yaml
var openapiSpec []byte

const tokenTTL = 24 * time.Hour

type account struct {
	user         authapi.User
	passwordHash []byte
}

// Service holds the stub's in-memory state: accounts, pending OTP codes,
// and revoked token IDs.
type Service struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by normalized email
	otps     map[string]string   // email -> pending code
	revoked  map[string]bool     // jti -> revoked
	secret   []byte
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger for request outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates an empty stub service. Tokens are HMAC-signed with a
// per-instance random secret.
func New(opts ...Option) *Service {
	s := &Service{
		accounts: make(map[string]*account),
		otps:     make(map[string]string),
		revoked:  make(map[string]bool),
		secret:   []byte(uuid.NewString()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	s.logger = s.logger.With("component", "authstub")
	return s
}

// Router returns a chi.Router with the full auth surface mounted.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))
	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/openapi.yaml",
		Path:    "redoc",
	}, nil))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Post("/register", s.Register)
		r.Post("/verify-otp", s.VerifyOTP)
		r.Post("/resend-otp", s.ResendOTP)
		r.Post("/forgot-password", s.ForgotPassword)
		r.Post("/refresh-token", s.RefreshToken)
		r.Post("/logout", s.Logout)
	})
	r.Get("/users/profile", s.Profile)

	return r
}

// OTPFor returns the pending verification code for an email. Test hook;
// a real backend delivers the code out of band.
func (s *Service) OTPFor(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.otps[authapi.NormalizeEmail(email)]
	return code, ok
}
