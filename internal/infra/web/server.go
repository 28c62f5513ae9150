package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/application"
	"jobsearch-assistant/internal/infra/redis"
)

// Credentials is the single accepted login. Real identity providers
// are out of scope; the login endpoint only gates the demo deployment.
// AllowAny accepts any non-empty pair, for dev mode.
type Credentials struct {
	Email    string
	Password string
	AllowAny bool
}

type Server struct {
	facade     *application.Facade
	auth       *AuthManager
	creds      Credentials
	limiter    *redis.RateLimiter
	chatLimit  int
	chatWindow time.Duration
	log        *zerolog.Logger
}

func NewServer(
	facade *application.Facade,
	auth *AuthManager,
	creds Credentials,
	limiter *redis.RateLimiter,
	chatLimit int,
	chatWindow time.Duration,
	logger *zerolog.Logger,
) *Server {
	if chatLimit <= 0 {
		chatLimit = 20
	}
	if chatWindow <= 0 {
		chatWindow = time.Minute
	}
	return &Server{
		facade:     facade,
		auth:       auth,
		creds:      creds,
		limiter:    limiter,
		chatLimit:  chatLimit,
		chatWindow: chatWindow,
		log:        logger,
	}
}

// Routes builds the full HTTP surface. Everything under the
// authenticated group resolves the acting user from the session token,
// never from the request body.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/login", loginHandler(s.facade, s.auth, s.creds, s.log))

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/logout", logoutHandler(s.auth))
		r.Get("/jobs", jobsHandler(s.facade))
		r.Post("/upload-resume", uploadResumeHandler(s.facade))
		r.Post("/apply", applyHandler(s.facade))
		r.Get("/applications/{userID}", applicationsHandler(s.facade))
		r.With(s.rateLimitMiddleware).Post("/assistant", assistantHandler(s.facade))
	})
	return r
}

// authMiddleware resolves the session token and stashes the user ID in
// the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), claims.Subject)))
	})
}

// rateLimitMiddleware applies a fixed-window cap per user on the
// assistant endpoint. Redis being down must not take chat down with
// it, so limiter errors fail open.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		userID := userIDFrom(r.Context())
		key := redis.UserActionKey(userID, "assistant")
		allowed, err := s.limiter.Allow(r.Context(), key, s.chatLimit, s.chatWindow)
		if err != nil {
			if s.log != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("rate limiter unavailable")
			}
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
