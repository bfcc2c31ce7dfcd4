package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/shortener"
)

type ServerOpt func(*Server)

type Server struct {
	router         chi.Router
	manager        pokerdirector.Manager
	shortener      shortener.Shortener
	logger         *log.Logger
	publicURL      string
	allowedOrigins []string
	generation     blind.GenerationOptions
	playerCount    int
	durationMins   int
}

func NewServer(manager pokerdirector.Manager, sh shortener.Shortener, logger *log.Logger, opts ...ServerOpt) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sh == nil {
		sh = shortener.NewMemoryShortener()
	}

	s := &Server{
		manager:        manager,
		shortener:      sh,
		logger:         logger,
		publicURL:      "http://localhost:8080",
		allowedOrigins: []string{"*"},
		generation:     blind.NewGenerationOptions(),
		playerCount:    9,
		durationMins:   pokerdirector.DefaultDurationMins,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s
}

func WithPublicURL(url string) ServerOpt {
	return func(s *Server) {
		s.publicURL = strings.TrimRight(url, "/")
	}
}

func WithAllowedOrigins(origins []string) ServerOpt {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithScheduleDefaults sets the structure generated for tournaments created without settings.
func WithScheduleDefaults(opts blind.GenerationOptions, playerCount, durationMins int) ServerOpt {
	return func(s *Server) {
		s.generation = opts
		if playerCount > 0 {
			s.playerCount = playerCount
		}
		if durationMins > 0 {
			s.durationMins = durationMins
		}
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", ownerHeader},
		MaxAge:         300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/", s.createTournament)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTournament)
			r.Post("/actions", s.dispatchAction)
			r.Post("/save", s.saveTournament)
			r.Post("/load", s.loadTournament)
			r.Post("/share", s.shareTournament)
		})
	})

	router.Get("/s/{token}", s.resolveShortLink)

	router.Route("/tools", func(r chi.Router) {
		r.Post("/stack", s.calculateStack)
		r.Post("/blinds", s.generateBlinds)
		r.Post("/payouts", s.calculatePayouts)
		r.Get("/payouts/suggest", s.suggestPayouts)
	})

	return router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
