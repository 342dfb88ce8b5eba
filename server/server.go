// Package server serves the ledger and its advisors as a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Planner generates investment plans.
type Planner interface {
	Generate(ctx context.Context, req agent.PlanRequest) (agent.PlanResult, error)
}

// Analyst reviews a held stock from its news.
type Analyst interface {
	Analyze(ctx context.Context, req agent.NewsRequest) (agent.Analysis, error)
}

// Config holds server configuration.
//
// Quotes, Planner and Analyst are optional, endpoints needing a missing one
// answer 503.
type Config struct {
	Addr    string
	Log     zerolog.Logger
	Ledger  *invest.Ledger
	Store   invest.Store // where plans are saved
	Quotes  invest.Gateway
	Planner Planner
	Analyst Analyst
	// AllowedOrigins for CORS requests, none when empty.
	AllowedOrigins []string
}

// Server is the HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	mu     sync.Mutex // serializes ledger access
	ledger *invest.Ledger
	store  invest.Store
	quotes invest.Gateway
	board  *invest.Board

	planner Planner
	analyst Analyst
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		ledger:  cfg.Ledger,
		store:   cfg.Store,
		quotes:  cfg.Quotes,
		planner: cfg.Planner,
		analyst: cfg.Analyst,
	}
	if cfg.Quotes != nil {
		s.board = invest.NewBoard(cfg.Quotes)
	}

	s.setupMiddleware(cfg.AllowedOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	// Model answers are slow.
	s.router.Use(middleware.Timeout(110 * time.Second))

	if len(origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/positions", func(r chi.Router) {
			r.Get("/", s.handleGetPositions)
			r.Post("/", s.handleAddTrade)
			r.Delete("/{symbol}", s.handleDeletePosition)
			r.Patch("/{symbol}/trades/{id}", s.handleEditTrade)
			r.Delete("/{symbol}/trades/{id}", s.handleDeleteTrade)
		})
		r.Post("/quote", s.handleQuote)
		r.Route("/plan", func(r chi.Router) {
			r.Get("/", s.handleGetPlan)
			r.Post("/", s.handlePlan)
			r.Delete("/", s.handleClearPlan)
		})
		r.Post("/news-analyze", s.handleNewsAnalyze)
	})
}

// Handler returns the root handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Position returns the valuation of the position in symbol at its current
// price, and false if there is no such position.
//
// It is safe to use concurrently with the API, and matches agent.PositionFunc.
func (s *Server) Position(ctx context.Context, symbol string) (invest.Valuation, bool, error) {
	symbol = invest.NormalizeSymbol(symbol)
	s.mu.Lock()
	p, ok := s.ledger.Position(symbol)
	s.mu.Unlock()
	if !ok {
		return invest.Valuation{}, false, nil
	}
	var price invest.Money
	if s.quotes != nil {
		quotes, err := s.quotes.Quotes(ctx, []string{symbol})
		if err != nil {
			return invest.Valuation{}, true, err
		}
		price = quotes.Price(symbol)
	}
	return invest.Valuate(p, price), true, nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
