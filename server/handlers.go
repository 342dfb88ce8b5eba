package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/go-chi/chi/v5"
)

// PositionsResponse lists the positions with their trades, and their valuation.
type PositionsResponse struct {
	Positions []invest.Position `json:"positions"`
	Summary   invest.Summary    `json:"summary"`
}

// AddTradeRequest records a trade in a position.
type AddTradeRequest struct {
	Symbol string          `json:"symbol"`
	Date   string          `json:"date"`
	Price  invest.Money    `json:"price"`
	Shares invest.Quantity `json:"shares"`
}

// EditTradeRequest changes one field of a trade.
type EditTradeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// QuoteRequest asks for the price of symbols.
type QuoteRequest struct {
	Symbols []string `json:"symbols"`
}

// QuoteResponse holds prices by symbol, null when unavailable.
type QuoteResponse struct {
	Quotes invest.Quotes `json:"quotes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPositions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	positions := s.ledger.Positions()
	symbols := s.ledger.Symbols()
	s.mu.Unlock()

	quotes := make(invest.Quotes)
	if s.board != nil {
		q, err := s.board.Refresh(r.Context(), symbols)
		if err != nil {
			// Valuations without prices are still worth showing.
			s.log.Warn().Err(err).Msg("could not refresh quotes")
		} else {
			quotes = q
		}
	}
	s.writeJSON(w, http.StatusOK, PositionsResponse{
		Positions: positions,
		Summary:   invest.Aggregate(positions, quotes),
	})
}

func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var req AddTradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	t, err := s.ledger.AddTrade(r.Context(), req.Symbol, invest.Trade{Date: req.Date, Price: req.Price, Shares: req.Shares})
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleEditTrade(w http.ResponseWriter, r *http.Request) {
	var req EditTradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	field, err := invest.ParseTradeField(req.Field)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	symbol, id := chi.URLParam(r, "symbol"), chi.URLParam(r, "id")

	s.mu.Lock()
	err = s.ledger.EditTradeField(r.Context(), symbol, id, field, req.Value)
	p, _ := s.ledger.Position(symbol)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.ledger.DeleteTrade(r.Context(), chi.URLParam(r, "symbol"), chi.URLParam(r, "id"))
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.ledger.DeletePosition(r.Context(), chi.URLParam(r, "symbol"))
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no quote provider is configured")
		return
	}
	var req QuoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	set, _ := invest.SymbolSet(req.Symbols)
	quotes := make(invest.Quotes, len(set))
	if len(set) > 0 {
		resp, err := s.quotes.Quotes(r.Context(), set)
		if err != nil {
			s.log.Error().Err(err).Strs("symbols", set).Msg("could not fetch quotes")
			s.writeError(w, http.StatusBadGateway, "could not fetch quotes: "+err.Error())
			return
		}
		for _, sym := range set {
			quotes[sym] = resp.Price(sym)
		}
	}
	s.writeJSON(w, http.StatusOK, QuoteResponse{Quotes: quotes})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	res, err := agent.LoadPlan(r.Context(), s.store)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		s.writeError(w, http.StatusServiceUnavailable, "the planner is not configured")
		return
	}
	var req agent.PlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.planner.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := agent.SavePlan(r.Context(), s.store, res); err != nil {
		s.log.Warn().Err(err).Msg("could not save the plan")
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClearPlan(w http.ResponseWriter, r *http.Request) {
	if err := agent.ClearPlan(r.Context(), s.store); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNewsAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyst == nil {
		s.writeError(w, http.StatusServiceUnavailable, "the news analyst is not configured")
		return
	}
	var req agent.NewsRequest
	if !s.decode(w, r, &req) {
		return
	}
	a, err := s.analyst.Analyze(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

// decode reads the JSON request body into v, or answers 400.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// fail answers with the status matching err.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invest.ErrInvalidTrade), errors.Is(err, agent.ErrInvalidRequest):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, invest.ErrStorage):
		s.log.Error().Err(err).Msg("storage failure")
		s.writeError(w, http.StatusInternalServerError, "the change may not be persisted: "+err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
