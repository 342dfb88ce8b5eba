package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/etnz/invest/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway map[string]float64

func (g fakeGateway) Quotes(_ context.Context, symbols []string) (invest.Quotes, error) {
	q := make(invest.Quotes)
	for _, s := range symbols {
		if p, ok := g[s]; ok {
			q[s] = invest.M(p)
		}
	}
	return q, nil
}

type fakePlanner struct{ req agent.PlanRequest }

func (p *fakePlanner) Generate(_ context.Context, req agent.PlanRequest) (agent.PlanResult, error) {
	if err := req.Validate(); err != nil {
		return agent.PlanResult{}, err
	}
	p.req = req
	return agent.PlanResult{
		Plan:    agent.Plan{Strategy: "buy and hold"},
		Tickers: []agent.Suggestion{{Symbol: "VTI", Reason: "broad market"}},
	}, nil
}

type fakeAnalyst struct{}

func (fakeAnalyst) Analyze(_ context.Context, req agent.NewsRequest) (agent.Analysis, error) {
	if req.Symbol == "" {
		return agent.Analysis{}, fmt.Errorf("%w: a symbol is required", agent.ErrInvalidRequest)
	}
	return agent.Analysis{Symbol: req.Symbol, Text: "hold"}, nil
}

// brokenStore reads fine but fails every write.
type brokenStore struct{ *store.Memory }

func (brokenStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func newTestServer(t *testing.T, cfg Config) (*Server, *invest.Ledger) {
	t.Helper()
	if cfg.Store == nil {
		cfg.Store = store.NewMemory()
	}
	if cfg.Ledger == nil {
		l, err := invest.OpenLedger(t.Context(), cfg.Store)
		require.NoError(t, err)
		cfg.Ledger = l
	}
	cfg.Log = zerolog.Nop()
	return New(cfg), cfg.Ledger
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Positions(t *testing.T) {
	s, ledger := newTestServer(t, Config{Quotes: fakeGateway{"AAPL": 110}})

	rec := do(t, s, http.MethodPost, "/api/positions", `{"symbol":" aapl ","date":"2024-01-01","price":100,"shares":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var trade invest.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trade))
	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, "2024-01-01", trade.Date)

	rec = do(t, s, http.MethodPost, "/api/positions", `{"symbol":"MSFT","date":"2024-02-01","price":50,"shares":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/positions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Positions []invest.Position `json:"positions"`
		Summary   struct {
			TotalCost   float64 `json:"totalCost"`
			MarketValue float64 `json:"marketValue"`
			PnL         float64 `json:"pnl"`
			PnLPct      float64 `json:"pnlPct"`
			Positions   []any   `json:"positions"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Positions, 2)
	assert.Equal(t, "AAPL", got.Positions[0].Symbol)
	assert.Equal(t, 400.0, got.Summary.TotalCost)
	assert.Equal(t, 220.0, got.Summary.MarketValue)
	assert.Equal(t, 20.0, got.Summary.PnL)
	assert.Equal(t, 5.0, got.Summary.PnLPct)
	assert.Len(t, got.Summary.Positions, 2)
	assert.Equal(t, []string{"AAPL", "MSFT"}, ledger.Symbols())
}

func TestServer_AddTrade_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty symbol", body: `{"symbol":" ","date":"2024-01-01","price":1,"shares":1}`},
		{name: "zero price", body: `{"symbol":"A","date":"2024-01-01","price":0,"shares":1}`},
		{name: "negative shares", body: `{"symbol":"A","date":"2024-01-01","price":1,"shares":-1}`},
		{name: "bad date", body: `{"symbol":"A","date":"someday","price":1,"shares":1}`},
		{name: "not json", body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ledger := newTestServer(t, Config{})
			rec := do(t, s, http.MethodPost, "/api/positions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.Empty(t, ledger.Positions())
		})
	}
}

func TestServer_EditAndDelete(t *testing.T) {
	s, ledger := newTestServer(t, Config{})
	a, err := ledger.AddTrade(t.Context(), "XYZ", invest.Trade{Date: "2024-01-01", Price: invest.M(100), Shares: invest.Q(10)})
	require.NoError(t, err)
	b, err := ledger.AddTrade(t.Context(), "XYZ", invest.Trade{Date: "2024-02-01", Price: invest.M(120), Shares: invest.Q(10)})
	require.NoError(t, err)

	rec := do(t, s, http.MethodPatch, "/api/positions/XYZ/trades/"+a.ID, `{"field":"price","value":"105"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p, _ := ledger.Position("XYZ")
	assert.True(t, p.Trades[0].Price.Equal(invest.M(105)))

	// a bad keystroke keeps the previous value
	rec = do(t, s, http.MethodPatch, "/api/positions/XYZ/trades/"+a.ID, `{"field":"shares","value":"1O"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	p, _ = ledger.Position("XYZ")
	assert.True(t, p.Trades[0].Shares.Equal(invest.Q(10)))

	rec = do(t, s, http.MethodPatch, "/api/positions/XYZ/trades/"+a.ID, `{"field":"fees","value":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/positions/XYZ/trades/"+a.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	p, _ = ledger.Position("XYZ")
	require.Len(t, p.Trades, 1)
	assert.Equal(t, b.ID, p.Trades[0].ID)

	rec = do(t, s, http.MethodDelete, "/api/positions/xyz", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, ledger.Positions())
}

func TestServer_StorageFailure(t *testing.T) {
	s, ledger := newTestServer(t, Config{Store: brokenStore{store.NewMemory()}})
	rec := do(t, s, http.MethodPost, "/api/positions", `{"symbol":"A","date":"2024-01-01","price":1,"shares":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "may not be persisted")
	assert.Len(t, ledger.Positions(), 1)
}

func TestServer_Quote(t *testing.T) {
	s, _ := newTestServer(t, Config{Quotes: fakeGateway{"AAPL": 187.5}})
	rec := do(t, s, http.MethodPost, "/api/quote", `{"symbols":["aapl","ZZZZ","AAPL"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"quotes":{"AAPL":187.5,"ZZZZ":null}}`, rec.Body.String())

	s, _ = newTestServer(t, Config{})
	rec = do(t, s, http.MethodPost, "/api/quote", `{"symbols":["AAPL"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Plan(t *testing.T) {
	planner := &fakePlanner{}
	s, _ := newTestServer(t, Config{Planner: planner})

	rec := do(t, s, http.MethodGet, "/api/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan":{"market_view":"","strategy":"","allocation":"","entry_exit":"","risk":""},"tickers":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/plan", `{"horizon":"long","goal":"y10","risk":"balanced","initialAmount":10000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"VTI"`)
	assert.Equal(t, agent.Long, planner.req.Horizon)

	rec = do(t, s, http.MethodGet, "/api/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "buy and hold")

	rec = do(t, s, http.MethodDelete, "/api/plan", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/plan", "")
	assert.NotContains(t, rec.Body.String(), "buy and hold")

	rec = do(t, s, http.MethodPost, "/api/plan", `{"horizon":"forever"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s, _ = newTestServer(t, Config{})
	rec = do(t, s, http.MethodPost, "/api/plan", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_NewsAnalyze(t *testing.T) {
	s, _ := newTestServer(t, Config{Analyst: fakeAnalyst{}})
	rec := do(t, s, http.MethodPost, "/api/news-analyze", `{"symbol":"AAPL","from":"","lastPlans":""}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"analysis":"hold"`)

	rec = do(t, s, http.MethodPost, "/api/news-analyze", `{"symbol":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s, _ = newTestServer(t, Config{})
	rec = do(t, s, http.MethodPost, "/api/news-analyze", `{"symbol":"AAPL"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Position(t *testing.T) {
	s, ledger := newTestServer(t, Config{Quotes: fakeGateway{"XYZ": 130}})
	_, err := ledger.AddTrade(t.Context(), "XYZ", invest.Trade{Date: "2024-01-01", Price: invest.M(100), Shares: invest.Q(10)})
	require.NoError(t, err)

	v, ok, err := s.Position(t.Context(), " xyz")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.MarketValue.Equal(invest.M(1300)), v.MarketValue.String())

	_, ok, err = s.Position(t.Context(), "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)
}
