package invest

import (
	"context"
	"errors"
	"maps"
	"strconv"
)

// USD is a helper for test to create money from const
func USD(v float64) Money { return M(v) }

// testStore is an in-memory Store recording writes, that can be made to fail.
type testStore struct {
	data   map[string][]byte
	puts   int
	failed error // returned by all calls when set
}

func newTestStore() *testStore { return &testStore{data: make(map[string][]byte)} }

func (s *testStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.failed != nil {
		return nil, s.failed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *testStore) Put(_ context.Context, key string, value []byte) error {
	if s.failed != nil {
		return s.failed
	}
	s.puts++
	s.data[key] = value
	return nil
}

func (s *testStore) Delete(_ context.Context, key string) error {
	if s.failed != nil {
		return s.failed
	}
	delete(s.data, key)
	return nil
}

func (s *testStore) snapshot() map[string][]byte { return maps.Clone(s.data) }

var errUnavailable = errors.New("store unavailable")

// newTestLedger returns a ledger with predictable trade ids: t1, t2, ...
func newTestLedger(s Store) *Ledger {
	l := NewLedger(s)
	n := 0
	l.newID = func() string {
		n++
		return "t" + strconv.Itoa(n)
	}
	return l
}

// trade is a helper to write trades in tests.
func trade(day string, price, shares float64) Trade {
	return Trade{Date: day, Price: M(price), Shares: Q(shares)}
}

// fakeGateway serves fixed quotes.
type fakeGateway struct {
	quotes Quotes
	err    error
	calls  [][]string
	// before is called before answering, it can change the board.
	before func()
}

func (g *fakeGateway) Quotes(_ context.Context, symbols []string) (Quotes, error) {
	g.calls = append(g.calls, symbols)
	if g.before != nil {
		g.before()
	}
	if g.err != nil {
		return nil, g.err
	}
	res := make(Quotes)
	for _, s := range symbols {
		if q, ok := g.quotes[s]; ok {
			res[s] = q
		}
	}
	return res, nil
}
