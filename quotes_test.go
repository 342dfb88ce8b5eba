package invest

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSymbolSet(t *testing.T) {
	testCases := []struct {
		symbols  []string
		set      []string
		identity string
	}{
		{symbols: nil, set: []string{}, identity: ""},
		{symbols: []string{"msft", " AAPL", "MSFT", ""}, set: []string{"AAPL", "MSFT"}, identity: "AAPL,MSFT"},
		{symbols: []string{"MSFT", "AAPL"}, set: []string{"AAPL", "MSFT"}, identity: "AAPL,MSFT"},
	}
	for _, tc := range testCases {
		set, identity := SymbolSet(tc.symbols)
		if !reflect.DeepEqual(set, tc.set) || identity != tc.identity {
			t.Errorf("SymbolSet(%q) = %q, %q, want %q, %q", tc.symbols, set, identity, tc.set, tc.identity)
		}
	}
}

func TestBoard_Refresh(t *testing.T) {
	ctx := context.Background()
	g := &fakeGateway{quotes: Quotes{"AAPL": M(110)}}
	b := NewBoard(g)

	got, err := b.Refresh(ctx, []string{"msft", "AAPL"})
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if !got.Price("AAPL").Equal(M(110)) {
		t.Errorf("Refresh() AAPL = %v, want %v", got.Price("AAPL"), M(110))
	}
	if q, ok := got["MSFT"]; !ok || q.Valid() {
		t.Errorf("Refresh() MSFT = %v, %v, want an unavailable quote", q, ok)
	}
	if want := [][]string{{"AAPL", "MSFT"}}; !reflect.DeepEqual(g.calls, want) {
		t.Errorf("gateway called with %q, want %q", g.calls, want)
	}
	if !b.Quotes().Price("AAPL").Equal(M(110)) {
		t.Errorf("Quotes() did not record AAPL")
	}

	// tracking fewer symbols forgets the others.
	b.Track([]string{"MSFT"})
	if _, ok := b.Quotes()["AAPL"]; ok {
		t.Errorf("Quotes() still has AAPL after it is no longer tracked")
	}
}

func TestBoard_Refresh_Empty(t *testing.T) {
	g := &fakeGateway{}
	b := NewBoard(g)
	got, err := b.Refresh(context.Background(), nil)
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if len(got) != 0 || len(g.calls) != 0 {
		t.Errorf("Refresh(nil) = %v with %d gateway calls, want nothing", got, len(g.calls))
	}
}

func TestBoard_Refresh_Stale(t *testing.T) {
	ctx := context.Background()
	g := &fakeGateway{quotes: Quotes{"AAPL": M(110), "MSFT": M(300)}}
	b := NewBoard(g)
	// the symbols change while the request is in flight.
	g.before = func() { b.Track([]string{"MSFT"}) }

	got, err := b.Refresh(ctx, []string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if !got.Price("AAPL").Equal(M(110)) {
		t.Errorf("Refresh() still returns the response, got AAPL = %v", got.Price("AAPL"))
	}
	if q := b.Quotes(); len(q) != 0 {
		t.Errorf("stale response recorded: %v", q)
	}
}

func TestBoard_Refresh_Error(t *testing.T) {
	g := &fakeGateway{err: errUnavailable}
	b := NewBoard(g)
	if _, err := b.Refresh(context.Background(), []string{"AAPL"}); !errors.Is(err, errUnavailable) {
		t.Errorf("Refresh() error = %v, want %v", err, errUnavailable)
	}
}
