package invest

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/invest/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidTrade is returned when a trade is rejected. The ledger is left unchanged.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrStorage is returned when the Store fails. It is never returned for missing data.
	ErrStorage = errors.New("storage failure")
)

// Ledger is the list of positions, and the only way to change them.
//
// Every change is immediately written to the Store. A Ledger is not safe for
// concurrent use.
type Ledger struct {
	store     Store
	positions []Position
	newID     func() string
}

// NewLedger creates an empty ledger persisted in store.
func NewLedger(store Store) *Ledger {
	return &Ledger{
		store:     store,
		positions: make([]Position, 0),
		newID:     uuid.NewString,
	}
}

// OpenLedger creates a ledger and loads it from the store.
func OpenLedger(ctx context.Context, store Store) (*Ledger, error) {
	l := NewLedger(store)
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Load replaces the ledger content with the one in the store.
//
// Absent or malformed data loads an empty ledger. A failing store returns an
// error wrapping ErrStorage and leaves the ledger unchanged.
func (l *Ledger) Load(ctx context.Context) error {
	data, err := l.store.Get(ctx, PositionsKey)
	if errors.Is(err, ErrNotFound) {
		l.positions = make([]Position, 0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: could not load positions: %w", ErrStorage, err)
	}
	positions, err := DecodePositions(data)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring stored positions")
		positions = make([]Position, 0)
	}
	l.positions = positions
	return nil
}

// Save writes the whole ledger to the store.
func (l *Ledger) Save(ctx context.Context) error {
	data, err := EncodePositions(l.positions)
	if err != nil {
		return err
	}
	if err := l.store.Put(ctx, PositionsKey, data); err != nil {
		return fmt.Errorf("%w: could not save positions: %w", ErrStorage, err)
	}
	log.Debug().Int("positions", len(l.positions)).Msg("ledger saved")
	return nil
}

// AddTrade records a buy trade for symbol.
//
// The symbol is trimmed and uppercased. The trade is rejected with
// ErrInvalidTrade if the symbol is empty, the price or the share count is not
// positive, or the date is not a valid date. The date is stored in its
// canonical YYYY-MM-DD form, and an ID is assigned if the trade has none.
//
// The trade is appended to the existing position for that symbol, or opens a
// new one. It returns the trade as recorded.
func (l *Ledger) AddTrade(ctx context.Context, symbol string, t Trade) (Trade, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return t, fmt.Errorf("%w: a symbol is required", ErrInvalidTrade)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("%w: price must be a positive number, got %v", ErrInvalidTrade, t.Price.Decimal())
	}
	if !t.Shares.IsPositive() {
		return t, fmt.Errorf("%w: shares must be a positive number, got %v", ErrInvalidTrade, t.Shares.Decimal())
	}
	day, err := date.Parse(t.Date)
	if err != nil {
		return t, fmt.Errorf("%w: %w", ErrInvalidTrade, err)
	}
	t.Date = day.String()

	i := l.index(symbol)
	if t.ID == "" {
		t.ID = l.newID()
	} else if i >= 0 && l.positions[i].index(t.ID) >= 0 {
		return t, fmt.Errorf("%w: %s already has a trade %q", ErrInvalidTrade, symbol, t.ID)
	}

	if i >= 0 {
		l.positions[i].Trades = append(l.positions[i].Trades, t)
	} else {
		l.positions = append(l.positions, Position{Symbol: symbol, Trades: []Trade{t}})
	}
	return t, l.Save(ctx)
}

// EditTradeField changes one field of a trade from a raw user input.
//
// For price and shares, an input that is not a finite number is ignored and
// the previous value kept; this is not an error. The date is taken as typed.
// Unknown symbols or ids change nothing. The ledger is saved in any case.
func (l *Ledger) EditTradeField(ctx context.Context, symbol, id string, field TradeField, raw string) error {
	if i := l.index(NormalizeSymbol(symbol)); i >= 0 {
		p := &l.positions[i]
		if j := p.index(id); j >= 0 {
			p.Trades[j] = p.Trades[j].edit(field, raw)
		}
	}
	return l.Save(ctx)
}

// DeleteTrade removes a trade. A position left without trades is removed too.
func (l *Ledger) DeleteTrade(ctx context.Context, symbol, id string) error {
	if i := l.index(NormalizeSymbol(symbol)); i >= 0 {
		p := &l.positions[i]
		p.Trades = slices.DeleteFunc(p.Trades, func(t Trade) bool { return t.ID == id })
		if len(p.Trades) == 0 {
			l.positions = slices.Delete(l.positions, i, i+1)
		}
	}
	return l.Save(ctx)
}

// DeletePosition removes a position and all its trades.
//
// It does not ask for any confirmation, callers should.
func (l *Ledger) DeletePosition(ctx context.Context, symbol string) error {
	symbol = NormalizeSymbol(symbol)
	l.positions = slices.DeleteFunc(l.positions, func(p Position) bool { return p.Symbol == symbol })
	return l.Save(ctx)
}

// Positions returns a copy of all positions, in insertion order.
func (l *Ledger) Positions() []Position {
	res := make([]Position, len(l.positions))
	for i, p := range l.positions {
		res[i] = p.clone()
	}
	return res
}

// Position returns a copy of the position for symbol.
func (l *Ledger) Position(symbol string) (Position, bool) {
	i := l.index(NormalizeSymbol(symbol))
	if i < 0 {
		return Position{}, false
	}
	return l.positions[i].clone(), true
}

// Symbols returns the held symbols, in insertion order.
func (l *Ledger) Symbols() []string {
	res := make([]string, len(l.positions))
	for i, p := range l.positions {
		res[i] = p.Symbol
	}
	return res
}

// Summary values all positions with the given quotes.
func (l *Ledger) Summary(quotes Quotes) Summary {
	return Aggregate(l.positions, quotes)
}

func (l *Ledger) index(symbol string) int {
	return slices.IndexFunc(l.positions, func(p Position) bool { return p.Symbol == symbol })
}
