package invest

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodePositions marshals positions to the persisted layout: a json array of
// {symbol, trades: [{id, date, price, shares}]}.
func EncodePositions(positions []Position) ([]byte, error) {
	if positions == nil {
		positions = []Position{}
	}
	data, err := json.Marshal(positions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal positions: %w", err)
	}
	return data, nil
}

// DecodePositions unmarshals positions from the persisted layout.
//
// Trades with malformed numbers are kept, they are simply ignored by
// valuations. Positions are normalized: symbols are uppercased, positions
// without symbol or without trades are dropped, and positions sharing a symbol
// are merged.
func DecodePositions(data []byte) ([]Position, error) {
	var raw []Position
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed positions: %w", err)
	}
	positions := make([]Position, 0, len(raw))
	index := make(map[string]int)
	for _, p := range raw {
		p.Symbol = NormalizeSymbol(p.Symbol)
		if p.Symbol == "" || len(p.Trades) == 0 {
			continue
		}
		if i, exists := index[p.Symbol]; exists {
			positions[i].Trades = append(positions[i].Trades, p.Trades...)
			continue
		}
		index[p.Symbol] = len(positions)
		positions = append(positions, p)
	}
	return positions, nil
}
