package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/invest"
	"google.golang.org/genai"
)

// PositionFunc returns the valuation of the user's position in symbol, and
// false if the user does not hold it.
type PositionFunc func(ctx context.Context, symbol string) (invest.Valuation, bool, error)

// PositionTool lets a model read the user's position in a symbol.
func PositionTool(positions PositionFunc) Function {
	const name = "Position"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Position returns the user's position in a stock: total shares, total cost,
			average price, current price, market value and unrealized P/L.
			It tells when the user does not hold the stock.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The ticker symbol, like AAPL.",
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The position as a JSON object, amounts in USD. Absent figures are null.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			symbol, ok := args["symbol"].(string)
			if !ok || invest.NormalizeSymbol(symbol) == "" {
				return errorResponse(id, name, fmt.Errorf("argument 'symbol' must be a non empty string, got %v", args["symbol"]))
			}
			v, held, err := positions(ctx, symbol)
			if err != nil {
				return errorResponse(id, name, err)
			}
			if !held {
				return outputResponse(id, name, fmt.Sprintf("the user does not hold %s", invest.NormalizeSymbol(symbol)))
			}
			data, err := json.Marshal(v)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, string(data))
		},
	}
}
