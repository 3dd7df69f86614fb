package provider

import "context"

// Price is the normalized record every source returns.
// Name is an optional label; only Value takes part in averaging.
type Price struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"price"`
}

// Source supplies a sequence of prices.
//
//go:generate mockgen -source=provider.go -destination=../mocks/provider_mock.go -package=mocks
type Source interface {
	Read(ctx context.Context) ([]Price, error)
}

// Values returns the numeric values of prices in input order.
func Values(prices []Price) []float64 {
	out := make([]float64, 0, len(prices))
	for _, p := range prices {
		out = append(out, p.Value)
	}
	return out
}
