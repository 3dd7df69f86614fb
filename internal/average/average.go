package average

import (
	"errors"

	"avgprice/internal/provider"
)

// ErrEmptyInput is returned when averaging an empty sequence.
var ErrEmptyInput = errors.New("average of empty price sequence")

// Averager reduces a price sequence to a single value.
type Averager interface {
	Average(prices []provider.Price) (float64, error)
}

// Func adapts a plain function to Averager.
type Func func(prices []provider.Price) (float64, error)

// Average calls f(prices).
func (f Func) Average(prices []provider.Price) (float64, error) { return f(prices) }

// Mean is the arithmetic mean of the price values. It has no side effects.
var Mean Averager = Func(mean)

func mean(prices []provider.Price) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, p := range prices {
		sum += p.Value
	}
	return sum / float64(len(prices)), nil
}
