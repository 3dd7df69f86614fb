package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"avgprice/internal/provider"
)

// ErrMissingPrices is returned by strict clients when the body has no "prices" field.
var ErrMissingPrices = errors.New(`response has no "prices" field`)

// response is the wire shape of the price list.
//
//	{
//	  "prices": [
//	    {"name": "rice", "price": 1000},
//	    {"price": "1000.50"}
//	  ]
//	}
type response struct {
	Prices *[]item `json:"prices"`
}

type item struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// Read requests the price list from the endpoint.
//
// A body that lacks the "prices" field is read as an empty list unless the client
// was built WithStrictPrices. That fallback hides malformed responses, so it is logged.
func (c *Client) Read(ctx context.Context) ([]provider.Price, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, provider.NewNetworkError("creating request", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.NewNetworkError("performing request", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusForbidden:
		return nil, provider.NewStatusError(res.StatusCode, "unauthorized")

	case http.StatusTooManyRequests:
		return nil, provider.NewStatusError(res.StatusCode, "rate limited")

	default:
		return nil, provider.NewStatusError(res.StatusCode, "unexpected status code")
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, provider.NewFormatError("decoding response", err)
	}

	if body.Prices == nil {
		if c.strict {
			return nil, provider.NewFormatError("decoding response", ErrMissingPrices)
		}
		c.log.Warn().Str("endpoint", c.endpoint).Msg("response has no prices field, reading it as an empty list")
		return []provider.Price{}, nil
	}

	out := make([]provider.Price, 0, len(*body.Prices))
	for i, it := range *body.Prices {
		if it.Price == nil {
			return nil, provider.NewFormatError("decoding response", fmt.Errorf("prices[%d]: missing price", i))
		}
		out = append(out, provider.Price{Name: it.Name, Value: it.Price.InexactFloat64()})
	}
	return out, nil
}
