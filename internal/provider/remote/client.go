package remote

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is the fixed URL the remote price list is served from.
const DefaultEndpoint = "https://www.88005553535.ru/prices"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -source=client.go -destination=../../mocks/http_client_mock.go -package=mocks HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads prices from a remote JSON endpoint.
type Client struct {
	// endpoint is the URL the price list is requested from.
	endpoint string
	// httpClient performs the request.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// strict turns a missing "prices" field into a format error.
	strict bool
	log    zerolog.Logger
}

// ClientOption is a configuration option for the remote client.
type ClientOption func(*Client)

// WithEndpoint overrides the URL the price list is requested from.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger used to report tolerated response defects.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithStrictPrices makes a response without a "prices" field fail with ErrMissingPrices
// instead of being read as an empty list.
func WithStrictPrices() ClientOption {
	return func(c *Client) {
		c.strict = true
	}
}

// NewClient creates a new remote price client.
func NewClient(options ...ClientOption) (*Client, error) {
	var client = &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		log:        zerolog.Nop(),
	}
	client.header.Set("Accept", "application/json")
	for _, option := range options {
		option(client)
	}
	if _, err := url.Parse(client.endpoint); err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	return client, nil
}

// Endpoint returns the URL the price list is requested from.
func (c *Client) Endpoint() string { return c.endpoint }
