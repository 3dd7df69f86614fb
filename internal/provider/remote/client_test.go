package remote_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"avgprice/internal/mocks"
	remote "avgprice/internal/provider/remote"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Assert: defaults produce a client for the fixed endpoint.
	client, err := remote.NewClient()
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
	require.Equal(t, remote.DefaultEndpoint, client.Endpoint())
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	t.Parallel()

	client, err := remote.NewClient(remote.WithEndpoint(string([]rune{0x7f})))
	require.Error(t, err)
	require.Nil(t, client)
}

func TestWithEndpoint(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := mocks.NewMockHTTPClient(ctrl)

	// Arrange: define an endpoint
	endpoint := "http://localhost:8080/api/prices"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Truef(t, strings.HasPrefix(req.URL.String(), endpoint), "expected url to start with endpoint, received: %s", req.URL.String())
			require.Equal(t, "application/json", req.Header.Get("Accept"))

			return jsonResponse(t, http.StatusOK, map[string]any{"prices": []any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := remote.NewClient(remote.WithHTTPClient(httpClient), remote.WithEndpoint(endpoint))
	require.NoError(t, err)

	// Act: read with the overridden endpoint.
	_, err = client.Read(t.Context())
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := mocks.NewMockHTTPClient(ctrl)

	// Assert: stub the Do method to check the header
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))

			return jsonResponse(t, http.StatusOK, map[string]any{"prices": []any{}}), nil
		}).
		Times(2)

	// Arrange: create a new client with a custom header.
	client, err := remote.NewClient(remote.WithHTTPClient(httpClient), remote.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)

	// Act: read twice; the header must survive per-request cloning.
	_, err = client.Read(t.Context())
	require.NoError(t, err)
	_, err = client.Read(t.Context())
	require.NoError(t, err)
}

// jsonResponse builds a preprogrammed *http.Response with v encoded as the body.
func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()

	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

// rawResponse builds a preprogrammed *http.Response with a literal body.
func rawResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
