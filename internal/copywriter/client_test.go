package copywriter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wyfcoding/marketplace/pkg/config"
	"github.com/wyfcoding/marketplace/pkg/metrics"

	"github.com/stretchr/testify/require"
)

func newClient(endpoint, apiKey string) *Client {
	return New(config.CopywriterConfig{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Timeout:  2,
		Fallback: "A quality product from our bazaar sellers.",
	}, metrics.New("copywriter_test"))
}

func TestDescribeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Hand-stitched cotton panjabi."}`))
	}))
	defer server.Close()

	text := newClient(server.URL, "key-1").Describe(context.Background(), "panjabi")
	require.Equal(t, "Hand-stitched cotton panjabi.", text)
}

func TestDescribeFallbackWithoutCredentials(t *testing.T) {
	text := newClient("", "").Describe(context.Background(), "panjabi")
	require.Equal(t, "A quality product from our bazaar sellers.", text)
}

func TestDescribeFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	text := newClient(server.URL, "key-1").Describe(context.Background(), "panjabi")
	require.Equal(t, "A quality product from our bazaar sellers.", text)
}

func TestDescribeFallbackOnUnreachableEndpoint(t *testing.T) {
	text := newClient("http://127.0.0.1:1", "key-1").Describe(context.Background(), "panjabi")
	require.Equal(t, "A quality product from our bazaar sellers.", text)
}

func TestDescribeFallbackOnEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  "}`))
	}))
	defer server.Close()

	text := newClient(server.URL, "key-1").Describe(context.Background(), "panjabi")
	require.Equal(t, "A quality product from our bazaar sellers.", text)
}
