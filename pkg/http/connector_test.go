package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoPayload struct {
	Text string `json:"text"`
}

func TestDoRequest_JSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "v", r.Header.Get("X-Custom"))

		var in echoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echoPayload{Text: in.Text + "!"})
	}))
	defer srv.Close()

	conn := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithRequestLogging(),
		WithAuthToken("secret"),
	)

	var out echoPayload
	err := conn.DoRequest(context.Background(), http.MethodPost, "/echo", echoPayload{Text: "hi"}, &out,
		WithHeader("X-Custom", "v"))
	require.NoError(t, err)
	assert.Equal(t, "hi!", out.Text)
}

func TestDoRequest_QueryAndAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Addis Ababa", r.URL.Query().Get("q"))
		assert.Equal(t, "k123", r.URL.Query().Get("appid"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	conn := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithRequestLogging(),
		WithAPIKeyQuery("appid", "k123"),
	)

	err := conn.DoRequest(context.Background(), http.MethodGet, "/weather", nil, nil, WithQuery("q", "Addis Ababa"))
	require.NoError(t, err)
}

func TestDoRequest_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	conn := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})

	err := conn.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "boom")
}

func TestDoRequest_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	conn := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := conn.DoRequest(ctx, http.MethodGet, "/", nil, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
	assert.True(t, IsTimeout(err))
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(nil))
	assert.False(t, IsTimeout(errors.New("boom")))
	assert.True(t, IsTimeout(context.DeadlineExceeded))
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://api.example.com/data?q=Nairobi&appid=secret&KEY=other")
	require.NoError(t, err)

	got := redactURL(u)
	assert.NotContains(t, got, "secret")
	assert.NotContains(t, got, "other")
	assert.Contains(t, got, "q=Nairobi")
}

func TestWithTimeouts_KeepsDefaultsForZeroFields(t *testing.T) {
	s := defaultSettings()
	WithTimeouts(Timeouts{Request: 2 * time.Second})(s)
	WithIdlePool(4, 2)(s)

	assert.Equal(t, 2*time.Second, s.timeouts.Request)
	assert.Equal(t, 10*time.Second, s.timeouts.Dial)
	assert.Equal(t, 4, s.maxIdleConns)
	assert.Equal(t, 2, s.maxIdleConnsPerHost)

	client := s.client()
	assert.Equal(t, 2*time.Second, client.Timeout)
	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 4, tr.MaxIdleConns)
}
