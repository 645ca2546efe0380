package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const payload = `{"name":"Addis Ababa","weather":[{"main":"Rain","description":"light rain"}],
"main":{"temp":18.2,"feels_like":17.9,"temp_min":16,"temp_max":19,"humidity":80,"pressure":1021},
"wind":{"speed":3.1},"clouds":{"all":75},"rain":{"1h":0.6},"sys":{"country":"ET"}}`

func newTestConnector(t *testing.T, handler http.HandlerFunc) *Connector {
	t.Helper()
	return newTestConnectorTTL(t, time.Minute, handler)
}

func newTestConnectorTTL(t *testing.T, ttl time.Duration, handler http.HandlerFunc) *Connector {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewConnector(config.WeatherConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout: 5 * time.Second,
			Url:            srv.URL,
		},
		CurrentEndpoint: "/data/2.5/weather",
		APIKey:          "wkey",
		Units:           "metric",
		CacheTTL:        ttl,
	}, zap.NewNop())
}

func TestGetWeather_ByLocationIsCached(t *testing.T) {
	var calls atomic.Int32
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Addis Ababa", r.URL.Query().Get("q"))
		assert.Equal(t, "wkey", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(payload))
	})

	report, err := conn.GetWeather(context.Background(), "Addis Ababa", nil, nil)
	require.NoError(t, err)
	assert.Contains(t, report, "Location: Addis Ababa, ET")
	assert.Contains(t, report, "Conditions: Rain (light rain)")
	assert.Contains(t, report, "Rain (last hour): 0.6 mm")

	again, err := conn.GetWeather(context.Background(), "addis ababa", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, report, again)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetWeather_ZeroTTLDisablesCache(t *testing.T) {
	var calls atomic.Int32
	conn := newTestConnectorTTL(t, 0, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(payload))
	})

	for range 2 {
		_, err := conn.GetWeather(context.Background(), "Addis Ababa", nil, nil)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetWeather_ZeroCoordinatesArePresent(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0.0000", r.URL.Query().Get("lat"))
		assert.Equal(t, "0.0000", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(payload))
	})

	zero := 0.0
	_, err := conn.GetWeather(context.Background(), "", &zero, &zero)
	require.NoError(t, err)
}

func TestGetWeather_NoLocation(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected call")
	})

	_, err := conn.GetWeather(context.Background(), "  ", nil, nil)
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestGetWeather_UpstreamError(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	})

	_, err := conn.GetWeather(context.Background(), "Atlantis", nil, nil)
	require.Error(t, err)
}

func TestFormatReport_Imperial(t *testing.T) {
	w := &entity.WeatherResponse{}
	w.Main.Temp = 70

	report := FormatReport(w, "imperial")
	assert.Contains(t, report, "70.0°F")
	assert.Contains(t, report, "mph")
	assert.NotContains(t, report, "Rain")
}
