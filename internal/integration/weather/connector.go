package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/integration/common"
	pkghttp "github.com/nilecare/advisory-backend/pkg/http"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openweathermap.org"

var ErrNoLocation = errors.New("location or coordinates are required")

type Connector struct {
	config    config.WeatherConnectorConfig
	connector *pkghttp.Connector
	cache     *cache.Cache
	logger    *zap.Logger
}

func NewConnector(
	cfg config.WeatherConnectorConfig,
	logger *zap.Logger,
) *Connector {
	c := &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, defaultBaseURL, logger,
			pkghttp.WithAPIKeyQuery("appid", cfg.APIKey)),
		config: cfg,
		logger: logger,
	}
	// A zero TTL would make go-cache keep reports forever, so it disables caching instead
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c
}

// GetWeather returns a human-readable report for a named location or,
// when location is empty, for the given coordinates.
func (c *Connector) GetWeather(ctx context.Context, location string, lat, lon *float64) (string, error) {
	location = strings.TrimSpace(location)

	var opts []pkghttp.RequestOpt
	var key string
	switch {
	case location != "":
		key = "q:" + strings.ToLower(location)
		opts = append(opts, pkghttp.WithQuery("q", location))
	case lat != nil && lon != nil:
		latStr := strconv.FormatFloat(*lat, 'f', 4, 64)
		lonStr := strconv.FormatFloat(*lon, 'f', 4, 64)
		key = "c:" + latStr + "," + lonStr
		opts = append(opts, pkghttp.WithQuery("lat", latStr), pkghttp.WithQuery("lon", lonStr))
	default:
		return "", ErrNoLocation
	}

	if c.cache != nil {
		if report, ok := c.cache.Get(key); ok {
			ctxzap.Debug(ctx, "weather report served from cache", zap.String("key", key))
			return report.(string), nil
		}
	}

	opts = append(opts, pkghttp.WithQuery("units", c.config.Units))

	var resp entity.WeatherResponse
	if err := c.connector.DoRequest(ctx, http.MethodGet, c.config.CurrentEndpoint, nil, &resp, opts...); err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}

	report := FormatReport(&resp, c.config.Units)
	if c.cache != nil {
		c.cache.SetDefault(key, report)
	}

	ctxzap.Info(ctx, "weather report fetched", zap.String("key", key))

	return report, nil
}

// FormatReport renders the payload as a short plain-text summary
func FormatReport(w *entity.WeatherResponse, units string) string {
	tempUnit, speedUnit := "°C", "m/s"
	switch units {
	case "imperial":
		tempUnit, speedUnit = "°F", "mph"
	case "standard":
		tempUnit = "K"
	}

	var sb strings.Builder
	place := w.Name
	if w.Sys.Country != "" && place != "" {
		place += ", " + w.Sys.Country
	}
	if place != "" {
		fmt.Fprintf(&sb, "Location: %s\n", place)
	}
	if len(w.Weather) > 0 {
		fmt.Fprintf(&sb, "Conditions: %s (%s)\n", w.Weather[0].Main, w.Weather[0].Description)
	}
	fmt.Fprintf(&sb, "Temperature: %.1f%s (feels like %.1f%s, min %.1f%s, max %.1f%s)\n",
		w.Main.Temp, tempUnit, w.Main.FeelsLike, tempUnit, w.Main.TempMin, tempUnit, w.Main.TempMax, tempUnit)
	fmt.Fprintf(&sb, "Humidity: %d%%\n", w.Main.Humidity)
	fmt.Fprintf(&sb, "Pressure: %d hPa\n", w.Main.Pressure)
	fmt.Fprintf(&sb, "Wind speed: %.1f %s\n", w.Wind.Speed, speedUnit)
	fmt.Fprintf(&sb, "Cloud cover: %d%%", w.Clouds.All)
	if w.Rain.OneHour > 0 {
		fmt.Fprintf(&sb, "\nRain (last hour): %.1f mm", w.Rain.OneHour)
	}

	return sb.String()
}
