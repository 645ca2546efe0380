package weather

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GetWeather(ctx context.Context, location string, lat, lon *float64) (string, error) {
	ctxzap.Debug(ctx, "[MOCK] fetching weather", zap.String("location", location))

	place := strings.TrimSpace(location)
	if place == "" {
		if lat == nil || lon == nil {
			return "", ErrNoLocation
		}
		place = fmt.Sprintf("%.4f, %.4f", *lat, *lon)
	}

	return fmt.Sprintf("Location: %s\nConditions: Clouds (scattered clouds)\nTemperature: 22.0°C\nHumidity: 55%%", place), nil
}
