package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/metrics"
)

// DefaultDays is the forecast length used when none is configured.
const DefaultDays = 5

// Service runs the search pipeline: resolve, fetch, normalize.
type Service struct {
	geocoder   Geocoder
	forecaster ForecastFetcher
	days       int
	logger     *zap.Logger
}

// NewService creates a new Service. A non-positive days falls back to DefaultDays.
func NewService(geocoder Geocoder, forecaster ForecastFetcher, days int, logger *zap.Logger) *Service {
	if days <= 0 {
		days = DefaultDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		geocoder:   geocoder,
		forecaster: forecaster,
		days:       days,
		logger:     logger,
	}
}

// Days returns the configured forecast length.
func (s *Service) Days() int {
	return s.days
}

// Resolve turns a free-text place name into a Place.
func (s *Service) Resolve(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrEmptyQuery
	}
	return s.geocoder.Resolve(ctx, query)
}

// Fetch retrieves the raw forecast for a resolved place.
func (s *Service) Fetch(ctx context.Context, place Place) (ForecastBundle, error) {
	tz := common.FirstNonEmpty(place.Timezone, "auto")
	return s.forecaster.Fetch(ctx, place.Latitude, place.Longitude, tz)
}

// Search runs the whole pipeline with the configured day count.
func (s *Service) Search(ctx context.Context, query string) (Normalized, error) {
	return s.SearchDays(ctx, query, s.days)
}

// SearchDays runs the whole pipeline returning at most days forecast days.
// The forecast request is only issued once the place is resolved.
func (s *Service) SearchDays(ctx context.Context, query string, days int) (result Normalized, err error) {
	defer func() {
		metrics.SearchesTotal.WithLabelValues(outcome(err)).Inc()
	}()

	place, err := s.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			return Normalized{}, err
		}
		s.logger.Warn("resolve failed",
			zap.String("query", query),
			zap.String("geocoder", s.geocoder.Name()),
			zap.Error(err))
		return Normalized{}, fmt.Errorf("resolve %q: %w", query, err)
	}

	bundle, err := s.Fetch(ctx, place)
	if err != nil {
		s.logger.Warn("forecast fetch failed",
			zap.String("place", place.Name),
			zap.Float64("lat", place.Latitude),
			zap.Float64("lon", place.Longitude),
			zap.String("provider", s.forecaster.Name()),
			zap.Error(err))
		return Normalized{}, fmt.Errorf("fetch forecast for %s: %w", place.Name, err)
	}

	result, err = NormalizeForecast(bundle, place, days)
	if err != nil {
		s.logger.Error("forecast normalization failed",
			zap.String("place", place.Name),
			zap.Int("hourly", len(bundle.Hourly.Time)),
			zap.Int("daily", len(bundle.Daily.Time)),
			zap.Error(err))
		return Normalized{}, fmt.Errorf("normalize forecast for %s: %w", place.Name, err)
	}

	s.logger.Debug("search completed",
		zap.String("query", query),
		zap.String("place", place.Name),
		zap.Int("days", len(result.Days)))
	return result, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyQuery):
		return "empty"
	case errors.Is(err, ErrPlaceNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedPlace), errors.Is(err, ErrMalformedForecast):
		return "malformed"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "error"
	}
}
