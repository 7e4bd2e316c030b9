package weather

import (
	"context"
)

// Geocoder resolves free text into a Place (e.g. Open-Meteo geocoding).
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, query string) (Place, error)
}

// ForecastFetcher retrieves current conditions and hourly/daily series
// for a coordinate. The timezone is an IANA name or "auto".
type ForecastFetcher interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64, timezone string) (ForecastBundle, error)
}
