package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultGeocodingURL is the Open-Meteo place search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder implements weather.Geocoder for the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name     string
	baseURL  string
	language string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

func NewOpenMeteoGeocoder(client *http.Client, baseURL, language string, logger *zap.Logger) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenMeteoGeocoder{
		name:     "openmeteo-geocoding",
		baseURL:  baseURL,
		language: language,
		client:   client,
		circuit:  newCircuitBreaker("openmeteo-geocoding"),
		logger:   logger,
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

type geocodingResult struct {
	Name        string   `json:"name" validate:"required"`
	Admin1      string   `json:"admin1"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code" validate:"omitempty,len=2,alpha"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	Timezone    string   `json:"timezone"`
}

// Resolve returns the best match for query. Only the first result is requested.
func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, query string) (weather.Place, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")
	if g.language != "" {
		values.Set("language", g.language)
	}

	resp, err := doRequest(ctx, g.client, g.circuit, fmt.Sprintf("%s?%s", g.baseURL, values.Encode()))
	if err != nil {
		return weather.Place{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []geocodingResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Place{}, fmt.Errorf("%w: decode: %v", weather.ErrMalformedPlace, err)
	}

	if len(payload.Results) == 0 {
		return weather.Place{}, weather.ErrPlaceNotFound
	}

	r := payload.Results[0]
	if err := validate.Struct(r); err != nil {
		g.logger.Debug("geocoding result rejected", zap.String("query", query), zap.Error(err))
		return weather.Place{}, fmt.Errorf("%w: %v", weather.ErrMalformedPlace, err)
	}

	return weather.Place{
		Name:        r.Name,
		AdminRegion: r.Admin1,
		Country:     r.Country,
		CountryCode: strings.ToUpper(r.CountryCode),
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Timezone:    r.Timezone,
	}, nil
}
