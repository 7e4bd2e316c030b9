package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyVariables = "relativehumidity_2m,surface_pressure"
	dailyVariables  = "temperature_2m_max,temperature_2m_min,weathercode"
)

// OpenMeteoProvider implements weather.ForecastFetcher for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewOpenMeteoProvider(client *http.Client, baseURL string, logger *zap.Logger) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo"),
		logger:  logger,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type forecastPayload struct {
	Timezone             string `json:"timezone"`
	TimezoneAbbreviation string `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int    `json:"utc_offset_seconds"`

	CurrentWeather *struct {
		Time        string   `json:"time" validate:"required"`
		Temperature *float64 `json:"temperature" validate:"required"`
		WindSpeed   *float64 `json:"windspeed" validate:"required"`
		WeatherCode *int     `json:"weathercode" validate:"required"`
	} `json:"current_weather" validate:"required"`

	Hourly *struct {
		Time             []string   `json:"time" validate:"required"`
		RelativeHumidity []*float64 `json:"relativehumidity_2m" validate:"required"`
		SurfacePressure  []*float64 `json:"surface_pressure" validate:"required"`
	} `json:"hourly" validate:"required"`

	Daily *struct {
		Time           []string   `json:"time" validate:"required"`
		TemperatureMax []*float64 `json:"temperature_2m_max" validate:"required"`
		TemperatureMin []*float64 `json:"temperature_2m_min" validate:"required"`
		WeatherCode    []*int     `json:"weathercode" validate:"required"`
	} `json:"daily" validate:"required"`
}

// Fetch retrieves current conditions, hourly humidity/pressure and daily
// extremes. Timestamps that carry no zone of their own are read in the
// response's timezone. Null samples are rejected as malformed.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, lat, lon float64, timezone string) (weather.ForecastBundle, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current_weather", "true")
	values.Set("hourly", hourlyVariables)
	values.Set("daily", dailyVariables)
	values.Set("timezone", timezone)

	resp, err := doRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return weather.ForecastBundle{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastBundle{}, fmt.Errorf("%w: decode: %v", weather.ErrMalformedForecast, err)
	}

	if err := validate.Struct(payload); err != nil {
		return weather.ForecastBundle{}, fmt.Errorf("%w: %v", weather.ErrMalformedForecast, err)
	}

	bundle, err := payload.toBundle()
	if err != nil {
		return weather.ForecastBundle{}, err
	}

	p.logger.Debug("forecast fetched",
		zap.String("timezone", bundle.Timezone),
		zap.Int("hourly", len(bundle.Hourly.Time)),
		zap.Int("daily", len(bundle.Daily.Time)))
	return bundle, nil
}

func (fp forecastPayload) toBundle() (weather.ForecastBundle, error) {
	loc := fp.location()

	currentTime, err := parseInstant(fp.CurrentWeather.Time, loc)
	if err != nil {
		return weather.ForecastBundle{}, err
	}

	hourlyTimes := make([]time.Time, 0, len(fp.Hourly.Time))
	for _, s := range fp.Hourly.Time {
		t, err := parseInstant(s, loc)
		if err != nil {
			return weather.ForecastBundle{}, err
		}
		hourlyTimes = append(hourlyTimes, t)
	}

	dailyTimes := make([]time.Time, 0, len(fp.Daily.Time))
	for _, s := range fp.Daily.Time {
		t, err := parseDate(s, loc)
		if err != nil {
			return weather.ForecastBundle{}, err
		}
		dailyTimes = append(dailyTimes, t)
	}

	humidity, err := presentValues("relativehumidity_2m", fp.Hourly.RelativeHumidity)
	if err != nil {
		return weather.ForecastBundle{}, err
	}
	pressure, err := presentValues("surface_pressure", fp.Hourly.SurfacePressure)
	if err != nil {
		return weather.ForecastBundle{}, err
	}
	maxTemp, err := presentValues("temperature_2m_max", fp.Daily.TemperatureMax)
	if err != nil {
		return weather.ForecastBundle{}, err
	}
	minTemp, err := presentValues("temperature_2m_min", fp.Daily.TemperatureMin)
	if err != nil {
		return weather.ForecastBundle{}, err
	}
	codes, err := presentValues("weathercode", fp.Daily.WeatherCode)
	if err != nil {
		return weather.ForecastBundle{}, err
	}

	return weather.ForecastBundle{
		Timezone: fp.Timezone,
		Current: weather.CurrentSample{
			Time:        currentTime,
			Temperature: *fp.CurrentWeather.Temperature,
			WindSpeed:   *fp.CurrentWeather.WindSpeed,
			WeatherCode: *fp.CurrentWeather.WeatherCode,
		},
		Hourly: weather.HourlySeries{
			Time:             hourlyTimes,
			RelativeHumidity: humidity,
			SurfacePressure:  pressure,
		},
		Daily: weather.DailySeries{
			Time:           dailyTimes,
			TemperatureMax: maxTemp,
			TemperatureMin: minTemp,
			WeatherCode:    codes,
		},
	}, nil
}

// location prefers the named zone so local timestamps stay correct across
// DST changes; the fixed offset covers names the zone database lacks.
func (fp forecastPayload) location() *time.Location {
	if fp.Timezone != "" {
		if loc, err := time.LoadLocation(fp.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone(fp.TimezoneAbbreviation, fp.UTCOffsetSeconds)
}

// presentValues dereferences a series; Open-Meteo sends null for missing samples.
func presentValues[T any](name string, series []*T) ([]T, error) {
	out := make([]T, len(series))
	for i, v := range series {
		if v == nil {
			return nil, fmt.Errorf("%w: %s[%d] is null", weather.ErrMalformedForecast, name, i)
		}
		out[i] = *v
	}
	return out, nil
}

var localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

// parseInstant accepts RFC 3339 timestamps and Open-Meteo's zone-less
// local form, which is read in loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", weather.ErrMalformedForecast, s)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", weather.ErrMalformedForecast, s)
	}
	return t, nil
}
