package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Place is a resolved location with coordinates and naming metadata.
// AdminRegion, CountryCode and Timezone may be empty.
type Place struct {
	Name        string  `json:"name"`
	AdminRegion string  `json:"admin1,omitempty"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone,omitempty"`
}

// CurrentSample is the instantaneous reading of a forecast response.
type CurrentSample struct {
	Time        time.Time
	Temperature float64
	WindSpeed   float64
	WeatherCode int
}

// HourlySeries holds index-aligned hourly samples.
type HourlySeries struct {
	Time             []time.Time
	RelativeHumidity []float64
	SurfacePressure  []float64
}

// DailySeries holds index-aligned daily aggregates, ordered by date ascending.
type DailySeries struct {
	Time           []time.Time
	TemperatureMax []float64
	TemperatureMin []float64
	WeatherCode    []int
}

// ForecastBundle is the decoded upstream forecast. Timestamps are absolute instants.
type ForecastBundle struct {
	Timezone string
	Current  CurrentSample
	Hourly   HourlySeries
	Daily    DailySeries
}

// NormalizedCurrent is the presentation-ready current conditions.
type NormalizedCurrent struct {
	Place       Place     `json:"place"`
	ObservedAt  time.Time `json:"observedAt"`
	Temperature float64   `json:"temperatureC"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeedKmh"`
	Pressure    float64   `json:"pressureHpa"`
}

// ForecastDay is one entry of the trimmed daily forecast.
type ForecastDay struct {
	Date        time.Time `json:"date"`
	MaxTemp     float64   `json:"maxTemperatureC"`
	MinTemp     float64   `json:"minTemperatureC"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
}

// Normalized is the result of one search.
type Normalized struct {
	Current NormalizedCurrent `json:"current"`
	Days    []ForecastDay     `json:"days"`
}
