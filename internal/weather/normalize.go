package weather

import "fmt"

// NormalizeForecast turns a raw forecast bundle into the presentation model.
//
// Humidity and pressure come from the hourly sample nearest to the current
// reading. At most dayCount days are returned, in upstream order; fewer are
// returned when the bundle has fewer. Values keep full precision.
func NormalizeForecast(bundle ForecastBundle, place Place, dayCount int) (Normalized, error) {
	current, err := normalizeCurrent(bundle, place)
	if err != nil {
		return Normalized{}, err
	}

	days, err := normalizeDays(bundle.Daily, dayCount)
	if err != nil {
		return Normalized{}, err
	}

	return Normalized{Current: current, Days: days}, nil
}

func normalizeCurrent(bundle ForecastBundle, place Place) (NormalizedCurrent, error) {
	h := bundle.Hourly
	if len(h.RelativeHumidity) != len(h.Time) || len(h.SurfacePressure) != len(h.Time) {
		return NormalizedCurrent{}, fmt.Errorf("%w: hourly series lengths differ (time=%d humidity=%d pressure=%d)",
			ErrMalformedForecast, len(h.Time), len(h.RelativeHumidity), len(h.SurfacePressure))
	}

	i, err := NearestIndex(h.Time, bundle.Current.Time)
	if err != nil {
		return NormalizedCurrent{}, fmt.Errorf("%w: hourly: %w", ErrMalformedForecast, err)
	}

	info := LookupCode(bundle.Current.WeatherCode)
	return NormalizedCurrent{
		Place:       place,
		ObservedAt:  bundle.Current.Time,
		Temperature: bundle.Current.Temperature,
		Description: info.Description,
		Icon:        info.Icon,
		Condition:   info.Condition,
		Humidity:    h.RelativeHumidity[i],
		WindSpeed:   bundle.Current.WindSpeed,
		Pressure:    h.SurfacePressure[i],
	}, nil
}

func normalizeDays(d DailySeries, dayCount int) ([]ForecastDay, error) {
	n := len(d.Time)
	if len(d.TemperatureMax) != n || len(d.TemperatureMin) != n || len(d.WeatherCode) != n {
		return nil, fmt.Errorf("%w: daily series lengths differ (time=%d max=%d min=%d code=%d)",
			ErrMalformedForecast, n, len(d.TemperatureMax), len(d.TemperatureMin), len(d.WeatherCode))
	}

	if dayCount < 0 {
		dayCount = 0
	}
	if dayCount < n {
		n = dayCount
	}

	days := make([]ForecastDay, 0, n)
	for k := 0; k < n; k++ {
		info := LookupCode(d.WeatherCode[k])
		days = append(days, ForecastDay{
			Date:        d.Time[k],
			MaxTemp:     d.TemperatureMax[k],
			MinTemp:     d.TemperatureMin[k],
			Description: info.Description,
			Icon:        info.Icon,
			Condition:   info.Condition,
		})
	}
	return days, nil
}
