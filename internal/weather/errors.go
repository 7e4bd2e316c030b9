package weather

import "errors"

var (
	// ErrEmptyQuery is returned when the search text is blank after trimming.
	ErrEmptyQuery = errors.New("empty place query")
	// ErrPlaceNotFound is returned when geocoding yields no results.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrUpstream covers transport failures and non-success responses.
	ErrUpstream = errors.New("upstream request failed")
	// ErrMalformedPlace is returned when a geocoding result fails validation.
	ErrMalformedPlace = errors.New("malformed geocoding result")
	// ErrMalformedForecast is returned when a forecast response is missing
	// series or its series are not index-aligned.
	ErrMalformedForecast = errors.New("malformed forecast data")
	// ErrEmptySeries is returned by NearestIndex for an empty series.
	ErrEmptySeries = errors.New("empty time series")
)

// FailureMessage is shown to users for every failed search.
const FailureMessage = "Could not get weather data for this city. Try another city."

// UserMessage maps a search error to the text shown in the error slot.
// Blank queries are ignored and produce no message.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, ErrEmptyQuery) {
		return ""
	}
	return FailureMessage
}
