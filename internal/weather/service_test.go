package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeGeocoder struct {
	place   Place
	err     error
	calls   int
	queries []string
}

func (f *fakeGeocoder) Name() string { return "fake-geocoder" }

func (f *fakeGeocoder) Resolve(_ context.Context, query string) (Place, error) {
	f.calls++
	f.queries = append(f.queries, query)
	return f.place, f.err
}

type fakeForecaster struct {
	bundle   ForecastBundle
	err      error
	calls    int
	timezone string
	lat, lon float64
}

func (f *fakeForecaster) Name() string { return "fake-forecaster" }

func (f *fakeForecaster) Fetch(_ context.Context, lat, lon float64, timezone string) (ForecastBundle, error) {
	f.calls++
	f.lat, f.lon, f.timezone = lat, lon, timezone
	return f.bundle, f.err
}

func TestService_Search(t *testing.T) {
	geo := &fakeGeocoder{place: testPlace}
	fc := &fakeForecaster{bundle: bundleFixture(t, 7)}
	svc := NewService(geo, fc, 5, nil)

	got, err := svc.Search(context.Background(), "  Berlin ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Days) != 5 {
		t.Errorf("expected 5 days, got %d", len(got.Days))
	}
	if got.Current.Humidity != 55 {
		t.Errorf("humidity = %v, want 55", got.Current.Humidity)
	}
	if len(geo.queries) != 1 || geo.queries[0] != "Berlin" {
		t.Errorf("geocoder queries = %q, want [Berlin]", geo.queries)
	}
	if fc.lat != testPlace.Latitude || fc.lon != testPlace.Longitude {
		t.Errorf("forecast requested for %v,%v", fc.lat, fc.lon)
	}
	if fc.timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want Europe/Berlin", fc.timezone)
	}
}

func TestService_SearchDays(t *testing.T) {
	svc := NewService(&fakeGeocoder{place: testPlace}, &fakeForecaster{bundle: bundleFixture(t, 7)}, 5, nil)

	got, err := svc.SearchDays(context.Background(), "Berlin", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Days) != 7 {
		t.Errorf("expected 7 days, got %d", len(got.Days))
	}
}

func TestService_EmptyQuery(t *testing.T) {
	geo := &fakeGeocoder{place: testPlace}
	fc := &fakeForecaster{}
	svc := NewService(geo, fc, 5, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), q)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Search(%q) error = %v, want ErrEmptyQuery", q, err)
		}
	}
	if geo.calls != 0 || fc.calls != 0 {
		t.Errorf("no upstream call expected, got geocoder=%d forecast=%d", geo.calls, fc.calls)
	}
}

func TestService_NotFoundSkipsForecast(t *testing.T) {
	geo := &fakeGeocoder{err: ErrPlaceNotFound}
	fc := &fakeForecaster{}
	svc := NewService(geo, fc, 5, nil)

	_, err := svc.Search(context.Background(), "Atlantis")
	if !errors.Is(err, ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
	if fc.calls != 0 {
		t.Errorf("forecast should not be requested, got %d calls", fc.calls)
	}
	if msg := UserMessage(err); msg != FailureMessage {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestService_ForecastFailure(t *testing.T) {
	svc := NewService(&fakeGeocoder{place: testPlace}, &fakeForecaster{err: ErrUpstream}, 5, nil)

	_, err := svc.Search(context.Background(), "Berlin")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestService_MalformedForecast(t *testing.T) {
	bundle := bundleFixture(t, 7)
	bundle.Hourly = HourlySeries{}
	svc := NewService(&fakeGeocoder{place: testPlace}, &fakeForecaster{bundle: bundle}, 5, nil)

	_, err := svc.Search(context.Background(), "Berlin")
	if !errors.Is(err, ErrMalformedForecast) {
		t.Fatalf("expected ErrMalformedForecast, got %v", err)
	}
}

func TestService_TimezoneFallback(t *testing.T) {
	place := testPlace
	place.Timezone = ""
	fc := &fakeForecaster{bundle: bundleFixture(t, 7)}
	svc := NewService(&fakeGeocoder{place: place}, fc, 5, nil)

	if _, err := svc.Search(context.Background(), "Berlin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.timezone != "auto" {
		t.Errorf("timezone = %q, want auto", fc.timezone)
	}
}

func TestNewService_DefaultDays(t *testing.T) {
	if got := NewService(nil, nil, 0, nil).Days(); got != DefaultDays {
		t.Errorf("Days() = %d, want %d", got, DefaultDays)
	}
	if got := NewService(nil, nil, 3, nil).Days(); got != 3 {
		t.Errorf("Days() = %d, want 3", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty query", ErrEmptyQuery, ""},
		{"not found", ErrPlaceNotFound, FailureMessage},
		{"upstream", ErrUpstream, FailureMessage},
		{"malformed", ErrMalformedForecast, FailureMessage},
		{"other", errors.New("boom"), FailureMessage},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("%s: UserMessage = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrEmptyQuery, "empty"},
		{fmt.Errorf("resolve %q: %w", "x", ErrPlaceNotFound), "not_found"},
		{ErrMalformedPlace, "malformed"},
		{ErrMalformedForecast, "malformed"},
		{fmt.Errorf("%w: status 500", ErrUpstream), "upstream"},
		{context.DeadlineExceeded, "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
