// Package presenter turns a normalized search result into display values
// shared by the HTML page and the JSON API.
package presenter

import (
	"fmt"
	"html"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	currentIconSize  = 160
	forecastIconSize = 96

	dateLayout    = "Monday, January 2, 2006 15:04"
	dayDateLayout = "2006-01-02"
)

// CurrentView is the current-conditions block.
type CurrentView struct {
	Place       string    `json:"place"`
	Flag        string    `json:"flag,omitempty"`
	Date        string    `json:"date"`
	ObservedAt  time.Time `json:"observedAt"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"iconUrl"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	Temperature int       `json:"temperature"`
	FeelsLike   int       `json:"feelsLike"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Pressure    int       `json:"pressure"`
}

// DayView is one entry of the forecast strip.
type DayView struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Icon        string `json:"icon"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Max         int    `json:"max"`
	Min         int    `json:"min"`
}

// View is everything a front end needs to render a successful search.
type View struct {
	Current  CurrentView `json:"current"`
	Forecast []DayView   `json:"forecast"`
}

// Build rounds and formats a normalized result for display.
func Build(n weather.Normalized) View {
	c := n.Current
	flag := weather.FlagGlyph(c.Place.CountryCode)
	temp := roundInt(c.Temperature)

	view := View{
		Current: CurrentView{
			Place:       PlaceLabel(c.Place),
			Flag:        flag,
			Date:        c.ObservedAt.Format(dateLayout),
			ObservedAt:  c.ObservedAt,
			Icon:        c.Icon,
			IconURL:     IconDataURL(c.Icon, currentIconSize),
			Description: c.Description,
			Condition:   string(c.Condition),
			Temperature: temp,
			FeelsLike:   temp,
			Humidity:    c.Humidity,
			WindSpeed:   c.WindSpeed,
			Pressure:    roundInt(c.Pressure),
		},
		Forecast: make([]DayView, 0, len(n.Days)),
	}

	for _, d := range n.Days {
		view.Forecast = append(view.Forecast, DayView{
			Date:        d.Date.Format(dayDateLayout),
			Weekday:     d.Date.Format("Mon"),
			Icon:        d.Icon,
			IconURL:     IconDataURL(d.Icon, forecastIconSize),
			Description: d.Description,
			Condition:   string(d.Condition),
			Max:         roundInt(d.MaxTemp),
			Min:         roundInt(d.MinTemp),
		})
	}
	return view
}

// PlaceLabel renders "<flag> <name>, <region>, <country>", skipping empty parts.
func PlaceLabel(p weather.Place) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.AdminRegion, p.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	label := strings.Join(parts, ", ")
	flag := weather.FlagGlyph(p.CountryCode)
	switch {
	case flag == "":
		return label
	case label == "":
		return flag
	default:
		return flag + " " + label
	}
}

// IconDataURL wraps a glyph in an SVG image so it can be used as an img src.
func IconDataURL(glyph string, size int) string {
	svg := fmt.Sprintf(
		"<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d'>"+
			"<text x='50%%' y='50%%' font-size='%d' text-anchor='middle' dominant-baseline='central'>%s</text></svg>",
		size, size, int(math.Floor(float64(size)*0.6)), html.EscapeString(glyph))
	return "data:image/svg+xml;utf8," + url.PathEscape(svg)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
