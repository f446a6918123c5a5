// Package weather orchestrates the lookup pipeline: resolve a locator to
// coordinates, fetch the one-call payload and normalize it into the stable
// response contract. It also serves the historian's per-day lookups.
package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skycastapp/skycast/internal/models"
	"github.com/skycastapp/skycast/internal/owm"
)

// historyFloor is the first date the provider's archive covers.
const historyFloor = "1979-01-02"

var validate = validator.New()

// Geocoder resolves locators to coordinates and back.
type Geocoder interface {
	GeocodeCity(ctx context.Context, city string) (models.Place, error)
	GeocodeZip(ctx context.Context, zip string) (models.Place, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (models.Place, error)
}

// Fetcher retrieves raw weather payloads for resolved coordinates.
type Fetcher interface {
	OneCall(ctx context.Context, lat, lon float64) (*owm.OneCallResponse, error)
	DaySummary(ctx context.Context, lat, lon float64, date string) (*owm.DaySummaryResponse, error)
}

type Service struct {
	geo     Geocoder
	fetcher Fetcher
}

func NewService(geo Geocoder, fetcher Fetcher) *Service {
	return &Service{geo: geo, fetcher: fetcher}
}

// ByCity resolves a city name and returns its weather.
func (s *Service) ByCity(ctx context.Context, city string) (*models.WeatherResponse, error) {
	if strings.TrimSpace(city) == "" {
		return nil, &models.ValidationError{Msg: "City is required"}
	}
	place, err := s.geo.GeocodeCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return s.fetchAndNormalize(ctx, place)
}

// ByZip resolves a "zip,countryCode" pair and returns its weather. A zip
// without a country code fails fast rather than guessing one.
func (s *Service) ByZip(ctx context.Context, zip string) (*models.WeatherResponse, error) {
	if strings.TrimSpace(zip) == "" {
		return nil, &models.ValidationError{Msg: "Zip code is required"}
	}
	parts := strings.SplitN(zip, ",", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return nil, &models.ValidationError{Msg: "Zip code must include a country code, e.g. 90210,US"}
	}
	place, err := s.geo.GeocodeZip(ctx, zip)
	if err != nil {
		return nil, err
	}
	return s.fetchAndNormalize(ctx, place)
}

// ByCoords uses the coordinates as-is. Identity is filled in by a best-effort
// reverse lookup; its failure leaves city and country null.
func (s *Service) ByCoords(ctx context.Context, lat, lon float64) (*models.WeatherResponse, error) {
	place := models.Place{Lat: lat, Lon: lon}
	if rev, err := s.geo.ReverseGeocode(ctx, lat, lon); err == nil {
		place.City = rev.City
		place.Country = rev.Country
	} else {
		log.Printf("weather: reverse geocode %.4f,%.4f: %v", lat, lon, err)
	}
	return s.fetchAndNormalize(ctx, place)
}

func (s *Service) fetchAndNormalize(ctx context.Context, place models.Place) (*models.WeatherResponse, error) {
	raw, err := s.fetcher.OneCall(ctx, place.Lat, place.Lon)
	if err != nil {
		return nil, err
	}
	resp := Normalize(raw, place)
	return &resp, nil
}

type historyQuery struct {
	City string `validate:"required"`
	Date string `validate:"required,datetime=2006-01-02"`
}

// History fetches the weather summary for a city on a given date. Dates
// before the archive floor and malformed date strings are rejected here, at
// the data-fetch layer, with a descriptive error.
func (s *Service) History(ctx context.Context, city, date string) (*models.HistoryWeather, error) {
	q := historyQuery{City: city, Date: date}
	if err := validate.Struct(q); err != nil {
		return nil, &models.ToolError{Msg: fmt.Sprintf("invalid history request: city and a date in YYYY-MM-DD format are required (got city=%q, date=%q)", city, date)}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, &models.ToolError{Msg: fmt.Sprintf("invalid date %q: use the YYYY-MM-DD format", date)}
	}
	floor, _ := time.Parse("2006-01-02", historyFloor)
	if day.Before(floor) {
		return nil, &models.ToolError{Msg: fmt.Sprintf("no weather records exist before %s", historyFloor)}
	}

	place, err := s.geo.GeocodeCity(ctx, city)
	if err != nil {
		return nil, err
	}
	summary, err := s.fetcher.DaySummary(ctx, place.Lat, place.Lon, date)
	if err != nil {
		return nil, err
	}

	return &models.HistoryWeather{
		City:          place.City,
		Date:          date,
		TempMax:       summary.Temperature.Max,
		TempMin:       summary.Temperature.Min,
		TempMorning:   summary.Temperature.Morning,
		TempAfternoon: summary.Temperature.Afternoon,
		TempEvening:   summary.Temperature.Evening,
		TempNight:     summary.Temperature.Night,
		Precipitation: summary.Precipitation.Total,
		Humidity:      summary.Humidity.Afternoon,
		WindMaxSpeed:  summary.Wind.Max.Speed,
		CloudCover:    summary.CloudCover.Afternoon,
	}, nil
}
