package owm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skycastapp/skycast/internal/models"
)

type geoHit struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// GeocodeCity resolves a city name via the direct geocoding endpoint,
// taking the first match.
func (c *Client) GeocodeCity(ctx context.Context, city string) (models.Place, error) {
	u := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s", c.baseURL, url.QueryEscape(city), c.apiKey)

	var hits []geoHit
	if err := c.getJSON(ctx, "geocode_direct", u, &hits); err != nil {
		return models.Place{}, err
	}
	if len(hits) == 0 {
		return models.Place{}, &models.NotFoundError{What: fmt.Sprintf("coordinates for city %q", city)}
	}
	return placeFromHit(hits[0]), nil
}

// GeocodeZip resolves a "zip,countryCode" pair via the zip geocoding
// endpoint. The provider answers 404 for unknown codes, which is surfaced as
// a NotFoundError carrying that status.
func (c *Client) GeocodeZip(ctx context.Context, zip string) (models.Place, error) {
	u := fmt.Sprintf("%s/geo/1.0/zip?zip=%s&appid=%s", c.baseURL, url.QueryEscape(zip), c.apiKey)

	var hit geoHit
	if err := c.getJSON(ctx, "geocode_zip", u, &hit); err != nil {
		var ue *models.UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
			return models.Place{}, &models.NotFoundError{What: fmt.Sprintf("coordinates for zip %q", zip), Status: ue.Status}
		}
		return models.Place{}, err
	}
	return placeFromHit(hit), nil
}

// ReverseGeocode resolves coordinates back to a place name. Callers treat
// this as best-effort; a failure must not fail the weather request.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (models.Place, error) {
	u := fmt.Sprintf("%s/geo/1.0/reverse?lat=%f&lon=%f&limit=1&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var hits []geoHit
	if err := c.getJSON(ctx, "geocode_reverse", u, &hits); err != nil {
		return models.Place{}, err
	}
	if len(hits) == 0 {
		return models.Place{}, &models.NotFoundError{What: fmt.Sprintf("place at %.4f,%.4f", lat, lon)}
	}
	p := placeFromHit(hits[0])
	p.Lat = lat
	p.Lon = lon
	return p, nil
}

func placeFromHit(h geoHit) models.Place {
	return models.Place{
		Lat:     h.Lat,
		Lon:     h.Lon,
		City:    h.Name,
		Country: h.Country,
	}
}
