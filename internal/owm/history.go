package owm

import (
	"context"
	"fmt"
)

// DaySummaryResponse is the raw aggregated weather for one calendar day.
type DaySummaryResponse struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Date       string  `json:"date"`
	CloudCover struct {
		Afternoon float64 `json:"afternoon"`
	} `json:"cloud_cover"`
	Humidity struct {
		Afternoon float64 `json:"afternoon"`
	} `json:"humidity"`
	Precipitation struct {
		Total float64 `json:"total"`
	} `json:"precipitation"`
	Temperature struct {
		Min       float64 `json:"min"`
		Max       float64 `json:"max"`
		Morning   float64 `json:"morning"`
		Afternoon float64 `json:"afternoon"`
		Evening   float64 `json:"evening"`
		Night     float64 `json:"night"`
	} `json:"temperature"`
	Wind struct {
		Max struct {
			Speed     float64 `json:"speed"`
			Direction float64 `json:"direction"`
		} `json:"max"`
	} `json:"wind"`
}

// DaySummary fetches the historical summary for one date (YYYY-MM-DD).
// The provider's archive starts at 1979-01-02; callers validate the date
// before reaching this method.
func (c *Client) DaySummary(ctx context.Context, lat, lon float64, date string) (*DaySummaryResponse, error) {
	u := fmt.Sprintf("%s/data/3.0/onecall/day_summary?lat=%f&lon=%f&date=%s&units=metric&appid=%s", c.baseURL, lat, lon, date, c.apiKey)

	var payload DaySummaryResponse
	if err := c.getJSON(ctx, "day_summary", u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
