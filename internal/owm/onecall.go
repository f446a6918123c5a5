package owm

import (
	"context"
	"fmt"
)

// Precip is the provider's rain/snow sub-object; the key is literally "1h".
type Precip struct {
	OneHour float64 `json:"1h"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentBlock struct {
	Dt         int64       `json:"dt"`
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Humidity   int         `json:"humidity"`
	UVI        float64     `json:"uvi"`
	Visibility int         `json:"visibility"`
	WindSpeed  float64     `json:"wind_speed"`
	Weather    []Condition `json:"weather"`
	Rain       *Precip     `json:"rain,omitempty"`
	Snow       *Precip     `json:"snow,omitempty"`
}

type HourlyBlock struct {
	Dt   int64   `json:"dt"`
	Temp float64 `json:"temp"`
	Rain *Precip `json:"rain,omitempty"`
	Snow *Precip `json:"snow,omitempty"`
}

type DailyTemp struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Day   float64 `json:"day"`
	Morn  float64 `json:"morn"`
	Eve   float64 `json:"eve"`
	Night float64 `json:"night"`
}

type DailyBlock struct {
	Dt        int64       `json:"dt"`
	Summary   string      `json:"summary"`
	Temp      DailyTemp   `json:"temp"`
	Pop       float64     `json:"pop"`
	Rain      *float64    `json:"rain,omitempty"`
	Snow      *float64    `json:"snow,omitempty"`
	WindSpeed float64     `json:"wind_speed"`
	Humidity  int         `json:"humidity"`
	UVI       float64     `json:"uvi"`
	Weather   []Condition `json:"weather"`
}

type AlertBlock struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// OneCallResponse is the raw one-call payload: current conditions, 48h hourly,
// 8-day daily and any active alerts. Field order within the slices is the
// provider's and is preserved downstream.
type OneCallResponse struct {
	Lat      float64       `json:"lat"`
	Lon      float64       `json:"lon"`
	Timezone string        `json:"timezone"`
	Current  CurrentBlock  `json:"current"`
	Hourly   []HourlyBlock `json:"hourly"`
	Daily    []DailyBlock  `json:"daily"`
	Alerts   []AlertBlock  `json:"alerts,omitempty"`
}

// OneCall fetches current, hourly, daily and alert data for the coordinates
// in a single request, metric units.
func (c *Client) OneCall(ctx context.Context, lat, lon float64) (*OneCallResponse, error) {
	u := fmt.Sprintf("%s/data/3.0/onecall?lat=%f&lon=%f&units=metric&exclude=minutely&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var payload OneCallResponse
	if err := c.getJSON(ctx, "onecall", u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
