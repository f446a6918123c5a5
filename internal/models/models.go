package models

// RetrievalMode selects how a weather lookup identifies its location.
type RetrievalMode string

const (
	ModeCity  RetrievalMode = "CITY"
	ModeCoord RetrievalMode = "COORD"
	ModeZip   RetrievalMode = "ZIP"
)

// Place is a resolved location: coordinates plus whatever identity the
// geocoder could attach. City and Country are empty when derived from raw
// coordinates without a successful reverse lookup.
type Place struct {
	Lat     float64
	Lon     float64
	City    string
	Country string
}

// CurrentWeather is a snapshot of conditions at the resolved location.
// Rain and Snow carry the last-hour intensity in mm and are omitted when the
// provider reports none.
type CurrentWeather struct {
	Temp        float64  `json:"temp"`
	FeelsLike   float64  `json:"feels_like"`
	Humidity    int      `json:"humidity"`
	UVI         float64  `json:"uvi"`
	WindSpeed   float64  `json:"wind_speed"`
	Visibility  int      `json:"visibility"`
	Main        string   `json:"main"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Rain        *float64 `json:"rain,omitempty"`
	Snow        *float64 `json:"snow,omitempty"`
}

// DailyForecast is one day of the forecast. Entries are chronological and
// index 0 is today; consumers rely on that ordering. Rain and Snow are daily
// totals in mm, zero when the provider reports none.
type DailyForecast struct {
	Dt          int64   `json:"dt"`
	Summary     string  `json:"summary"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pop         float64 `json:"pop"`
	Rain        float64 `json:"rain"`
	Snow        float64 `json:"snow"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    int     `json:"humidity"`
	UVI         float64 `json:"uvi"`
}

// HourlyWeather is a single point of the next-24h hourly forecast.
type HourlyWeather struct {
	Dt   int64    `json:"dt"`
	Temp float64  `json:"temp"`
	Rain *float64 `json:"rain,omitempty"`
	Snow *float64 `json:"snow,omitempty"`
}

// WeatherAlert is an active government alert, in provider order.
type WeatherAlert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// WeatherResponse is the stable contract returned to clients. All three
// retrieval modes produce this exact shape; the slice fields are always
// present, possibly empty, never null.
type WeatherResponse struct {
	CurrentWeather CurrentWeather  `json:"currentWeather"`
	DailyForecast  []DailyForecast `json:"dailyForecast"`
	WeatherAlerts  []WeatherAlert  `json:"weatherAlerts"`
	HourlyWeather  []HourlyWeather `json:"hourlyWeather"`
	City           *string         `json:"city"`
	Country        *string         `json:"country"`
}

// HistoryWeather is the historian tool's per-day summary. Always fetched
// fresh for a (city, date) pair, never cached.
type HistoryWeather struct {
	City          string  `json:"city"`
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	TempMorning   float64 `json:"temp_morning"`
	TempAfternoon float64 `json:"temp_afternoon"`
	TempEvening   float64 `json:"temp_evening"`
	TempNight     float64 `json:"temp_night"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
	WindMaxSpeed  float64 `json:"wind_max_speed"`
	CloudCover    float64 `json:"cloud_cover"`
}
