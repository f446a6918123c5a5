package weather

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/skycastapp/skycast/internal/models"
	"github.com/skycastapp/skycast/internal/owm"
)

func sampleOneCall() *owm.OneCallResponse {
	raw := &owm.OneCallResponse{
		Current: owm.CurrentBlock{
			Temp:       21.5,
			FeelsLike:  20.1,
			Humidity:   55,
			UVI:        6.2,
			WindSpeed:  3.4,
			Visibility: 10000,
			Weather:    []owm.Condition{{Main: "Clouds", Description: "scattered clouds", Icon: "03d"}},
		},
	}
	for i := 0; i < 8; i++ {
		raw.Daily = append(raw.Daily, owm.DailyBlock{
			Dt:      int64(1700000000 + i*86400),
			Temp:    owm.DailyTemp{Min: 10 + float64(i), Max: 20 + float64(i)},
			Weather: []owm.Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}},
		})
	}
	for i := 0; i < 48; i++ {
		raw.Hourly = append(raw.Hourly, owm.HourlyBlock{
			Dt:   int64(1700000000 + i*3600),
			Temp: 15 + float64(i)*0.1,
		})
	}
	return raw
}

func TestNormalize_SlicesNeverNull(t *testing.T) {
	raw := sampleOneCall()
	raw.Daily = nil
	raw.Hourly = nil
	raw.Alerts = nil

	resp := Normalize(raw, models.Place{})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"dailyForecast":[]`, `"weatherAlerts":[]`, `"hourlyWeather":[]`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("response missing %s in %s", key, body)
		}
	}
	if !strings.Contains(string(body), `"city":null`) {
		t.Errorf("city should be null for anonymous coordinates, got %s", body)
	}
}

func TestNormalize_HourlyTruncatedTo24(t *testing.T) {
	resp := Normalize(sampleOneCall(), models.Place{})

	if len(resp.HourlyWeather) != 24 {
		t.Fatalf("hourly length = %d, want 24", len(resp.HourlyWeather))
	}
	if resp.HourlyWeather[0].Dt != 1700000000 {
		t.Errorf("hourly[0].Dt = %d, want 1700000000", resp.HourlyWeather[0].Dt)
	}
	if resp.HourlyWeather[23].Dt != 1700000000+23*3600 {
		t.Errorf("hourly series not in provider order")
	}
}

func TestNormalize_DailyOrderPreserved(t *testing.T) {
	resp := Normalize(sampleOneCall(), models.Place{})

	if len(resp.DailyForecast) != 8 {
		t.Fatalf("daily length = %d, want 8", len(resp.DailyForecast))
	}
	for i, day := range resp.DailyForecast {
		if day.Dt != int64(1700000000+i*86400) {
			t.Fatalf("daily[%d].Dt = %d, order not preserved", i, day.Dt)
		}
		if day.Main != "Clear" {
			t.Errorf("daily[%d] condition not flattened", i)
		}
	}
}

func TestNormalize_AlertTagsDefaultEmpty(t *testing.T) {
	raw := sampleOneCall()
	raw.Alerts = []owm.AlertBlock{
		{SenderName: "NWS", Event: "Heat Advisory", Start: 1, End: 2, Description: "hot"},
	}

	resp := Normalize(raw, models.Place{})

	if len(resp.WeatherAlerts) != 1 {
		t.Fatalf("alerts length = %d, want 1", len(resp.WeatherAlerts))
	}
	body, err := json.Marshal(resp.WeatherAlerts[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"tags":[]`) {
		t.Errorf("alert tags should default to [], got %s", body)
	}
}

func TestNormalize_PrecipitationFlattened(t *testing.T) {
	raw := sampleOneCall()
	raw.Current.Rain = &owm.Precip{OneHour: 0.8}
	raw.Hourly[0].Snow = &owm.Precip{OneHour: 1.2}
	dailyRain := 4.5
	dailySnow := 2.0
	raw.Daily[0].Rain = &dailyRain
	raw.Daily[0].Snow = &dailySnow

	resp := Normalize(raw, models.Place{})

	if resp.CurrentWeather.Rain == nil || *resp.CurrentWeather.Rain != 0.8 {
		t.Errorf("current rain = %v, want 0.8", resp.CurrentWeather.Rain)
	}
	if resp.CurrentWeather.Snow != nil {
		t.Errorf("current snow should stay omitted")
	}
	if resp.HourlyWeather[0].Snow == nil || *resp.HourlyWeather[0].Snow != 1.2 {
		t.Errorf("hourly snow = %v, want 1.2", resp.HourlyWeather[0].Snow)
	}
	if resp.DailyForecast[0].Rain != 4.5 {
		t.Errorf("daily rain = %v, want 4.5", resp.DailyForecast[0].Rain)
	}
	if resp.DailyForecast[0].Snow != 2.0 {
		t.Errorf("daily snow = %v, want 2.0", resp.DailyForecast[0].Snow)
	}

	// Days without precipitation report zeros, not missing keys.
	body, err := json.Marshal(resp.DailyForecast[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"rain":0`, `"snow":0`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("dry day missing %s: %s", key, body)
		}
	}
}

func TestNormalize_PlaceIdentity(t *testing.T) {
	resp := Normalize(sampleOneCall(), models.Place{City: "Lisbon", Country: "PT"})

	if resp.City == nil || *resp.City != "Lisbon" {
		t.Errorf("city = %v, want Lisbon", resp.City)
	}
	if resp.Country == nil || *resp.Country != "PT" {
		t.Errorf("country = %v, want PT", resp.Country)
	}
}
