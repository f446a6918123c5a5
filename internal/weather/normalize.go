package weather

import (
	"github.com/skycastapp/skycast/internal/models"
	"github.com/skycastapp/skycast/internal/owm"
)

// hourlyHorizon caps the hourly series at the next 24 points; the provider
// sends 48.
const hourlyHorizon = 24

// Normalize reshapes a raw one-call payload into the response contract.
// Pure function, no I/O. Slice fields are always non-nil, provider order is
// preserved, and the hourly series is truncated to the next 24 hours.
func Normalize(raw *owm.OneCallResponse, place models.Place) models.WeatherResponse {
	resp := models.WeatherResponse{
		CurrentWeather: normalizeCurrent(raw.Current),
		DailyForecast:  make([]models.DailyForecast, 0, len(raw.Daily)),
		WeatherAlerts:  make([]models.WeatherAlert, 0, len(raw.Alerts)),
		HourlyWeather:  make([]models.HourlyWeather, 0, hourlyHorizon),
	}

	for _, d := range raw.Daily {
		day := models.DailyForecast{
			Dt:        d.Dt,
			Summary:   d.Summary,
			TempMin:   d.Temp.Min,
			TempMax:   d.Temp.Max,
			Pop:       d.Pop,
			WindSpeed: d.WindSpeed,
			Humidity:  d.Humidity,
			UVI:       d.UVI,
		}
		if len(d.Weather) > 0 {
			day.Main = d.Weather[0].Main
			day.Description = d.Weather[0].Description
			day.Icon = d.Weather[0].Icon
		}
		if d.Rain != nil {
			day.Rain = *d.Rain
		}
		if d.Snow != nil {
			day.Snow = *d.Snow
		}
		resp.DailyForecast = append(resp.DailyForecast, day)
	}

	hourly := raw.Hourly
	if len(hourly) > hourlyHorizon {
		hourly = hourly[:hourlyHorizon]
	}
	for _, h := range hourly {
		point := models.HourlyWeather{Dt: h.Dt, Temp: h.Temp}
		if h.Rain != nil {
			rain := h.Rain.OneHour
			point.Rain = &rain
		}
		if h.Snow != nil {
			snow := h.Snow.OneHour
			point.Snow = &snow
		}
		resp.HourlyWeather = append(resp.HourlyWeather, point)
	}

	for _, a := range raw.Alerts {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		resp.WeatherAlerts = append(resp.WeatherAlerts, models.WeatherAlert{
			SenderName:  a.SenderName,
			Event:       a.Event,
			Start:       a.Start,
			End:         a.End,
			Description: a.Description,
			Tags:        tags,
		})
	}

	if place.City != "" {
		city := place.City
		resp.City = &city
	}
	if place.Country != "" {
		country := place.Country
		resp.Country = &country
	}
	return resp
}

func normalizeCurrent(c owm.CurrentBlock) models.CurrentWeather {
	cw := models.CurrentWeather{
		Temp:       c.Temp,
		FeelsLike:  c.FeelsLike,
		Humidity:   c.Humidity,
		UVI:        c.UVI,
		WindSpeed:  c.WindSpeed,
		Visibility: c.Visibility,
	}
	if len(c.Weather) > 0 {
		cw.Main = c.Weather[0].Main
		cw.Description = c.Weather[0].Description
		cw.Icon = c.Weather[0].Icon
	}
	if c.Rain != nil {
		rain := c.Rain.OneHour
		cw.Rain = &rain
	}
	if c.Snow != nil {
		snow := c.Snow.OneHour
		cw.Snow = &snow
	}
	return cw
}
