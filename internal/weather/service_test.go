package weather

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skycastapp/skycast/internal/models"
	"github.com/skycastapp/skycast/internal/owm"
)

type fakeGeocoder struct {
	place      models.Place
	cityErr    error
	zipErr     error
	reverseErr error

	lastCity string
	lastZip  string
}

func (f *fakeGeocoder) GeocodeCity(ctx context.Context, city string) (models.Place, error) {
	f.lastCity = city
	return f.place, f.cityErr
}

func (f *fakeGeocoder) GeocodeZip(ctx context.Context, zip string) (models.Place, error) {
	f.lastZip = zip
	return f.place, f.zipErr
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (models.Place, error) {
	return f.place, f.reverseErr
}

type fakeFetcher struct {
	oneCall    *owm.OneCallResponse
	oneCallErr error
	summary    *owm.DaySummaryResponse
	summaryErr error

	lastDate string
}

func (f *fakeFetcher) OneCall(ctx context.Context, lat, lon float64) (*owm.OneCallResponse, error) {
	return f.oneCall, f.oneCallErr
}

func (f *fakeFetcher) DaySummary(ctx context.Context, lat, lon float64, date string) (*owm.DaySummaryResponse, error) {
	f.lastDate = date
	return f.summary, f.summaryErr
}

func newTestService(geo *fakeGeocoder, fetcher *fakeFetcher) *Service {
	if geo.place == (models.Place{}) {
		geo.place = models.Place{Lat: -37.8, Lon: 144.9, City: "Melbourne", Country: "AU"}
	}
	if fetcher.oneCall == nil {
		fetcher.oneCall = &owm.OneCallResponse{}
	}
	if fetcher.summary == nil {
		fetcher.summary = &owm.DaySummaryResponse{}
	}
	return NewService(geo, fetcher)
}

func TestByCity_EmptyCityRejected(t *testing.T) {
	svc := newTestService(&fakeGeocoder{}, &fakeFetcher{})

	_, err := svc.ByCity(context.Background(), "  ")
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if ve.Msg != "City is required" {
		t.Errorf("message = %q", ve.Msg)
	}
}

func TestByCity_GeocodeErrorPropagates(t *testing.T) {
	geo := &fakeGeocoder{cityErr: &models.NotFoundError{What: `coordinates for city "Atlantis"`}}
	svc := newTestService(geo, &fakeFetcher{})

	_, err := svc.ByCity(context.Background(), "Atlantis")
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestByZip_CountryCodeRequired(t *testing.T) {
	tests := []struct {
		zip    string
		wantOK bool
	}{
		{"90210,US", true},
		{"90210", false},
		{"90210,", false},
		{",US", false},
		{"", false},
	}

	for _, tt := range tests {
		geo := &fakeGeocoder{}
		svc := newTestService(geo, &fakeFetcher{})
		_, err := svc.ByZip(context.Background(), tt.zip)

		if tt.wantOK {
			if err != nil {
				t.Errorf("ByZip(%q) = %v, want success", tt.zip, err)
			}
			continue
		}
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("ByZip(%q) = %v, want ValidationError", tt.zip, err)
		}
		if geo.lastZip != "" {
			t.Errorf("ByZip(%q) reached the geocoder before validation", tt.zip)
		}
	}
}

func TestByCoords_ReverseFailureLeavesIdentityNull(t *testing.T) {
	geo := &fakeGeocoder{reverseErr: errors.New("timeout")}
	geo.place = models.Place{City: "ignored"}
	svc := NewService(geo, &fakeFetcher{oneCall: &owm.OneCallResponse{}})

	resp, err := svc.ByCoords(context.Background(), -37.8, 144.9)
	if err != nil {
		t.Fatalf("ByCoords: %v", err)
	}
	if resp.City != nil || resp.Country != nil {
		t.Errorf("identity should be null when reverse geocoding fails, got city=%v country=%v", resp.City, resp.Country)
	}
}

func TestByCoords_ReverseSuccessFillsIdentity(t *testing.T) {
	geo := &fakeGeocoder{place: models.Place{Lat: 0, Lon: 0, City: "Geelong", Country: "AU"}}
	svc := NewService(geo, &fakeFetcher{oneCall: &owm.OneCallResponse{}})

	resp, err := svc.ByCoords(context.Background(), -38.1, 144.4)
	if err != nil {
		t.Fatalf("ByCoords: %v", err)
	}
	if resp.City == nil || *resp.City != "Geelong" {
		t.Errorf("city = %v, want Geelong", resp.City)
	}
}

func TestHistory_Validation(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		date    string
		wantErr string
	}{
		{"missing city", "", "2020-06-15", "invalid history request"},
		{"missing date", "Melbourne", "", "invalid history request"},
		{"malformed date", "Melbourne", "not-a-date", "invalid history request"},
		{"wrong format", "Melbourne", "15/06/2020", "invalid history request"},
		{"before archive floor", "Melbourne", "1970-01-01", "no weather records exist before 1979-01-02"},
		{"day before floor", "Melbourne", "1979-01-01", "no weather records exist before 1979-01-02"},
	}

	for _, tt := range tests {
		fetcher := &fakeFetcher{}
		svc := newTestService(&fakeGeocoder{}, fetcher)

		_, err := svc.History(context.Background(), tt.city, tt.date)
		var te *models.ToolError
		if !errors.As(err, &te) {
			t.Errorf("%s: got %v, want ToolError", tt.name, err)
			continue
		}
		if !strings.Contains(te.Msg, tt.wantErr) {
			t.Errorf("%s: message %q does not contain %q", tt.name, te.Msg, tt.wantErr)
		}
		if fetcher.lastDate != "" {
			t.Errorf("%s: invalid request reached the provider", tt.name)
		}
	}
}

func TestHistory_FloorDateAccepted(t *testing.T) {
	fetcher := &fakeFetcher{summary: &owm.DaySummaryResponse{}}
	fetcher.summary.Temperature.Min = 5.5
	fetcher.summary.Temperature.Max = 17.0
	fetcher.summary.Precipitation.Total = 2.1
	svc := newTestService(&fakeGeocoder{}, fetcher)

	got, err := svc.History(context.Background(), "Melbourne", "1979-01-02")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if got.City != "Melbourne" {
		t.Errorf("city = %q, want resolved place name", got.City)
	}
	if got.Date != "1979-01-02" {
		t.Errorf("date = %q", got.Date)
	}
	if got.TempMin != 5.5 || got.TempMax != 17.0 || got.Precipitation != 2.1 {
		t.Errorf("summary fields not mapped: %+v", got)
	}
	if fetcher.lastDate != "1979-01-02" {
		t.Errorf("provider called with date %q", fetcher.lastDate)
	}
}

func TestHistory_UpstreamErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{summaryErr: &models.UpstreamError{Status: 401, Message: "invalid api key"}}
	svc := newTestService(&fakeGeocoder{}, fetcher)

	_, err := svc.History(context.Background(), "Melbourne", "2020-06-15")
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
	if ue.Status != 401 {
		t.Errorf("status = %d, want 401", ue.Status)
	}
}
