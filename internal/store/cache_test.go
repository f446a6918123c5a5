package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skycastapp/skycast/internal/models"
)

func setupTestCache(t *testing.T, maxAge time.Duration) *Cache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	cache := New(db, maxAge)
	if err := cache.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return cache
}

func sampleResponse(city string) *models.WeatherResponse {
	return &models.WeatherResponse{
		CurrentWeather: models.CurrentWeather{Temp: 21.5, Description: "clear sky"},
		DailyForecast:  []models.DailyForecast{},
		WeatherAlerts:  []models.WeatherAlert{},
		HourlyWeather:  []models.HourlyWeather{},
		City:           &city,
	}
}

func TestCache_RoundTrip(t *testing.T) {
	cache := setupTestCache(t, 10*time.Minute)

	if err := cache.Put("Melbourne", sampleResponse("Melbourne")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := cache.Get("Melbourne")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a hit")
	}
	if got.CurrentWeather.Temp != 21.5 {
		t.Errorf("temp = %f", got.CurrentWeather.Temp)
	}
	if got.City == nil || *got.City != "Melbourne" {
		t.Errorf("city = %v", got.City)
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	cache := setupTestCache(t, 10*time.Minute)

	got, err := cache.Get("nowhere")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected a miss, got %+v", got)
	}
}

func TestCache_KeyNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Melbourne", "melbourne"},
		{"  New   York  ", "new york"},
		{"90210,US", "90210,us"},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	cache := setupTestCache(t, 10*time.Minute)
	if err := cache.Put("  New   York ", sampleResponse("New York")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := cache.Get("new york")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Error("lookup should hit regardless of casing and spacing")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	cache := setupTestCache(t, 10*time.Minute)

	if err := cache.Put("Melbourne", sampleResponse("Melbourne")); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Backdate the entry past the expiry window.
	if _, err := cache.db.Exec(
		`UPDATE weather_cache SET fetched_at = ? WHERE location = ?`,
		time.Now().UTC().Add(-time.Hour), Key("Melbourne"),
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	got, err := cache.Get("Melbourne")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expired entry should read as a miss")
	}
}

func TestCache_PutReplaces(t *testing.T) {
	cache := setupTestCache(t, 10*time.Minute)

	first := sampleResponse("Melbourne")
	first.CurrentWeather.Temp = 10
	if err := cache.Put("Melbourne", first); err != nil {
		t.Fatalf("put: %v", err)
	}

	second := sampleResponse("Melbourne")
	second.CurrentWeather.Temp = 30
	if err := cache.Put("Melbourne", second); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, err := cache.Get("Melbourne")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.CurrentWeather.Temp != 30 {
		t.Errorf("got %+v, want the replacement entry", got)
	}
}

func TestCache_Prune(t *testing.T) {
	cache := setupTestCache(t, 10*time.Minute)

	if err := cache.Put("stale", sampleResponse("Stale")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.Put("fresh", sampleResponse("Fresh")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := cache.db.Exec(
		`UPDATE weather_cache SET fetched_at = ? WHERE location = ?`,
		time.Now().UTC().Add(-time.Hour), "stale",
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := cache.Prune(); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := cache.db.QueryRow(`SELECT COUNT(*) FROM weather_cache`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows after prune = %d, want 1", count)
	}
}
