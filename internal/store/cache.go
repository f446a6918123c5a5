// Package store is the sqlite-backed response cache used by the terminal
// client. The server itself keeps no state; this cache lives with the client,
// keyed by normalized location with a fixed expiry window.
package store

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/skycastapp/skycast/internal/models"
)

type Cache struct {
	db     *sql.DB
	maxAge time.Duration
}

func New(db *sql.DB, maxAge time.Duration) *Cache {
	return &Cache{db: db, maxAge: maxAge}
}

// Key normalizes a location string into the cache key: lower-cased,
// whitespace-trimmed, inner spaces collapsed.
func Key(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}

// Get returns the cached response for the location, or nil when there is no
// entry younger than the expiry window.
func (c *Cache) Get(location string) (*models.WeatherResponse, error) {
	row := c.db.QueryRow(`
		SELECT payload, fetched_at FROM weather_cache WHERE location = ?
	`, Key(location))

	var payload string
	var fetchedAt time.Time
	err := row.Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Since(fetchedAt) > c.maxAge {
		return nil, nil
	}

	var resp models.WeatherResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Put stores a successful response for the location, replacing any previous
// entry.
func (c *Cache) Put(location string, resp *models.WeatherResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`
		INSERT INTO weather_cache (location, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, Key(location), string(payload), time.Now().UTC())
	return err
}

// Prune removes entries older than the expiry window.
func (c *Cache) Prune() error {
	_, err := c.db.Exec(`DELETE FROM weather_cache WHERE fetched_at < ?`, time.Now().UTC().Add(-c.maxAge))
	return err
}
