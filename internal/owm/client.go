// Package owm is the OpenWeather API client: geocoding (direct, zip,
// reverse), the one-call weather endpoint and the per-day historical summary.
package owm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/skycastapp/skycast/internal/metrics"
	"github.com/skycastapp/skycast/internal/models"
)

const DefaultBaseURL = "https://api.openweathermap.org"

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[fetchResult]
}

// New creates an OpenWeather client. Requests are not retried: a failed call
// fails the request that triggered it. A circuit breaker fails fast while the
// provider is down.
func New(apiKey string, httpClient *http.Client) *Client {
	return NewWithBaseURL(apiKey, httpClient, DefaultBaseURL)
}

func NewWithBaseURL(apiKey string, httpClient *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker[fetchResult](gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  httpClient,
		breaker: cb,
	}
}

type fetchResult struct {
	status int
	body   []byte
}

// getJSON performs a single GET and decodes the 2xx body into v. Non-2xx
// responses become UpstreamError with the provider's status and message.
// Only transport failures, 429s and 5xx responses count against the breaker.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, v any) error {
	start := time.Now()

	res, err := c.breaker.Execute(func() (fetchResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fetchResult{}, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fetchResult{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fetchResult{}, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fetchResult{}, &models.UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(body)}
		}
		return fetchResult{status: resp.StatusCode, body: body}, nil
	})

	metrics.UpstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UpstreamCallsTotal.WithLabelValues(endpoint, "circuit_open").Inc()
			return &models.UpstreamError{Status: http.StatusBadGateway, Message: "weather provider unavailable"}
		}
		var ue *models.UpstreamError
		if errors.As(err, &ue) {
			metrics.UpstreamCallsTotal.WithLabelValues(endpoint, strconv.Itoa(ue.Status)).Inc()
			return ue
		}
		// Transport errors embed the request URL, API key included. Log the
		// detail here; the client gets the generic message.
		metrics.UpstreamCallsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		log.Printf("owm: %s: %v", endpoint, err)
		return &models.UpstreamError{}
	}

	metrics.UpstreamCallsTotal.WithLabelValues(endpoint, strconv.Itoa(res.status)).Inc()

	if res.status < 200 || res.status >= 300 {
		return &models.UpstreamError{Status: res.status, Message: upstreamMessage(res.body)}
	}
	if err := json.Unmarshal(res.body, v); err != nil {
		log.Printf("owm: %s: unmarshal: %v", endpoint, err)
		return &models.UpstreamError{}
	}
	return nil
}

// upstreamMessage extracts the human-readable message from an OpenWeather
// error body like {"cod":"404","message":"city not found"}.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return ""
}
