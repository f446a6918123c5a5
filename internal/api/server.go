// Package api exposes the HTTP surface: the weather lookup endpoint, the
// chat endpoint, health and metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skycastapp/skycast/internal/chat"
	"github.com/skycastapp/skycast/internal/models"
)

// WeatherService is the lookup pipeline behind GET /api/weather.
type WeatherService interface {
	ByCity(ctx context.Context, city string) (*models.WeatherResponse, error)
	ByZip(ctx context.Context, zip string) (*models.WeatherResponse, error)
	ByCoords(ctx context.Context, lat, lon float64) (*models.WeatherResponse, error)
}

// ChatService is the conversational layer behind POST /api/chat.
type ChatService interface {
	IsWeatherRelated(ctx context.Context, input string) (bool, error)
	Default(ctx context.Context, msg chat.Message) (*chat.Reply, error)
	Historian(ctx context.Context, msg chat.Message) (*chat.Reply, error)
}

type Server struct {
	weather WeatherService
	chat    ChatService
	port    string

	weatherLimit *limitGroup
	chatLimit    *limitGroup
}

// NewServer wires the HTTP surface. chatSvc may be nil when no language-model
// API key is configured; the chat endpoint then answers 503.
func NewServer(weatherSvc WeatherService, chatSvc ChatService, port string) *Server {
	return &Server{
		weather:      weatherSvc,
		chat:         chatSvc,
		port:         port,
		weatherLimit: newLimitGroup("weather", 30, 10*time.Minute, "Too many weather requests. Please try again later."),
		chatLimit:    newLimitGroup("chat", 20, time.Minute, "Too many chat requests. Please slow down."),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/weather", s.weatherLimit.wrap(s.handleWeather))
	mux.HandleFunc("/api/chat", s.chatLimit.wrap(s.handleChat))
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"chatEnabled": s.chat != nil,
	})
}
