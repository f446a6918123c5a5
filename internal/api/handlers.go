package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/skycastapp/skycast/internal/chat"
	"github.com/skycastapp/skycast/internal/metrics"
	"github.com/skycastapp/skycast/internal/models"
)

const maxChatBodySize = 1 << 20

var validate = validator.New()

// handleWeather dispatches a lookup by retrieval mode. Parameter checks
// happen here, before any external call.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	ctx := r.Context()

	var resp *models.WeatherResponse
	var err error

	switch models.RetrievalMode(q.Get("type")) {
	case models.ModeCity:
		if q.Get("city") == "" {
			writeError(w, &models.ValidationError{Msg: "City is required"})
			return
		}
		resp, err = s.weather.ByCity(ctx, q.Get("city"))

	case models.ModeZip:
		if q.Get("zip") == "" {
			writeError(w, &models.ValidationError{Msg: "Zip code is required"})
			return
		}
		resp, err = s.weather.ByZip(ctx, q.Get("zip"))

	case models.ModeCoord:
		latStr, lonStr := q.Get("lat"), q.Get("lon")
		if latStr == "" || lonStr == "" {
			writeError(w, &models.ValidationError{Msg: "Coordinates are required"})
			return
		}
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			writeError(w, &models.ValidationError{Msg: "Coordinates must be numeric"})
			return
		}
		resp, err = s.weather.ByCoords(ctx, lat, lon)

	default:
		writeError(w, &models.ValidationError{Msg: "Invalid retrieval method type. Use CITY, COORD, or ZIP."})
		return
	}

	if err != nil {
		log.Printf("api: weather lookup: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleChat runs the guardrail and dispatches to the tagged agent flavor.
// A rejected input does not advance the conversation: no response id is
// issued. An unrecognized tag is answered with 400 rather than silence.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.chat == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Chat is not configured"})
		return
	}

	var msg chat.Message
	body := http.MaxBytesReader(w, r.Body, maxChatBodySize)
	if err := json.NewDecoder(body).Decode(&msg); err != nil {
		writeError(w, &models.ValidationError{Msg: "Invalid request body"})
		return
	}
	if err := validate.Struct(msg); err != nil {
		writeError(w, &models.ValidationError{Msg: "Input is required."})
		return
	}

	// The tag is checked before the guardrail so a bad tag costs no model call.
	flavor := r.URL.Query().Get("tag")
	switch flavor {
	case "":
		flavor = chat.FlavorDefault
	case chat.FlavorDefault, chat.FlavorHistorian:
	default:
		writeError(w, &models.ValidationError{Msg: "Unknown chat tag. Use 'default' or 'historian'."})
		return
	}

	ctx := r.Context()

	related, err := s.chat.IsWeatherRelated(ctx, msg.Input)
	if err != nil {
		log.Printf("api: guardrail: %v", err)
		writeError(w, err)
		return
	}
	if !related {
		metrics.GuardrailRejectionsTotal.Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Input rejected. Please ask weather-related questions."})
		return
	}

	var reply *chat.Reply
	switch flavor {
	case chat.FlavorDefault:
		reply, err = s.chat.Default(ctx, msg)
	case chat.FlavorHistorian:
		reply, err = s.chat.Historian(ctx, msg)
	}

	if err != nil {
		metrics.ChatTurnsTotal.WithLabelValues(flavor, "error").Inc()
		log.Printf("api: chat %s: %v", flavor, err)
		writeError(w, err)
		return
	}
	metrics.ChatTurnsTotal.WithLabelValues(flavor, "ok").Inc()
	writeJSON(w, http.StatusOK, reply)
}
