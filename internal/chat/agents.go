package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skycastapp/skycast/internal/models"
)

// Flavor selects the agent behavior for a chat turn.
const (
	FlavorDefault   = "default"
	FlavorHistorian = "historian"
)

const (
	toolGetCityWeather    = "get_city_weather"
	toolGetHistoryWeather = "get_history_weather"
)

// WeatherSource is the slice of the weather pipeline the agents' tools need.
type WeatherSource interface {
	ByCity(ctx context.Context, city string) (*models.WeatherResponse, error)
	History(ctx context.Context, city, date string) (*models.HistoryWeather, error)
}

type Service struct {
	llm     Client
	weather WeatherSource
}

func NewService(llm Client, weather WeatherSource) *Service {
	return &Service{llm: llm, weather: weather}
}

// Message is one inbound chat turn. WeatherData, FutureWeatherData and City
// are the caller-supplied context for the default agent's first turn; they
// are ignored once PreviousResponseID carries the thread.
type Message struct {
	Input              string          `json:"input" validate:"required"`
	PreviousResponseID string          `json:"previousResponseId,omitempty"`
	WeatherData        json.RawMessage `json:"weatherData,omitempty"`
	FutureWeatherData  json.RawMessage `json:"futureWeatherData,omitempty"`
	City               string          `json:"city,omitempty"`
}

// Reply is the finished chat turn handed back to the client, which is
// responsible for replaying LastResponseID on the next turn.
type Reply struct {
	Result         string `json:"result"`
	LastResponseID string `json:"lastResponseId"`
}

var cityWeatherTool = ToolDef{
	Name:        toolGetCityWeather,
	Description: "Get the current weather and forecast for a city.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
		},
		"required":             []string{"city"},
		"additionalProperties": false,
	},
}

var historyWeatherTool = ToolDef{
	Name:        toolGetHistoryWeather,
	Description: "Get the weather summary for a city on a specific date.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
			"date": map[string]any{
				"type":        "string",
				"description": "Date in format YYYY-MM-DD",
			},
		},
		"required":             []string{"city", "date"},
		"additionalProperties": false,
	},
}

// Default answers from the caller-supplied current/forecast context. When the
// model instead calls the city-weather tool, the agent runs the CITY pipeline
// for the requested city and feeds the result back for a finalizing call.
func (s *Service) Default(ctx context.Context, msg Message) (*Reply, error) {
	input := msg.Input
	if msg.PreviousResponseID == "" {
		input = fmt.Sprintf(
			"Here is the current weather data: %s\nHere is the daily forecast data: %s\nCity: %s\nUser question: %s",
			rawOrEmpty(msg.WeatherData), rawOrEmpty(msg.FutureWeatherData), msg.City, msg.Input,
		)
	}

	turn, err := s.llm.Respond(ctx, Request{
		Input:              input,
		Instructions:       defaultAgentPrompt,
		PreviousResponseID: msg.PreviousResponseID,
		Store:              true,
		Tools:              []ToolDef{cityWeatherTool},
	})
	if err != nil {
		return nil, err
	}
	if turn.Kind != TurnToolCall {
		return &Reply{Result: turn.Text, LastResponseID: turn.ResponseID}, nil
	}

	if turn.ToolName != toolGetCityWeather {
		return nil, &models.ToolError{Msg: fmt.Sprintf("model requested unknown tool %q", turn.ToolName)}
	}
	var args struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal([]byte(turn.ToolArgs), &args); err != nil {
		return nil, &models.ToolError{Msg: fmt.Sprintf("malformed %s arguments: %v", turn.ToolName, err)}
	}

	data, err := s.weather.ByCity(ctx, args.City)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	final, err := s.llm.Respond(ctx, Request{
		Instructions:       defaultAgentPrompt,
		PreviousResponseID: turn.ResponseID,
		Store:              true,
		ToolOutput:         &ToolOutput{CallID: turn.ToolCallID, Output: string(payload)},
	})
	if err != nil {
		return nil, err
	}
	return &Reply{Result: final.Text, LastResponseID: final.ResponseID}, nil
}

// Historian always offers the history tool and lets the model decide when to
// invoke it. Tool failures (date floor, malformed date, upstream errors)
// propagate as chat failures rather than being softened into model prose.
// When the model answers directly, e.g. to a greeting, that text is returned
// unchanged.
func (s *Service) Historian(ctx context.Context, msg Message) (*Reply, error) {
	turn, err := s.llm.Respond(ctx, Request{
		Input:              msg.Input,
		Instructions:       historianAgentPrompt,
		PreviousResponseID: msg.PreviousResponseID,
		Store:              true,
		Tools:              []ToolDef{historyWeatherTool},
	})
	if err != nil {
		return nil, err
	}
	if turn.Kind != TurnToolCall {
		return &Reply{Result: turn.Text, LastResponseID: turn.ResponseID}, nil
	}

	if turn.ToolName != toolGetHistoryWeather {
		return nil, &models.ToolError{Msg: fmt.Sprintf("model requested unknown tool %q", turn.ToolName)}
	}
	var args struct {
		City string `json:"city"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(turn.ToolArgs), &args); err != nil {
		return nil, &models.ToolError{Msg: fmt.Sprintf("malformed %s arguments: %v", turn.ToolName, err)}
	}

	data, err := s.weather.History(ctx, args.City, args.Date)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	final, err := s.llm.Respond(ctx, Request{
		Instructions:       historianAgentPrompt,
		PreviousResponseID: turn.ResponseID,
		Store:              true,
		ToolOutput:         &ToolOutput{CallID: turn.ToolCallID, Output: string(payload)},
	})
	if err != nil {
		return nil, err
	}
	return &Reply{Result: final.Text, LastResponseID: final.ResponseID}, nil
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}
