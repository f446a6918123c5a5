package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/skycastapp/skycast/internal/api"
	"github.com/skycastapp/skycast/internal/chat"
	"github.com/skycastapp/skycast/internal/httputil"
	"github.com/skycastapp/skycast/internal/owm"
	"github.com/skycastapp/skycast/internal/weather"
)

var cli struct {
	Port              string `env:"PORT" default:"8080" help:"HTTP listen port."`
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY" required:"" help:"OpenWeather API key."`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY" help:"OpenAI API key. Chat is disabled when unset."`
	OpenAIModel       string `env:"OPENAI_MODEL" default:"gpt-4o-mini" help:"Model backing the chat agents."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("skycast"),
		kong.Description("Weather lookup and chat service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	client := owm.New(cli.OpenWeatherAPIKey, httputil.NewClient())
	weatherSvc := weather.NewService(client, client)

	var chatSvc api.ChatService
	if cli.OpenAIAPIKey != "" {
		llm := chat.NewOpenAIClient(cli.OpenAIAPIKey, cli.OpenAIModel)
		chatSvc = chat.NewService(llm, weatherSvc)
	} else {
		log.Println("chat disabled: OPENAI_API_KEY not set")
	}

	server := api.NewServer(weatherSvc, chatSvc, cli.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
