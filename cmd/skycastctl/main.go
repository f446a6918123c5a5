// skycastctl is a terminal client for the skycast server: weather lookups
// with a local cache, and an interactive chat with the two assistants.
package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/skycastapp/skycast/internal/chat"
	"github.com/skycastapp/skycast/internal/httputil"
	"github.com/skycastapp/skycast/internal/models"
	"github.com/skycastapp/skycast/internal/store"
)

// cacheMaxAge matches the expiry window the web client uses for its own
// per-location cache.
const cacheMaxAge = 10 * time.Minute

type appContext struct {
	baseURL string
	client  *http.Client
	cache   *store.Cache
	fresh   bool
}

var cli struct {
	Server  string `env:"SKYCAST_SERVER" default:"http://localhost:8080" help:"Base URL of the skycast server."`
	CacheDB string `env:"SKYCAST_CACHE_DB" default:"skycastctl.db" help:"Path to the local response cache."`
	Fresh   bool   `help:"Bypass the local cache for this invocation."`

	City   CityCmd   `cmd:"" help:"Look up weather by city name."`
	Zip    ZipCmd    `cmd:"" help:"Look up weather by postal code (zip,countryCode)."`
	Coords CoordsCmd `cmd:"" help:"Look up weather by coordinates."`
	Chat   ChatCmd   `cmd:"" help:"Chat with the weather assistants."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("skycastctl"),
		kong.Description("Terminal client for the skycast weather service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.CacheDB)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}
	defer db.Close()

	cache := store.New(db, cacheMaxAge)
	if err := cache.Migrate(); err != nil {
		log.Fatalf("migrate cache: %v", err)
	}

	app := &appContext{
		baseURL: strings.TrimRight(cli.Server, "/"),
		client:  httputil.NewClient(),
		cache:   cache,
		fresh:   cli.Fresh,
	}
	kctx.FatalIfErrorf(kctx.Run(app))
}

type CityCmd struct {
	Name string `arg:"" help:"City name."`
}

func (c *CityCmd) Run(app *appContext) error {
	resp, err := app.lookup(c.Name, url.Values{"type": {"CITY"}, "city": {c.Name}})
	if err != nil {
		return err
	}
	printWeather(resp)
	return nil
}

type ZipCmd struct {
	Code string `arg:"" help:"Postal code with country, e.g. 90210,US."`
}

func (z *ZipCmd) Run(app *appContext) error {
	resp, err := app.lookup(z.Code, url.Values{"type": {"ZIP"}, "zip": {z.Code}})
	if err != nil {
		return err
	}
	printWeather(resp)
	return nil
}

type CoordsCmd struct {
	Lat float64 `arg:"" help:"Latitude."`
	Lon float64 `arg:"" help:"Longitude."`
}

func (c *CoordsCmd) Run(app *appContext) error {
	key := fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
	resp, err := app.lookup(key, url.Values{
		"type": {"COORD"},
		"lat":  {fmt.Sprintf("%f", c.Lat)},
		"lon":  {fmt.Sprintf("%f", c.Lon)},
	})
	if err != nil {
		return err
	}
	printWeather(resp)
	return nil
}

// lookup fetches a WeatherResponse through the cache. Successful fetches are
// cached under the normalized location key.
func (app *appContext) lookup(location string, params url.Values) (*models.WeatherResponse, error) {
	if !app.fresh {
		if cached, err := app.cache.Get(location); err != nil {
			log.Printf("cache read: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	httpResp, err := app.client.Get(app.baseURL + "/api/weather?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, serverError(httpResp.StatusCode, body)
	}

	var resp models.WeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if err := app.cache.Put(location, &resp); err != nil {
		log.Printf("cache write: %v", err)
	}
	return &resp, nil
}

func serverError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server: %s", payload.Error)
	}
	return fmt.Errorf("server: status %d", status)
}

func printWeather(resp *models.WeatherResponse) {
	place := "unknown location"
	if resp.City != nil {
		place = *resp.City
		if resp.Country != nil {
			place += ", " + *resp.Country
		}
	}
	cw := resp.CurrentWeather
	fmt.Printf("%s: %.1f°C (feels like %.1f°C), %s\n", place, cw.Temp, cw.FeelsLike, cw.Description)
	fmt.Printf("humidity %d%%  wind %.1f m/s  uv %.1f\n", cw.Humidity, cw.WindSpeed, cw.UVI)

	for _, alert := range resp.WeatherAlerts {
		fmt.Printf("ALERT [%s] %s\n", alert.SenderName, alert.Event)
	}

	for i, day := range resp.DailyForecast {
		if i >= 5 {
			break
		}
		date := time.Unix(day.Dt, 0).Format("Mon Jan 2")
		fmt.Printf("%s  %5.1f / %5.1f °C  %s  rain %.0f%%\n", date, day.TempMin, day.TempMax, day.Description, day.Pop*100)
	}
}

type ChatCmd struct {
	Flavor string `default:"default" enum:"default,historian" help:"Assistant flavor to start with."`
	City   string `help:"City whose weather seeds the default assistant's context."`
}

// Run starts a REPL. Each flavor keeps its own conversation thread; switching
// flavors mid-session leaves the other thread's handle intact.
func (c *ChatCmd) Run(app *appContext) error {
	memory := chat.NewMemory()
	flavor := c.Flavor

	var msg chat.Message
	if c.City != "" {
		resp, err := app.lookup(c.City, url.Values{"type": {"CITY"}, "city": {c.City}})
		if err != nil {
			return err
		}
		current, _ := json.Marshal(resp.CurrentWeather)
		daily, _ := json.Marshal(resp.DailyForecast)
		msg.WeatherData = current
		msg.FutureWeatherData = daily
		msg.City = c.City
	}

	fmt.Printf("chatting with the %s assistant (/flavor, /reset, /quit)\n", flavor)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/reset":
			memory.Reset(flavor)
			fmt.Printf("%s thread reset\n", flavor)
			continue
		case strings.HasPrefix(line, "/flavor"):
			next := strings.TrimSpace(strings.TrimPrefix(line, "/flavor"))
			if next != chat.FlavorDefault && next != chat.FlavorHistorian {
				fmt.Println("usage: /flavor default|historian")
				continue
			}
			flavor = next
			fmt.Printf("switched to the %s assistant\n", flavor)
			continue
		}

		msg.Input = line
		msg.PreviousResponseID = memory.ResponseID(flavor)
		reply, err := app.sendChat(flavor, msg)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		memory.Advance(flavor, line, reply.Result, reply.LastResponseID)
		fmt.Println(reply.Result)
	}
}

func (app *appContext) sendChat(flavor string, msg chat.Message) (*chat.Reply, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	httpResp, err := app.client.Post(
		app.baseURL+"/api/chat?tag="+url.QueryEscape(flavor),
		"application/json",
		strings.NewReader(string(payload)),
	)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, serverError(httpResp.StatusCode, body)
	}

	var reply chat.Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
