package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/schema"
)

// DefaultWeatherBaseURL is the OpenWeatherMap API root.
const DefaultWeatherBaseURL = "https://api.openweathermap.org"

const weatherPath = "/data/2.5/weather"

// WeatherConfig configures the get_weather tool.
type WeatherConfig struct {
	// APIKey is the OpenWeatherMap API key, sent as the appid query
	// parameter.
	APIKey string

	// BaseURL overrides the API root. Tests point this at an
	// httptest.Server.
	BaseURL string

	// HTTPClient overrides the HTTP client. The request context
	// carries the execution budget, so the client needs no timeout of
	// its own.
	HTTPClient *http.Client

	// Timeout overrides the registry's default execution budget for
	// this tool.
	Timeout time.Duration
}

// WeatherInput holds the city to look up.
type WeatherInput struct {
	City string `json:"city"`
}

// WeatherOutput carries the extracted weather fields.
type WeatherOutput struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}

// owmResponse mirrors the slice of the OpenWeatherMap payload we
// depend on. Temp is a pointer so a missing field is distinguishable
// from zero degrees.
type owmResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// NewWeather returns the get_weather tool: current temperature
// (metric) and condition description for a city. All network and
// response-shape failures come back as errors for the registry to
// materialize as Failure data; nothing here ever blocks past the
// execution budget.
func NewWeather(cfg WeatherConfig) *toolagent.ToolFunc[WeatherInput, WeatherOutput] {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultWeatherBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	tool := toolagent.NewToolFunc(
		"get_weather",
		"Retrieve the current weather (temperature in Celsius and a short "+
			"condition description) for a city.",
		schema.Object(map[string]*schema.Property{
			"city": schema.String("City name, e.g. \"Chandigarh\""),
		}, "city"),
		func(ctx context.Context, input WeatherInput) (WeatherOutput, error) {
			return fetchWeather(ctx, cfg, input.City)
		},
	).WithSideEffects()

	if cfg.Timeout > 0 {
		tool = tool.WithTimeout(cfg.Timeout)
	}
	return tool
}

func fetchWeather(ctx context.Context, cfg WeatherConfig, city string) (WeatherOutput, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", cfg.APIKey)
	query.Set("units", "metric")
	endpoint := cfg.BaseURL + weatherPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return WeatherOutput{}, fmt.Errorf("%w: building request: %v", toolagent.ErrUpstreamFailure, err)
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		// Context expiry surfaces as-is so the registry can classify
		// it as a timeout rather than an upstream fault.
		if ctx.Err() != nil {
			return WeatherOutput{}, ctx.Err()
		}
		return WeatherOutput{}, fmt.Errorf("%w: %v", toolagent.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WeatherOutput{}, fmt.Errorf("%w: weather API returned %s", toolagent.ErrUpstreamFailure, resp.Status)
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return WeatherOutput{}, fmt.Errorf("%w: decoding response: %v", toolagent.ErrUpstreamFailure, err)
	}

	if payload.Main.Temp == nil || len(payload.Weather) == 0 {
		return WeatherOutput{}, fmt.Errorf("%w: response missing expected fields", toolagent.ErrUpstreamFailure)
	}

	return WeatherOutput{
		Temperature: *payload.Main.Temp,
		Condition:   payload.Weather[0].Description,
	}, nil
}
