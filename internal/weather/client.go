package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrUnauthorized is returned when the weather API rejects the configured key.
	ErrUnauthorized = errors.New("weather api key rejected")

	// ErrNoReading is returned when the API response carries no usable temperature.
	ErrNoReading = errors.New("weather response has no temperature reading")
)

// Client fetches the current temperature for a city from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates an OpenWeatherMap client with retry and circuit-breaker
// resilience on outbound calls.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// CurrentTemperature fetches the current temperature in °C for a city.
// A 401/cod=401 response maps to ErrUnauthorized; a response without a
// main.temp field maps to ErrNoReading.
func (c *Client) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// OpenWeather reports errors in the body with a `cod` field; cod is a
	// number on success and sometimes a string on errors, so decode it loosely.
	var payload struct {
		Cod  json.RawMessage `json:"cod"`
		Main *struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode weather response: %w", err)
	}

	cod := strings.Trim(string(payload.Cod), `"`)
	if cod == "401" || resp.StatusCode == http.StatusUnauthorized {
		return 0, ErrUnauthorized
	}
	if payload.Main == nil {
		return 0, ErrNoReading
	}

	return payload.Main.Temp, nil
}
