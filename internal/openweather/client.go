// Package openweather fetches current and forecast air-pollution samples
// from the OpenWeather API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org"

	// ForecastSamples caps the forecast series returned to callers.
	ForecastSamples = 8
)

// ErrInvalidPayload marks an upstream response that failed validation.
var ErrInvalidPayload = errors.New("invalid air pollution payload")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return "unexpected status " + e.Status
}

// Source provides air-pollution observations for a location.
type Source interface {
	Current(ctx context.Context, at Coordinates) (Observation, error)
	Forecast(ctx context.Context, at Coordinates) ([]Observation, error)
}

// Client talks to the OpenWeather air-pollution endpoints.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient builds a client. An empty baseURL selects DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Current retrieves the latest observation for a location.
func (c *Client) Current(ctx context.Context, at Coordinates) (Observation, error) {
	payload, err := c.fetch(ctx, "/data/2.5/air_pollution", at)
	if err != nil {
		return Observation{}, err
	}
	return payload.List[0].observation()
}

// Forecast retrieves up to ForecastSamples upcoming observations.
func (c *Client) Forecast(ctx context.Context, at Coordinates) ([]Observation, error) {
	payload, err := c.fetch(ctx, "/data/2.5/air_pollution/forecast", at)
	if err != nil {
		return nil, err
	}

	n := min(len(payload.List), ForecastSamples)
	out := make([]Observation, 0, n)
	for _, e := range payload.List[:n] {
		obs, err := e.observation()
		if err != nil {
			return nil, err
		}
		out = append(out, obs)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, path string, at Coordinates) (pollutionResponse, error) {
	if err := at.Validate(); err != nil {
		return pollutionResponse{}, err
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return pollutionResponse{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pollutionResponse{}, fmt.Errorf("request air pollution: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pollutionResponse{}, &StatusError{Status: resp.Status, Code: resp.StatusCode}
	}

	var payload pollutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return pollutionResponse{}, fmt.Errorf("decode payload: %w", err)
	}
	if len(payload.List) == 0 {
		return pollutionResponse{}, fmt.Errorf("%w: empty list", ErrInvalidPayload)
	}
	return payload, nil
}
