// Package weather wraps the OpenWeather current and hourly-forecast endpoints
// behind a client that returns normalized observations.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iwsanren/comp47360-team9/config"
	"github.com/iwsanren/comp47360-team9/models"
)

// ErrUnavailable is returned when the provider is unreachable or answers with
// a non-200 status. The request must surface this as a server error, not
// substitute a default observation.
var ErrUnavailable = errors.New("weather provider unavailable")

// ErrNoForecastEntry is returned when a requested timestamp has no exact
// match in the forecast list.
var ErrNoForecastEntry = errors.New("no weather data for specified time")

type Client struct {
	baseURL string
	apiKey  string
	lat     float64
	lon     float64
	http    *http.Client
}

func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		lat:     cfg.Lat,
		lon:     cfg.Lon,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

type conditions struct {
	Main string `json:"main"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type currentResponse struct {
	Weather []conditions `json:"weather"`
	Main    mainBlock    `json:"main"`
	Wind    windBlock    `json:"wind"`
}

type forecastEntry struct {
	Dt      int64        `json:"dt"`
	Weather []conditions `json:"weather"`
	Main    mainBlock    `json:"main"`
	Wind    windBlock    `json:"wind"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

// Current fetches the live observation for the configured coordinates.
func (c *Client) Current(ctx context.Context) (models.WeatherObservation, error) {
	var resp currentResponse
	if err := c.get(ctx, "/weather", nil, &resp); err != nil {
		return models.WeatherObservation{}, err
	}
	return toObservation(resp.Weather, resp.Main, resp.Wind), nil
}

// At fetches the forecast observation whose entry timestamp equals ts
// exactly. A missing entry is a client error (ErrNoForecastEntry), not a
// provider failure.
func (c *Client) At(ctx context.Context, ts int64) (models.WeatherObservation, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", map[string]string{"cnt": "96"}, &resp); err != nil {
		return models.WeatherObservation{}, err
	}
	for _, entry := range resp.List {
		if entry.Dt == ts {
			return toObservation(entry.Weather, entry.Main, entry.Wind), nil
		}
	}
	return models.WeatherObservation{}, ErrNoForecastEntry
}

func (c *Client) get(ctx context.Context, path string, extra map[string]string, dest any) error {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.lat, 'f', 2, 64))
	q.Set("lon", strconv.FormatFloat(c.lon, 'f', 2, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	for k, v := range extra {
		q.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}

func toObservation(w []conditions, m mainBlock, wind windBlock) models.WeatherObservation {
	obs := models.WeatherObservation{
		Temp:      m.Temp,
		FeelsLike: m.FeelsLike,
		Humidity:  m.Humidity,
		WindSpeed: wind.Speed,
	}
	if len(w) > 0 {
		obs.Condition = w[0].Main
	}
	return obs
}
