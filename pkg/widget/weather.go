package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// WeatherClient fetches current conditions from OpenWeatherMap.
type WeatherClient struct {
	client *http.Client
	apiKey func() string
}

// Weather is the displayable summary for the weather widget.
type Weather struct {
	City        string
	Description string
	TempC       float64
}

// String renders the widget text, e.g. "Tokyo 21°C, scattered clouds".
func (w Weather) String() string {
	if w.City == "" && w.Description == "" {
		return ""
	}
	return fmt.Sprintf("%s %.0f°C, %s", w.City, w.TempC, w.Description)
}

// NewWeatherClient creates a weather client. apiKey is called per request
// so a key added through settings takes effect without a restart.
func NewWeatherClient(client *http.Client, apiKey func() string) *WeatherClient {
	return &WeatherClient{client: client, apiKey: apiKey}
}

// Current fetches the current weather for the given coordinates. An empty
// API key is reported as an error; callers treat it as "widget disabled".
func (w *WeatherClient) Current(ctx context.Context, lat, lon float64) (Weather, error) {
	key := w.apiKey()
	if key == "" {
		return Weather{}, errors.New("weather: no API key configured")
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("appid", key)
	q.Set("units", "metric")
	reqURL := OpenWeatherAPIURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Weather{}, fmt.Errorf("weather: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("weather: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}
	if readErr != nil {
		return Weather{}, fmt.Errorf("weather: %w", readErr)
	}

	var out openWeatherResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Weather{}, fmt.Errorf("weather: %w", err)
	}

	desc := ""
	if len(out.Weather) > 0 {
		desc = strings.TrimSpace(out.Weather[0].Description)
	}
	return Weather{
		City:        out.Name,
		Description: desc,
		TempC:       out.Main.Temp,
	}, nil
}

// OpenWeatherMap JSON structures

type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}
