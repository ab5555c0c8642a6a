// Package remote talks to the weather chat backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-chatbot/client/internal/model"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the backend routes under API_BASE_URL.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// wireMessage is a chat message as the backend expects it.
type wireMessage struct {
	ID        string     `json:"id"`
	Role      model.Role `json:"role"`
	Content   string     `json:"content"`
	Timestamp int64      `json:"timestamp"`
}

type chatRequest struct {
	Message     string                 `json:"message"`
	Location    *model.RequestLocation `json:"location"`
	Language    model.Language         `json:"language"`
	ChatHistory []wireMessage          `json:"chatHistory"`
}

// Chat asks the backend for a reply.
func (c *Client) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	history := make([]wireMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, wireMessage{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.UnixMilli(),
		})
	}
	body := chatRequest{
		Message:     req.Message,
		Location:    req.Location,
		Language:    req.Language,
		ChatHistory: history,
	}

	var resp model.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Weather returns current conditions at the coordinates.
func (c *Client) Weather(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	var w model.WeatherSnapshot
	if err := c.do(ctx, http.MethodGet, "/weather", coords(lat, lon), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// WeatherByCity returns current conditions for a city name.
func (c *Client) WeatherByCity(ctx context.Context, city string) (*model.WeatherSnapshot, error) {
	var w model.WeatherSnapshot
	if err := c.do(ctx, http.MethodGet, "/weather/city", url.Values{"q": {city}}, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	var f model.Forecast
	if err := c.do(ctx, http.MethodGet, "/weather/forecast", coords(lat, lon), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SearchLocations returns places matching query, ranked by the backend.
func (c *Client) SearchLocations(ctx context.Context, query string, limit int) ([]model.Location, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var locations []model.Location
	if err := c.do(ctx, http.MethodGet, "/location/search", params, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// ReverseGeocode resolves coordinates to a place. A place that cannot be
// resolved is reported as nil without an error.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*model.Location, error) {
	var loc *model.Location
	err := c.do(ctx, http.MethodGet, "/location/reverse", coords(lat, lon), nil, &loc)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if loc == nil || loc.Name == "" {
		return nil, nil
	}
	return loc, nil
}

// Health reports whether the backend answers.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func coords(lat, lon float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, bodyBytes)
	}
	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("could not decode response from %s: %w", path, err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: status, Message: payload.Error}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("request failed with status %d: %s", status, http.StatusText(status))}
}
