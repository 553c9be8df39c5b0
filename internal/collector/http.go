package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"RegimeBoard/internal/model"
)

// HTTPFetcher implements Fetcher against the dataset API. It never retries.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates a fetcher with optional proxy support. A zero timeout means requests
// run until the server answers or ctx is done.
func NewHTTPFetcher(baseURL, proxyURL string, timeout time.Duration) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) FetchRawSeries(ctx context.Context) (model.RawSeries, error) {
	var series model.RawSeries
	if err := f.getJSON(ctx, model.PriceDataPath, &series); err != nil {
		return nil, fmt.Errorf("fetch price data: %w", err)
	}
	return series, nil
}

// changePointsResponse is the body of both change-point endpoints.
type changePointsResponse struct {
	ChangePoints []int `json:"change_points"`
}

func (f *HTTPFetcher) FetchChangePoints(ctx context.Context, provider model.Provider) ([]int, error) {
	var resp changePointsResponse
	if err := f.getJSON(ctx, model.ChangePointsPath(provider), &resp); err != nil {
		return nil, fmt.Errorf("fetch %s change points: %w", provider, err)
	}
	return resp.ChangePoints, nil
}

func (f *HTTPFetcher) FetchEvents(ctx context.Context) ([]model.KeyEvent, error) {
	var events []model.KeyEvent
	if err := f.getJSON(ctx, model.EventsPath, &events); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return events, nil
}

func (f *HTTPFetcher) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
