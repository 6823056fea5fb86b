// Package transport is the HTTP client for the O3as API. It is the
// only package that makes network calls.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/o3as/o3plot/cache"
	"github.com/o3as/o3plot/common"
	"github.com/o3as/o3plot/model"
	"github.com/o3as/o3plot/utils"
)

const DefaultBaseURL = "https://api.o3as.fedcloud.eu/api/v1"

type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client implements cache.Transport against the O3as API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client:  cfg.Client,
	}
}

// Models lists all model ids the API knows.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var models []string
	if err := c.getJSON(ctx, c.baseURL+"/models", &models); err != nil {
		return nil, err
	}
	return models, nil
}

// PlotTypes lists the plot ids the API offers.
func (c *Client) PlotTypes(ctx context.Context) ([]string, error) {
	var plotTypes []string
	if err := c.getJSON(ctx, c.baseURL+"/plots", &plotTypes); err != nil {
		return nil, err
	}
	return plotTypes, nil
}

// PlotData fetches the raw data for the requested models. The model
// list goes in the body, everything else in the query string.
func (c *Client) PlotData(ctx context.Context, req cache.PlotDataRequest) ([]model.RawDatum, error) {
	logger := utils.GetLogger(ctx)

	query := url.Values{}
	query.Set("lat_min", strconv.Itoa(req.LatMin))
	query.Set("lat_max", strconv.Itoa(req.LatMax))
	for _, month := range req.Months {
		query.Add("month", strconv.Itoa(month))
	}
	query.Set("begin", strconv.Itoa(req.StartYear))
	query.Set("end", strconv.Itoa(req.EndYear))
	query.Set("ref_meas", req.RefModel)
	query.Set("ref_year", strconv.Itoa(req.RefYear))

	endpoint := fmt.Sprintf("%s/plots/%s?%s", c.baseURL, req.PlotID, query.Encode())

	body, err := json.Marshal(req.Models)
	if err != nil {
		return nil, fmt.Errorf("encode model list: %w", err)
	}

	logger.Info("requesting plot data",
		zap.String("plotId", string(req.PlotID)), zap.Int("modelCount", len(req.Models)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plot data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var data []model.RawDatum
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode plot data: %w", err)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request %v: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError extracts the API's structured message when the body
// carries one, falling back to the raw body text.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var structured struct {
		Message string `json:"message"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &structured); err == nil && structured.Message != "" {
		message = structured.Message
	}

	return &common.APIError{StatusCode: resp.StatusCode, Message: message}
}
