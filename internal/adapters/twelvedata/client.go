package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fxpulse/internal/adapters/quoteparse"
	"fxpulse/internal/domain"
)

const DefaultBaseURL = "https://api.twelvedata.com"

// Client fetches both symbols with a single batch /price request.
type Client struct {
	http            *http.Client
	baseURL         string
	apiKey          string
	primarySymbol   string
	secondarySymbol string
}

// priceEntry is both the per-symbol payload and the top-level error payload.
type priceEntry struct {
	Price   string `json:"price"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e priceEntry) failed() bool { return e.Status == "error" }

func (c *Client) Name() string { return "twelvedata" }

func (c *Client) Fetch(ctx context.Context) (domain.Quotes, error) {
	body, err := c.batchPrice(ctx)
	if err != nil {
		return domain.Quotes{}, err
	}

	primary, err := c.extract(body, c.primarySymbol)
	if err != nil {
		return domain.Quotes{}, err
	}
	secondary, err := c.extract(body, c.secondarySymbol)
	if err != nil {
		return domain.Quotes{}, err
	}
	return domain.Quotes{Primary: primary, Secondary: secondary, FetchedAt: time.Now().UTC()}, nil
}

func (c *Client) batchPrice(ctx context.Context) (map[string]json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %v: %w", err, domain.ErrNoData)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/price"
	u.RawQuery = url.Values{
		"symbol": {c.primarySymbol + "," + c.secondarySymbol},
		"apikey": {c.apiKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v: %w", err, domain.ErrNoData)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v: %w", quoteparse.RedactURLError(err), domain.ErrNoData)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, domain.ErrNoData)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v: %w", err, domain.ErrNoData)
	}

	// a failed batch comes back as a single error object instead of per-symbol entries
	var top priceEntry
	if err = json.Unmarshal(data, &top); err == nil && top.failed() {
		return nil, fmt.Errorf("twelve data api error %d: %s: %w", top.Code, top.Message, domain.ErrNoData)
	}

	var body map[string]json.RawMessage
	if err = json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v: %w", err, domain.ErrNoData)
	}
	return body, nil
}

func (c *Client) extract(body map[string]json.RawMessage, symbol string) (float64, error) {
	raw, ok := body[symbol]
	if !ok {
		return 0, fmt.Errorf("symbol %s missing from response: %w", symbol, domain.ErrNoData)
	}
	var entry priceEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return 0, fmt.Errorf("symbol %s has unexpected shape: %v: %w", symbol, err, domain.ErrNoData)
	}
	if entry.failed() {
		return 0, fmt.Errorf("twelve data api error for %s %d: %s: %w", symbol, entry.Code, entry.Message, domain.ErrNoData)
	}
	v, err := quoteparse.Price(entry.Price)
	if err != nil {
		return 0, fmt.Errorf("%s field %q: %w", symbol, "price", err)
	}
	return v, nil
}

func NewClient(httpClient *http.Client, baseURL, apiKey, primarySymbol, fromCurrency, toCurrency string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:            httpClient,
		baseURL:         baseURL,
		apiKey:          apiKey,
		primarySymbol:   primarySymbol,
		secondarySymbol: fromCurrency + "/" + toCurrency,
	}
}
