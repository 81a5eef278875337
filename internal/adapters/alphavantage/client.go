package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fxpulse/internal/adapters/quoteparse"
	"fxpulse/internal/domain"
)

const DefaultBaseURL = "https://www.alphavantage.co"

// Client fetches the dollar-strength proxy through GLOBAL_QUOTE and the
// exchange rate through CURRENCY_EXCHANGE_RATE, one request each.
type Client struct {
	http          *http.Client
	baseURL       string
	apiKey        string
	primarySymbol string
	fromCurrency  string
	toCurrency    string
}

// envelope carries the fields Alpha Vantage uses to report throttling and errors
// with a 200 status.
type envelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (e envelope) problem() string {
	switch {
	case e.ErrorMessage != "":
		return "error message: " + e.ErrorMessage
	case e.Note != "":
		return "note: " + e.Note
	case e.Information != "":
		return "information: " + e.Information
	}
	return ""
}

type globalQuoteResponse struct {
	envelope
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

type exchangeRateResponse struct {
	envelope
	Rate struct {
		From         string `json:"1. From_Currency Code"`
		To           string `json:"3. To_Currency Code"`
		ExchangeRate string `json:"5. Exchange Rate"`
	} `json:"Realtime Currency Exchange Rate"`
}

func (c *Client) Name() string { return "alphavantage" }

// Fetch returns both prices or an error wrapping domain.ErrNoData. Partial results are never returned.
func (c *Client) Fetch(ctx context.Context) (domain.Quotes, error) {
	var gq globalQuoteResponse
	if err := c.query(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {c.primarySymbol}}, &gq); err != nil {
		return domain.Quotes{}, fmt.Errorf("%s quote: %w", c.primarySymbol, err)
	}
	if p := gq.problem(); p != "" {
		return domain.Quotes{}, fmt.Errorf("alpha vantage api error (%s) %s: %w", c.primarySymbol, p, domain.ErrNoData)
	}
	primary, err := quoteparse.Price(gq.GlobalQuote.Price)
	if err != nil {
		return domain.Quotes{}, fmt.Errorf("%s field %q: %w", c.primarySymbol, "05. price", err)
	}

	var xr exchangeRateResponse
	pair := c.fromCurrency + c.toCurrency
	if err = c.query(ctx, url.Values{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {c.fromCurrency},
		"to_currency":   {c.toCurrency},
	}, &xr); err != nil {
		return domain.Quotes{}, fmt.Errorf("%s rate: %w", pair, err)
	}
	if p := xr.problem(); p != "" {
		return domain.Quotes{}, fmt.Errorf("alpha vantage api error (%s) %s: %w", pair, p, domain.ErrNoData)
	}
	secondary, err := quoteparse.Price(xr.Rate.ExchangeRate)
	if err != nil {
		return domain.Quotes{}, fmt.Errorf("%s field %q: %w", pair, "5. Exchange Rate", err)
	}

	return domain.Quotes{Primary: primary, Secondary: secondary, FetchedAt: time.Now().UTC()}, nil
}

func (c *Client) query(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %v: %w", err, domain.ErrNoData)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/query"
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v: %w", err, domain.ErrNoData)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// the URL carries the api key, keep it out of logs
		return fmt.Errorf("failed to execute request: %v: %w", quoteparse.RedactURLError(err), domain.ErrNoData)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, domain.ErrNoData)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v: %w", err, domain.ErrNoData)
	}
	return nil
}

func NewClient(httpClient *http.Client, baseURL, apiKey, primarySymbol, fromCurrency, toCurrency string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:          httpClient,
		baseURL:       baseURL,
		apiKey:        apiKey,
		primarySymbol: primarySymbol,
		fromCurrency:  fromCurrency,
		toCurrency:    toCurrency,
	}
}
