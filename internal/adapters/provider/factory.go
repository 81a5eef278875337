package provider

import (
	"fmt"
	"net/http"

	"fxpulse/internal/adapters"
	"fxpulse/internal/adapters/alphavantage"
	"fxpulse/internal/adapters/twelvedata"
	"fxpulse/internal/config"
)

// NewFromConfig builds the quote fetcher selected by provider.type.
func NewFromConfig(pc config.Provider, httpClient *http.Client) (adapters.QuoteFetcher, error) {
	apiKey, _ := pc.APIKey()
	switch pc.Type {
	case config.ProviderAlphaVantage:
		return alphavantage.NewClient(httpClient, pc.BaseURL, apiKey, pc.PrimarySymbol, pc.SecondaryFrom, pc.SecondaryTo), nil
	case config.ProviderTwelveData:
		return twelvedata.NewClient(httpClient, pc.BaseURL, apiKey, pc.PrimarySymbol, pc.SecondaryFrom, pc.SecondaryTo), nil
	default:
		return nil, fmt.Errorf("unsupported quote provider %q", pc.Type)
	}
}
