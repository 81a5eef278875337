// Package quoteparse holds the boundary validation shared by the quote providers.
package quoteparse

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"fxpulse/internal/domain"
)

// Price parses a provider price field. Empty, non-numeric, non-finite and
// negative values are rejected with domain.ErrNoData; zero is a valid price.
func Price(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("field is missing or empty: %w", domain.ErrNoData)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric: %w", s, domain.ErrNoData)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("value %q is not a valid price: %w", s, domain.ErrNoData)
	}
	return v, nil
}

// RedactURLError strips the request URL from transport errors so api keys
// passed as query parameters never reach the logs.
func RedactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
