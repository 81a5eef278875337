package domain

import "errors"

var (
	ErrMissingCredentials = errors.New("required credentials are missing")
	ErrNoData             = errors.New("no market data")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
)
