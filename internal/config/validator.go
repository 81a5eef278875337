package config

import (
	"errors"
	"regexp"
)

var (
	ErrSymbolRequired = errors.New("primary symbol is required")
	ErrFromRequired   = errors.New("secondary from currency is required")
	ErrToRequired     = errors.New("secondary to currency is required")
	ErrSameCodes      = errors.New("secondary from and to currencies must be different")
	ErrBadCode        = errors.New("currency codes must be three letters")
)

var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ValidateSymbols checks the tracked instruments before any request is built from them.
func (p Provider) ValidateSymbols() error {
	if p.PrimarySymbol == "" {
		return ErrSymbolRequired
	}
	if p.SecondaryFrom == "" {
		return ErrFromRequired
	}
	if p.SecondaryTo == "" {
		return ErrToRequired
	}
	if !currencyCodeRe.MatchString(p.SecondaryFrom) || !currencyCodeRe.MatchString(p.SecondaryTo) {
		return ErrBadCode
	}
	if p.SecondaryFrom == p.SecondaryTo {
		return ErrSameCodes
	}
	return nil
}
