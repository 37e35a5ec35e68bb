package domain

import (
	"fmt"
	"slices"
	"strings"
)

// EUMemberStates is the default reporting region.
var EUMemberStates = []string{
	"AT", "BE", "BG", "CY", "CZ", "DE", "DK", "EE", "ES", "FI", "FR", "GR", "HR", "HU",
	"IE", "IT", "LT", "LU", "LV", "MT", "NL", "PL", "PT", "RO", "SE", "SI", "SK",
}

// Region is a set of country codes for which cross-border sales are reported.
type Region map[string]struct{}

func NewRegion(codes []string) (Region, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: region is empty", ErrInvalidArgument)
	}

	r := make(Region, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if err := ValidateCountry(code); err != nil {
			return nil, fmt.Errorf("ValidateCountry: %w", err)
		}
		r[code] = struct{}{}
	}

	return r, nil
}

func (r Region) Contains(code string) bool {
	_, ok := r[code]
	return ok
}

func (r Region) Codes() []string {
	codes := make([]string, 0, len(r))
	for code := range r {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
