// Package phonex normalises user supplied phone numbers to E.164.
package phonex

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "AU"

// ErrInvalidNumber is returned for input that is not a dialable number.
var ErrInvalidNumber = errors.New("phonex: invalid phone number")

// Normalize parses raw, interpreting national numbers in region, and returns
// the E.164 form. Empty input yields an empty result.
func Normalize(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", ErrInvalidNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
