package utils

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "BR"

var ErrInvalidPhone = errors.New("phone number is not valid")

// NormalizePhone parses a phone number and formats it as E.164, e.g.
// "(11) 98765-4321" becomes "+5511987654321". Empty input stays empty.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultRegion
	}

	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
