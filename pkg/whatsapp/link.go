// Package whatsapp builds wa.me deep links for handing buyers off to a
// vendor chat after checkout.
package whatsapp

import (
	"net/url"
	"strings"
)

const defaultCountryPrefix = "27"

// NormalizeNumber strips formatting from a South African phone number and
// returns the digits in international form. A leading 0 is swapped for the
// country prefix, and bare 9-digit numbers get the prefix added.
func NormalizeNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()

	switch {
	case number == "":
		return ""
	case strings.HasPrefix(number, defaultCountryPrefix) && len(number) == 11:
		return number
	case strings.HasPrefix(number, "0"):
		return defaultCountryPrefix + number[1:]
	case len(number) == 9:
		return defaultCountryPrefix + number
	}
	return number
}

// Link returns a wa.me URL opening a chat with the given number, optionally
// prefilled with text.
func Link(rawNumber, text string) string {
	number := NormalizeNumber(rawNumber)
	if number == "" {
		return ""
	}
	link := "https://wa.me/" + number
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
