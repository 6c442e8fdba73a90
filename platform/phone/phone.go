// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "GB"

// Kind is the coarse classification of a UK phone number.
type Kind string

const (
	KindMobile    Kind = "Mobile"
	KindFreephone Kind = "Freephone"
	KindLandline  Kind = "Landline"
	KindUnknown   Kind = "Unknown"
)

// Hint returns a short dialling hint for the kind.
func (k Kind) Hint() string {
	switch k {
	case KindMobile:
		return "Likely direct line to owner"
	case KindFreephone:
		return "Likely a call centre"
	case KindLandline:
		return "Business landline"
	default:
		return "Unrecognised number format"
	}
}

var mobilePattern = regexp.MustCompile(`^(\+44|0)7\d{9}$`)

// Classify determines the kind of a raw UK phone number.
// Classification never fails; unrecognised input yields KindUnknown.
func Classify(raw string) Kind {
	if raw == "" {
		return KindUnknown
	}

	cleaned := stripWhitespace(raw)

	if mobilePattern.MatchString(cleaned) || strings.HasPrefix(raw, "07") {
		return KindMobile
	}
	if strings.HasPrefix(cleaned, "0800") || strings.HasPrefix(cleaned, "0808") {
		return KindFreephone
	}
	if strings.HasPrefix(cleaned, "01") || strings.HasPrefix(cleaned, "02") {
		return KindLandline
	}
	return KindUnknown
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

func stripWhitespace(input string) string {
	return strings.Join(strings.Fields(input), "")
}
