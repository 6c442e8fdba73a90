package scoring

import (
	"regexp"
	"strings"
)

// The phone predicates here deliberately mirror the raw prefix rules rather
// than delegating to platform/phone, so the scoring engine stays a pure
// function of its config and input.

var (
	mobilePattern   = regexp.MustCompile(`^(\+44|0)7\d{9}$`)
	postcodePattern = regexp.MustCompile(`(?i)[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d?[A-Z]{0,2}`)
)

func isMobileNumber(phone string) bool {
	return mobilePattern.MatchString(phone) || strings.HasPrefix(phone, "07")
}

func isFreephoneNumber(phone string) bool {
	return strings.HasPrefix(phone, "0800") || strings.HasPrefix(phone, "0808")
}

// extractPostcode finds the first UK-postcode-shaped token in an address,
// uppercased with whitespace removed. Returns "" when none is present.
func extractPostcode(address string) string {
	if address == "" {
		return ""
	}
	match := postcodePattern.FindString(address)
	if match == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToUpper(match)), "")
}

func (c Config) isUrbanPostcode(postcode string) bool {
	if postcode == "" {
		return false
	}
	if len(postcode) >= 3 && containsString(c.UrbanPostcodes, postcode[:3]) {
		return true
	}
	if len(postcode) >= 2 && containsString(c.UrbanPostcodes, postcode[:2]) {
		return true
	}
	return false
}

func (c Config) hasCorporateIndicators(name string) bool {
	return containsAny(name, c.CorporateIndicators)
}

func (c Config) hasSmallOperatorIndicators(name string) bool {
	return containsAny(name, c.SmallOperatorIndicators)
}

func (c Config) hasExtendedHours(hours string) bool {
	return containsAny(hours, c.ExtendedHoursIndicators)
}

func (c Config) hasReceptionistSignals(text string) bool {
	return containsAny(text, c.ReceptionistSignals)
}

// containsAny reports whether haystack contains any of the needles.
// The haystack is expected to already be lowercased.
func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func stripWhitespace(input string) string {
	return strings.Join(strings.Fields(input), "")
}
