package services

import "strings"

// DigitsNormalizer is the default phone normalizer: it keeps digits and
// rejects values that are too short to be a phone number. Hosts with their
// own normalization plug in theirs through interfaces.PhoneNormalizer.
type DigitsNormalizer struct{}

func (DigitsNormalizer) Normalize(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 7 {
		return "", false
	}

	// Drop the national trunk prefix; the builder re-adds the country code.
	if len(digits) == 11 && digits[0] == '8' {
		digits = digits[1:]
	}

	return digits, true
}
