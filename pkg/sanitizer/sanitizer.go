package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Regions tried when normalizing a customer phone number. The wash is
// a Thai business but admin test data often uses US numbers.
var supportedRegions = []string{
	"TH",
	"US",
}

// TrimAndNormalize trims the string and collapses internal whitespace
// runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLicensePlate uppercases Latin letters; Thai plate glyphs
// pass through untouched.
func NormalizeLicensePlate(plate string) string {
	p := Pipeline{
		TrimAndNormalize,
		strings.ToUpper,
	}
	return p.Apply(plate)
}

// NormalizePhone formats the number as E.164 when it parses in one of
// the supported regions. Unparseable input is returned trimmed, not
// rejected: phone is free text as far as validation is concerned.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
