package geo

import (
	"golang.org/x/text/language"
)

// DefaultCountry is used when neither the timezone nor any locale yields
// a usable region.
const DefaultCountry = "BR"

var timezoneCountries = map[string]string{
	"America/Sao_Paulo":              "BR",
	"America/Argentina/Buenos_Aires": "AR",
	"America/Mexico_City":            "MX",
	"America/New_York":               "US",
	"America/Los_Angeles":            "US",
	"Europe/Madrid":                  "ES",
	"America/Bogota":                 "CO",
	"America/Santiago":               "CL",
	"America/Lima":                   "PE",
}

// Detect resolves a two-letter country code for wallet configuration.
// The timezone map wins; otherwise the first locale carrying an explicit
// two-letter region subtag is used, and DefaultCountry closes the gap.
func Detect(timezone string, locales ...string) string {
	if code, ok := timezoneCountries[timezone]; ok {
		return code
	}

	for _, locale := range locales {
		if code, ok := regionFromLocale(locale); ok {
			return code
		}
	}

	return DefaultCountry
}

func regionFromLocale(locale string) (string, bool) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}

	region, conf := tag.Region()
	if conf != language.Exact {
		// Bare language tags make the matcher guess a region; only an
		// explicit subtag counts here.
		return "", false
	}

	code := region.String()
	if len(code) != 2 || !isLetters(code) {
		return "", false
	}

	return code, true
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
