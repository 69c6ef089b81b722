package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTimezoneWins(t *testing.T) {
	assert.Equal(t, "AR", Detect("America/Argentina/Buenos_Aires"))
	assert.Equal(t, "MX", Detect("America/Mexico_City", "en-US"))
	assert.Equal(t, "ES", Detect("Europe/Madrid", "pt-BR"))
}

func TestDetectLocaleFallback(t *testing.T) {
	assert.Equal(t, "US", Detect("Europe/Berlin", "en-US"))
	assert.Equal(t, "PT", Detect("", "pt-PT", "es-MX"))
}

func TestDetectBareLanguageIsIgnored(t *testing.T) {
	// "en" alone carries no explicit region subtag.
	assert.Equal(t, DefaultCountry, Detect("Asia/Tokyo", "en"))
}

func TestDetectNumericRegionIsIgnored(t *testing.T) {
	// UN M.49 area codes are not two-letter country codes.
	assert.Equal(t, DefaultCountry, Detect("", "es-419"))
}

func TestDetectDefault(t *testing.T) {
	assert.Equal(t, DefaultCountry, Detect("", ""))
	assert.Equal(t, DefaultCountry, Detect("Atlantis/Nowhere"))
}

func TestDetectInvalidLocaleSkipped(t *testing.T) {
	assert.Equal(t, "CL", Detect("", "not a locale", "es-CL"))
}
