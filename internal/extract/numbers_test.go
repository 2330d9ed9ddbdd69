package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberWords_SimpleMagnitudes(t *testing.T) {
	v, ok := parseNumberWords("five hundred million")
	assert.True(t, ok)
	assert.Equal(t, 500_000_000.0, v)

	v, ok = parseNumberWords("two billion")
	assert.True(t, ok)
	assert.Equal(t, 2_000_000_000.0, v)
}

func TestParseNumberWords_Accumulation(t *testing.T) {
	// "hundred" multiplies the buffer; larger multipliers flush it.
	v, ok := parseNumberWords("one hundred fifty three million")
	assert.True(t, ok)
	assert.Equal(t, 153_000_000.0, v)

	v, ok = parseNumberWords("two hundred fifty thousand")
	assert.True(t, ok)
	assert.Equal(t, 250_000.0, v)
}

func TestParseNumberWords_CaseAndNoise(t *testing.T) {
	v, ok := parseNumberWords("FIVE HUNDRED MILLION DOLLARS")
	assert.True(t, ok)
	assert.Equal(t, 500_000_000.0, v)

	v, ok = parseNumberWords("one hundred and fifty million")
	assert.True(t, ok)
	assert.Equal(t, 150_000_000.0, v)
}

func TestParseNumberWords_BareMagnitude(t *testing.T) {
	// "million" alone reads as one million.
	v, ok := parseNumberWords("million")
	assert.True(t, ok)
	assert.Equal(t, 1_000_000.0, v)
}

func TestParseNumberWords_NoNumberWords(t *testing.T) {
	_, ok := parseNumberWords("dollars and cents")
	assert.False(t, ok)
	_, ok = parseNumberWords("")
	assert.False(t, ok)
}

func TestParseNumber_CommaGrouping(t *testing.T) {
	v, ok := parseNumber("500,000,000")
	assert.True(t, ok)
	assert.Equal(t, 500_000_000.0, v)

	v, ok = parseNumber("2.75")
	assert.True(t, ok)
	assert.Equal(t, 2.75, v)
}

func TestParseNumber_Invalid(t *testing.T) {
	_, ok := parseNumber("")
	assert.False(t, ok)
	_, ok = parseNumber("abc")
	assert.False(t, ok)
}

func TestSuffixMultiplier(t *testing.T) {
	assert.Equal(t, 1e6, suffixMultiplier("million"))
	assert.Equal(t, 1e6, suffixMultiplier("M"))
	assert.Equal(t, 1e6, suffixMultiplier("mm"))
	assert.Equal(t, 1e9, suffixMultiplier("billion"))
	assert.Equal(t, 1e9, suffixMultiplier("bn"))
	assert.Equal(t, 1e3, suffixMultiplier("k"))
	assert.Equal(t, 1.0, suffixMultiplier(""))
	assert.Equal(t, 1.0, suffixMultiplier("widgets"))
}
