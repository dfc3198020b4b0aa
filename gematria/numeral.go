// Package gematria converts verse numbers into Hebrew letter numerals.
package gematria

import (
	"errors"
	"fmt"
)

// MaxNumeral is the largest value ToHebrewNumeral accepts.
const MaxNumeral = 899

var ErrInvalidNumeral = errors.New("invalid hebrew numeral")

var (
	ones     = []string{"", "א", "ב", "ג", "ד", "ה", "ו", "ז", "ח", "ט"}
	tens     = []string{"", "י", "כ", "ל", "מ", "נ", "ס", "ע", "פ", "צ"}
	hundreds = []string{"", "ק", "ר", "ש", "ת", "תק", "תר", "תש", "תת", "תתק"}

	// 15 and 16 are never spelled י+ה / י+ו.
	exceptions = map[int]string{
		15: "טו",
		16: "טז",
	}
)

// extendedPrefix is used for every value from 400 up; the remainder is
// taken relative to 500.
const extendedPrefix = "תתק"

// ToHebrewNumeral returns the letter numeral for n.
//
// Values in [400, 500) would need a negative remainder and are rejected,
// as are n <= 0 and n > MaxNumeral. Above 899 the remainder itself falls
// into the rejected range.
func ToHebrewNumeral(n int) (string, error) {
	if n <= 0 || n > MaxNumeral || (n >= 400 && n < 500) {
		return "", fmt.Errorf("%w: %d", ErrInvalidNumeral, n)
	}
	return numeral(n), nil
}

func numeral(n int) string {
	if s, ok := exceptions[n]; ok {
		return s
	}
	switch {
	case n < 10:
		return ones[n]
	case n < 100:
		return tens[n/10] + ones[n%10]
	case n < 400:
		return hundreds[n/100] + numeral(n%100)
	default:
		return extendedPrefix + numeral(n-500)
	}
}
