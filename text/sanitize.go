// Package text cleans verse text coming from the text source before it is
// laid out.
package text

import (
	"regexp"
	"strings"
)

// Liturgical paragraph markers: open (petucha) and closed (setuma).
const (
	OpenParagraph   = "{פ}"
	ClosedParagraph = "{ס}"
)

var (
	markerSpanRegexp = regexp.MustCompile(`<span class="mam-spi-pe">\{(פ|ס)\}</span>`)
	tagRegexp        = regexp.MustCompile(`<.*?>`)
	markerRegexp     = regexp.MustCompile(`(\{פ\}|\{ס\})`)
	hebrewRegexp     = regexp.MustCompile(`[\x{0590}-\x{05FF}\x{FB1D}-\x{FB4F}0-9 ]|\{פ\}|\{ס\}`)
)

// StripMarkup unwraps decorated paragraph markers and removes every
// remaining tag.
func StripMarkup(s string) string {
	s = markerSpanRegexp.ReplaceAllString(s, "{$1}")
	return tagRegexp.ReplaceAllString(s, "")
}

// SanitizeHebrew strips markup, pads paragraph markers with spaces and keeps
// only Hebrew letters, points and presentation forms, ASCII digits, spaces
// and the markers themselves.
func SanitizeHebrew(s string) string {
	s = StripMarkup(s)
	s = markerRegexp.ReplaceAllString(s, " $1 ")
	return strings.Join(hebrewRegexp.FindAllString(s, -1), "")
}

var latexReplacer = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLatex escapes the characters reserved by the typesetting engine.
// It must be applied exactly once: escaping escaped text escapes the
// inserted braces again.
func EscapeLatex(s string) string {
	return latexReplacer.Replace(s)
}
