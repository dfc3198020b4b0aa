package utils

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanFileName makes input usable as a file name on common file systems.
func CleanFileName(input string) string {
	cleaned := unsafeFileChars.ReplaceAllString(strings.TrimSpace(input), "_")
	return strings.ReplaceAll(cleaned, " ", "_")
}
