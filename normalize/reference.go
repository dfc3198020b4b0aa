package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ErrInvalidReference = errors.New("invalid reference")

// Locator is the chapter/verse part of a reference, e.g. "3:2-4:1" in
// "Mishnah Berachot 3:2-4:1". Start and End keep the raw tokens, colons
// included, so that empty parts such as the one in "1::2" survive parsing.
type Locator struct {
	Start []string `( @Segment | @Colon )*`
	End   []string `( "-" ( @Segment | @Colon | @Dash )* )?`
}

// StartParts splits the start of the range on colons.
func (l *Locator) StartParts() []string {
	return strings.Split(strings.Join(l.Start, ""), ":")
}

// EndParts splits the end of the range on colons; nil when there is no range.
func (l *Locator) EndParts() []string {
	if len(l.End) == 0 {
		return nil
	}
	return strings.Split(strings.Join(l.End, ""), ":")
}

var locatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Segment", Pattern: `[^:\-\s]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
})

var locatorParser = participle.MustBuild[Locator](
	participle.Lexer(locatorLexer),
)

// ParseLocator parses the last whitespace-delimited token of ref.
func ParseLocator(ref string) (*Locator, error) {
	fields := strings.Fields(ref)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}
	loc, err := locatorParser.ParseString("", fields[len(fields)-1])
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidReference, ref, err)
	}
	return loc, nil
}

// StartVerse returns the first verse a reference asks for: the second part
// of a "chapter:verse" start. Any other start (a whole chapter, a whole
// book, or more than one colon) begins at verse 1.
func StartVerse(ref string) (int, error) {
	loc, err := ParseLocator(ref)
	if err != nil {
		return 0, err
	}
	parts := loc.StartParts()
	if len(parts) != 2 {
		return 1, nil
	}
	verse, err := strconv.Atoi(parts[1])
	if err != nil || verse <= 0 {
		return 0, fmt.Errorf("%w %q: bad start verse %q", ErrInvalidReference, ref, parts[1])
	}
	return verse, nil
}

// APIPath formats a reference for the text-source URL path.
func APIPath(ref string) string {
	return strings.NewReplacer(" ", "_", ":", ".").Replace(ref)
}

// DisplayTitle turns an underscored reference back into a title.
func DisplayTitle(ref string) string {
	return strings.ReplaceAll(ref, "_", " ")
}

// FileStem is the base name used for generated files.
func FileStem(ref string) string {
	return strings.ReplaceAll(ref, " ", "_")
}
