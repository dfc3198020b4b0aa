// Package normalize turns the Hebrew and English payloads of the text source
// into an index-aligned set of verses.
package normalize

import (
	"errors"
	"fmt"

	"bilingual-pdf/model"
)

var ErrShapeMismatch = errors.New("hebrew and english text shapes differ")

// ShapeError reports where the Hebrew and English payloads disagree.
type ShapeError struct {
	Ref    string
	Path   string
	Detail string
}

func (e *ShapeError) Error() string {
	msg := ErrShapeMismatch.Error()
	if e.Ref != "" {
		msg += fmt.Sprintf(" for %q", e.Ref)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg + ": " + e.Detail
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeErr(path, format string, args ...any) *ShapeError {
	return &ShapeError{Path: path, Detail: fmt.Sprintf(format, args...)}
}

// NormalizePair is Normalize over a fetched pair; shape errors carry the
// pair's reference.
func NormalizePair(pair *model.SourcePair, startVerse int) (*model.AlignedTextSet, error) {
	set, err := Normalize(pair.Hebrew, pair.English, startVerse)
	if err != nil {
		var se *ShapeError
		if errors.As(err, &se) {
			se.Ref = pair.Ref
		}
		return nil, err
	}
	return set, nil
}

// Normalize flattens the payloads into aligned sequences.
//
// A Scalar payload is one verse numbered startVerse. In a Sequence payload
// scalar elements are consecutive verses, and a nested Sequence element is a
// whole chapter: its verses are numbered from the running counter, after
// which the counter restarts at 1.
func Normalize(hebrew, english model.TextNode, startVerse int) (*model.AlignedTextSet, error) {
	if startVerse <= 0 {
		return nil, fmt.Errorf("invalid start verse %d", startVerse)
	}
	set := &model.AlignedTextSet{}

	switch he := hebrew.(type) {
	case model.Scalar:
		en, ok := english.(model.Scalar)
		if !ok {
			return nil, shapeErr("", "hebrew is a single verse, english is %s", describe(english))
		}
		set.Append(model.VerseRecord{VerseNumber: startVerse, HebrewRaw: string(he), EnglishRaw: string(en)})
	case model.Sequence:
		en, ok := english.(model.Sequence)
		if !ok {
			return nil, shapeErr("", "hebrew is a list, english is %s", describe(english))
		}
		if len(he) != len(en) {
			return nil, shapeErr("", "hebrew has %d elements, english has %d", len(he), len(en))
		}
		if err := appendSequence(set, he, en, startVerse); err != nil {
			return nil, err
		}
	default:
		return nil, shapeErr("", "hebrew is %s", describe(hebrew))
	}

	if !set.Aligned() {
		return nil, shapeErr("", "normalized sequences are not aligned")
	}
	return set, nil
}

func appendSequence(set *model.AlignedTextSet, he, en model.Sequence, verse int) error {
	for i := range he {
		path := fmt.Sprintf("[%d]", i)
		switch h := he[i].(type) {
		case model.Scalar:
			e, ok := en[i].(model.Scalar)
			if !ok {
				return shapeErr(path, "hebrew is a single verse, english is %s", describe(en[i]))
			}
			set.Append(model.VerseRecord{VerseNumber: verse, HebrewRaw: string(h), EnglishRaw: string(e)})
			verse++
		case model.Sequence:
			e, ok := en[i].(model.Sequence)
			if !ok {
				return shapeErr(path, "hebrew is a chapter, english is %s", describe(en[i]))
			}
			if len(h) != len(e) {
				return shapeErr(path, "hebrew chapter has %d verses, english has %d", len(h), len(e))
			}
			for j := range h {
				hv, hok := h[j].(model.Scalar)
				ev, eok := e[j].(model.Scalar)
				if !hok || !eok {
					return shapeErr(fmt.Sprintf("%s[%d]", path, j), "nesting deeper than chapter/verse is not supported")
				}
				set.Append(model.VerseRecord{VerseNumber: verse + j, HebrewRaw: string(hv), EnglishRaw: string(ev)})
			}
			verse = 1
		default:
			return shapeErr(path, "hebrew is %s", describe(he[i]))
		}
	}
	return nil
}

func describe(n model.TextNode) string {
	switch v := n.(type) {
	case model.Scalar:
		return "a single verse"
	case model.Sequence:
		return fmt.Sprintf("a list of %d", len(v))
	}
	return "missing"
}
