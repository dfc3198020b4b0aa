// Package builder assembles aligned verses into a chaptered document.
package builder

import (
	"errors"
	"fmt"

	"bilingual-pdf/gematria"
	"bilingual-pdf/model"
	"bilingual-pdf/text"
)

var ErrMisaligned = errors.New("aligned text set has sequences of different length")

type Options struct {
	// DropFootnotes removes translator footnotes from the English text.
	DropFootnotes bool
}

// Build groups the verses of aligned into chapters.
//
// A verse number lower than the one before it starts a new chapter. This
// assumes numbering never goes backwards inside a chapter, which holds for
// the texts served by the text source.
func Build(aligned *model.AlignedTextSet, title string, opts Options) (*model.Document, error) {
	if !aligned.Aligned() {
		return nil, fmt.Errorf("%w: hebrew=%d english=%d verses=%d",
			ErrMisaligned, len(aligned.Hebrew), len(aligned.English), len(aligned.VerseNumbers))
	}

	doc := &model.Document{Title: title, Chapters: make([]model.Chapter, 0)}
	previous := 0
	current := model.Chapter{Number: 1}

	for i := 0; i < aligned.Len(); i++ {
		record := aligned.Record(i)
		if record.VerseNumber < previous {
			if len(current.Verses) > 0 {
				doc.Chapters = append(doc.Chapters, current)
			}
			current = model.Chapter{Number: current.Number + 1}
		}

		entry, err := newVerseEntry(record, opts)
		if err != nil {
			return nil, err
		}
		current.Verses = append(current.Verses, entry)
		previous = record.VerseNumber
	}

	if len(current.Verses) > 0 {
		doc.Chapters = append(doc.Chapters, current)
	}
	return doc, nil
}

func newVerseEntry(record model.VerseRecord, opts Options) (model.VerseEntry, error) {
	numeral, err := gematria.ToHebrewNumeral(record.VerseNumber)
	if err != nil {
		return model.VerseEntry{}, fmt.Errorf("failed to number verse: %w", err)
	}

	hebrew := text.SanitizeHebrew(record.HebrewRaw)
	english := record.EnglishRaw
	if opts.DropFootnotes {
		english = text.DropFootnotes(english)
	}

	return model.VerseEntry{
		VerseNumber:   record.VerseNumber,
		HebrewText:    text.EscapeLatex(hebrew),
		HebrewPlain:   hebrew,
		HebrewNumeral: numeral,
		EnglishText:   text.StripMarkup(english),
	}, nil
}
