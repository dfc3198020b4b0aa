package text

import (
	"fmt"
	"io"
	"strings"

	"bilingual-pdf/model"
)

// WritePlain writes doc as plain text: the title, then for each verse its
// numeral and Hebrew on one line and the English on the next.
func WritePlain(w io.Writer, doc *model.Document) error {
	var sb strings.Builder
	sb.WriteString(doc.Title)
	sb.WriteString("\n")

	for ci, chapter := range doc.Chapters {
		if ci > 0 {
			fmt.Fprintf(&sb, "\nChapter %d\n", chapter.Number)
		}
		for _, verse := range chapter.Verses {
			fmt.Fprintf(&sb, "\n(%s) %s\nVerse %d: %s\n",
				verse.HebrewNumeral, strings.TrimSpace(verse.HebrewPlain), verse.VerseNumber, verse.EnglishText)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}
