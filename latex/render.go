// Package latex renders a document as XeLaTeX source.
package latex

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"bilingual-pdf/model"
	"bilingual-pdf/text"
)

//go:embed document.tex.tmpl
var documentTemplate string

var tmpl = template.Must(template.New("document.tex").Delims("<<", ">>").Parse(documentTemplate))

type Options struct {
	FontDir     string
	HebrewFont  string
	EnglishFont string
}

func DefaultOptions() Options {
	return Options{
		FontDir:     "./",
		HebrewFont:  "TaameyFrankCLM-Medium",
		EnglishFont: "Cardo-Regular",
	}
}

type block struct {
	Chapter   int // non-zero when a chapter heading precedes the verse
	Verse     model.VerseEntry
	Separator bool
}

type view struct {
	Options
	Title  string
	Blocks []block
}

// Render returns the XeLaTeX source for doc. Hebrew text is expected to be
// escaped already; English text is inserted as is.
func Render(doc *model.Document, opts Options) (string, error) {
	if !strings.HasSuffix(opts.FontDir, "/") {
		opts.FontDir += "/"
	}

	v := view{
		Options: opts,
		Title:   text.EscapeLatex(doc.Title),
		Blocks:  make([]block, 0, doc.VerseCount()),
	}
	for ci, chapter := range doc.Chapters {
		for vi, verse := range chapter.Verses {
			b := block{Verse: verse, Separator: true}
			if ci > 0 && vi == 0 {
				b.Chapter = chapter.Number
			}
			v.Blocks = append(v.Blocks, b)
		}
	}
	if n := len(v.Blocks); n > 0 {
		v.Blocks[n-1].Separator = false
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, v); err != nil {
		return "", fmt.Errorf("failed to render latex: %w", err)
	}
	return sb.String(), nil
}
