package template

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.943 generate

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"bilingual-pdf/model"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// xhtmlProlog precedes EPUB content documents, which must be well-formed
// XML with an upper-case doctype.
const xhtmlProlog = xmlDeclaration + "<!DOCTYPE html>\n"

const stylesheetLink = `<link href="../Styles/style.css" rel="stylesheet" type="text/css"/>`

// NavEntry is one line of the EPUB 3 navigation document.
type NavEntry struct {
	Label string
	Href  string
}

// plain decodes entities left in the source text; templ escapes the result
// again, so "&amp;" is not written as "&amp;amp;".
func plain(s string) string {
	return html.UnescapeString(s)
}

func lastVerse(doc *model.Document, chapter, verse int) bool {
	return chapter == len(doc.Chapters)-1 && verse == len(doc.Chapters[chapter].Verses)-1
}

// failed is a component that only reports err.
func failed(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}
