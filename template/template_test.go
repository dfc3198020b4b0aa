package template

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-pdf/model"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleDocument() *model.Document {
	return &model.Document{
		Title: "Genesis 1:31-2:1",
		Chapters: []model.Chapter{
			{Number: 1, Verses: []model.VerseEntry{
				{VerseNumber: 31, HebrewPlain: "וירא {פ} ", HebrewNumeral: "לא", EnglishText: "And God saw <everything>"},
			}},
			{Number: 2, Verses: []model.VerseEntry{
				{VerseNumber: 1, HebrewPlain: "ויכלו", HebrewNumeral: "א", EnglishText: "Thus the heavens &amp; the earth"},
			}},
		},
	}
}

func TestIndexHTML(t *testing.T) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(render(t, IndexHTML())))
	require.NoError(t, err)

	form := dom.Find("form")
	assert.Equal(t, "/generate_pdf", form.AttrOr("action", ""))
	assert.Equal(t, "post", form.AttrOr("method", ""))
	assert.Equal(t, 1, form.Find(`input[name="text_ref"]`).Length())
	assert.Equal(t, "/generate_epub", form.Find(`input[formaction]`).AttrOr("formaction", ""))
}

func TestDocumentHTML(t *testing.T) {
	out := render(t, DocumentHTML(sampleDocument()))
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Genesis 1:31-2:1", dom.Find("h1").Text())
	assert.Equal(t, 2, dom.Find(".verse").Length())

	headings := dom.Find("h2.chapter")
	require.Equal(t, 1, headings.Length())
	assert.Equal(t, "Chapter 2", headings.Text())

	first := dom.Find(".verse").First()
	assert.Equal(t, "וירא {פ} ", first.Find(".hebrew").Text())
	assert.Equal(t, "rtl", first.Find(".hebrew").AttrOr("dir", ""))
	assert.Equal(t, "לא", first.Find(".numeral").Text())
	assert.Equal(t, "Verse 31: And God saw <everything>", first.Find(".english").Text())
	assert.Equal(t, 1, first.Find(".separator").Length())

	last := dom.Find(".verse").Last()
	assert.Equal(t, "Verse 1: Thus the heavens & the earth", last.Find(".english").Text())
	assert.Equal(t, 0, last.Find(".separator").Length())

	assert.NotContains(t, out, "<everything>")
}

func TestDocumentHTML_Empty(t *testing.T) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(render(t, DocumentHTML(&model.Document{Title: "Empty"}))))
	require.NoError(t, err)
	assert.Equal(t, "Empty", dom.Find("h1").Text())
	assert.Equal(t, 0, dom.Find(".verse").Length())
}

func TestChapterXHTML_WellFormed(t *testing.T) {
	doc := sampleDocument()
	out := render(t, ChapterXHTML(doc.Title, doc.Chapters[0], true))

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
	assert.Contains(t, out, `<h1>Genesis 1:31-2:1</h1>`)
	assert.Contains(t, out, `<h2 class="chapter">Chapter 1</h2>`)
	assert.NotContains(t, out, `class="separator"`)

	second := render(t, ChapterXHTML(doc.Title, doc.Chapters[1], false))
	assert.NotContains(t, second, "<h1>")
}

func TestContentOPF(t *testing.T) {
	dc := &model.DublinCoreMetadata{
		Titles:      []model.DCTitle{{Value: "Genesis 1"}},
		Identifiers: []model.DCIdentifier{{Value: "urn:uuid:x", ID: "book-id"}},
		Languages:   []model.DCLanguage{{Value: "he"}, {Value: "en"}},
	}
	manifest := &model.Manifest{Items: []model.ManifestItem{{ID: "c1", Link: "OEBPS/Text/chapter-001.xhtml", Media: "application/xhtml+xml"}}}
	spine := &model.Spine{Toc: "ncx", Items: []model.SpineItem{{IDref: "c1"}}}

	out := render(t, ContentOPF("book-id", dc, manifest, spine))
	assert.Contains(t, out, `unique-identifier="book-id"`)
	assert.Contains(t, out, `<metadata xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	assert.Contains(t, out, `<dc:identifier id="book-id">urn:uuid:x</dc:identifier>`)
	assert.Contains(t, out, `<item id="c1" href="OEBPS/Text/chapter-001.xhtml" media-type="application/xhtml+xml"></item>`)
	assert.Contains(t, out, `<spine toc="ncx"><itemref idref="c1"></itemref></spine>`)
}

func TestNavAndNCX(t *testing.T) {
	nav := render(t, NavXHTML("Genesis 1", []NavEntry{{Label: "Chapter 1", Href: "chapter-001.xhtml"}}))
	assert.Contains(t, nav, `<li><a href="chapter-001.xhtml">Chapter 1</a></li>`)

	doc := &model.Document{Title: "Genesis 1", Chapters: []model.Chapter{{Number: 1}}}
	head, navMap := model.NewNCX(doc, "urn:uuid:x", func(int) string { return "OEBPS/Text/chapter-001.xhtml" })
	ncx := render(t, TocNCX("Genesis 1", head, navMap))
	assert.Contains(t, ncx, `<meta name="dtb:uid" content="urn:uuid:x"></meta>`)
	assert.Contains(t, ncx, `<navLabel><text>Chapter 1</text></navLabel>`)
	assert.Contains(t, ncx, `<docTitle><text>Genesis 1</text></docTitle>`)
	assert.True(t, strings.HasPrefix(ncx, `<?xml version="1.0" encoding="utf-8"?>`))
}

func TestContentOPF_EscapesIdentifier(t *testing.T) {
	dc := &model.DublinCoreMetadata{}
	out := render(t, ContentOPF(`a"b`, dc, &model.Manifest{}, &model.Spine{}))
	assert.Contains(t, out, `unique-identifier="a&#34;b"`)
}

func TestNavXHTML_WellFormed(t *testing.T) {
	out := render(t, NavXHTML("R&D <1>", []NavEntry{{Label: "Chapter 1", Href: "chapter-001.xhtml"}}))
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
	assert.Contains(t, out, `<!DOCTYPE html>`)
	assert.Contains(t, out, `<link href="../Styles/style.css" rel="stylesheet" type="text/css"/>`)
}
