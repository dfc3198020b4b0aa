// Package epub packs a document into an EPUB 3 file.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"bilingual-pdf/model"
	"bilingual-pdf/template"
)

type Options struct {
	// Identifier defaults to a name-based UUID of the title, so the same
	// reference always gets the same book id.
	Identifier string
	// Modified defaults to the current time.
	Modified time.Time
}

type part struct {
	name      string
	component templ.Component
}

func chapterFile(i int) string {
	return fmt.Sprintf("chapter-%03v.xhtml", i+1)
}

// Pack writes doc as an EPUB archive to w.
func Pack(ctx context.Context, doc *model.Document, w io.Writer, opts Options) error {
	if opts.Identifier == "" {
		opts.Identifier = "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(doc.Title)).String()
	}
	if opts.Modified.IsZero() {
		opts.Modified = time.Now()
	}

	zipWriter := zip.NewWriter(w)

	// mimetype must be the first entry and stored uncompressed
	err := addStringToZip(zipWriter, "mimetype", "application/epub+zip", zip.Store)
	if err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}

	parts := []part{
		{"META-INF/container.xml", template.ContainerXML()},
		{"content.opf", contentOPF(doc, opts)},
		{"toc.ncx", tocNCX(doc, opts)},
		{"OEBPS/Text/nav.xhtml", template.NavXHTML(doc.Title, navEntries(doc))},
	}
	for i, chapter := range doc.Chapters {
		parts = append(parts, part{"OEBPS/Text/" + chapterFile(i), template.ChapterXHTML(doc.Title, chapter, i == 0)})
	}

	for _, p := range parts {
		writer, err := zipWriter.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
		if err := p.component.Render(ctx, writer); err != nil {
			return fmt.Errorf("failed to render %s: %w", p.name, err)
		}
	}

	err = addStringToZip(zipWriter, "OEBPS/Styles/style.css", template.StyleCSS, zip.Deflate)
	if err != nil {
		return fmt.Errorf("failed to write CSS: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to pack epub: %w", err)
	}
	return nil
}

func navEntries(doc *model.Document) []template.NavEntry {
	entries := make([]template.NavEntry, 0, len(doc.Chapters))
	for i, chapter := range doc.Chapters {
		entries = append(entries, template.NavEntry{
			Label: fmt.Sprintf("Chapter %d", chapter.Number),
			Href:  chapterFile(i),
		})
	}
	return entries
}

func contentOPF(doc *model.Document, opts Options) templ.Component {
	dc := &model.DublinCoreMetadata{
		Titles: []model.DCTitle{
			{Value: doc.Title},
		},
		Identifiers: []model.DCIdentifier{
			{Value: opts.Identifier, ID: "book-id"},
		},
		Languages: []model.DCLanguage{
			{Value: "he"},
			{Value: "en"},
		},
		Publishers: []model.DCPublisher{
			{Value: "Sefaria"},
		},
		Metas: []model.DublinCoreMeta{
			{
				Property: "dcterms:modified",
				Value:    opts.Modified.UTC().Format("2006-01-02T15:04:05Z"),
			},
		},
	}

	manifest := &model.Manifest{
		Items: []model.ManifestItem{
			{ID: "nav", Link: "OEBPS/Text/nav.xhtml", Media: "application/xhtml+xml", Properties: "nav"},
			{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
			{ID: "style", Link: "OEBPS/Styles/style.css", Media: "text/css"},
		},
	}
	spine := &model.Spine{
		Toc:   "ncx",
		Items: []model.SpineItem{{IDref: "nav"}},
	}
	for i := range doc.Chapters {
		id := fmt.Sprintf("chapter-%03v", i+1)
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    id,
			Link:  "OEBPS/Text/" + chapterFile(i),
			Media: "application/xhtml+xml",
		})
		spine.Items = append(spine.Items, model.SpineItem{IDref: id})
	}

	return template.ContentOPF("book-id", dc, manifest, spine)
}

func tocNCX(doc *model.Document, opts Options) templ.Component {
	head, navMap := model.NewNCX(doc, opts.Identifier, func(i int) string {
		return "OEBPS/Text/" + chapterFile(i)
	})
	return template.TocNCX(doc.Title, head, navMap)
}

func addStringToZip(zipWriter *zip.Writer, relPath, content string, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(content))
	return err
}
