// Package generator runs the whole pipeline for one reference: fetch,
// normalize, build, render and compile.
package generator

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/zeebo/blake3"

	"bilingual-pdf/builder"
	"bilingual-pdf/engine"
	"bilingual-pdf/epub"
	"bilingual-pdf/latex"
	"bilingual-pdf/logger"
	"bilingual-pdf/model"
	"bilingual-pdf/normalize"
	"bilingual-pdf/template"
	"bilingual-pdf/text"
)

const (
	ContentTypePDF   = "application/pdf"
	ContentTypeEPUB  = "application/epub+zip"
	ContentTypeLaTeX = "application/x-tex"
	ContentTypeHTML  = "text/html; charset=utf-8"
	ContentTypeText  = "text/plain; charset=utf-8"
)

type Options struct {
	Latex          latex.Options
	DropFootnotes  bool
	CompileTimeout time.Duration
}

// Result is one generated file.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int // PDF only
	ETag        string
}

// Generator holds no per-request state and is safe for concurrent use.
type Generator struct {
	source   model.TextSource
	compiler engine.Compiler
	opts     Options
}

// New returns a Generator. compiler may be nil when only documents, EPUB
// and LaTeX source are needed.
func New(source model.TextSource, compiler engine.Compiler, opts Options) *Generator {
	return &Generator{source: source, compiler: compiler, opts: opts}
}

// Build fetches ref and assembles its document.
func (g *Generator) Build(ctx context.Context, ref string) (*model.Document, error) {
	start, err := normalize.StartVerse(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}

	logger.InfoContext(ctx, "fetching text", "ref", ref)
	pair, err := g.source.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}

	aligned, err := normalize.NormalizePair(pair, start)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}

	doc, err := builder.Build(aligned, normalize.DisplayTitle(ref), builder.Options{DropFootnotes: g.opts.DropFootnotes})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	logger.InfoContext(ctx, "document built", "ref", ref, "chapters", len(doc.Chapters), "verses", doc.VerseCount())
	return doc, nil
}

// LaTeX returns the typesetting source for ref.
func (g *Generator) LaTeX(ctx context.Context, ref string) (*Result, error) {
	doc, err := g.Build(ctx, ref)
	if err != nil {
		return nil, err
	}
	src, err := latex.Render(doc, g.opts.Latex)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	return newResult(normalize.FileStem(ref)+".tex", ContentTypeLaTeX, []byte(src)), nil
}

// HTML returns the HTML rendering of ref.
func (g *Generator) HTML(ctx context.Context, ref string) (*Result, error) {
	doc, err := g.Build(ctx, ref)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := template.DocumentHTML(doc).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	return newResult(normalize.FileStem(ref)+".html", ContentTypeHTML, buf.Bytes()), nil
}

// Text returns ref as plain text.
func (g *Generator) Text(ctx context.Context, ref string) (*Result, error) {
	doc, err := g.Build(ctx, ref)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := text.WritePlain(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	return newResult(normalize.FileStem(ref)+".txt", ContentTypeText, buf.Bytes()), nil
}

// PDF renders ref in the compiler's source format, compiles it and checks
// the output.
func (g *Generator) PDF(ctx context.Context, ref string) (*Result, error) {
	if g.compiler == nil {
		return nil, fmt.Errorf("failed to generate %q: %w: no engine configured", ref, engine.ErrCompile)
	}
	doc, err := g.Build(ctx, ref)
	if err != nil {
		return nil, err
	}

	src, err := g.render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}

	if g.opts.CompileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.CompileTimeout)
		defer cancel()
	}

	began := time.Now()
	pdf, err := g.compiler.Compile(ctx, src)
	if err != nil {
		logger.ErrorContext(ctx, "compile failed", "ref", ref, "engine", g.compiler.Name(), "error", err)
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	pages, err := engine.Verify(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	logger.InfoContext(ctx, "pdf compiled", "ref", ref, "engine", g.compiler.Name(),
		"pages", pages, "bytes", len(pdf), "duration", time.Since(began))

	res := newResult(normalize.FileStem(ref)+".pdf", ContentTypePDF, pdf)
	res.Pages = pages
	return res, nil
}

// EPUB packs ref as an e-book.
func (g *Generator) EPUB(ctx context.Context, ref string) (*Result, error) {
	doc, err := g.Build(ctx, ref)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := epub.Pack(ctx, doc, &buf, epub.Options{}); err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", ref, err)
	}
	return newResult(normalize.FileStem(ref)+".epub", ContentTypeEPUB, buf.Bytes()), nil
}

func (g *Generator) render(ctx context.Context, doc *model.Document) (string, error) {
	switch g.compiler.Format() {
	case engine.FormatHTML:
		var buf bytes.Buffer
		if err := template.DocumentHTML(doc).Render(ctx, &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return latex.Render(doc, g.opts.Latex)
	}
}

func newResult(filename, contentType string, data []byte) *Result {
	return &Result{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		ETag:        ETag(data),
	}
}

// ETag is a strong entity tag for data.
func ETag(data []byte) string {
	sum := blake3.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
