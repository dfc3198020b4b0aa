package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"bilingual-pdf/logger"
)

// XeLaTeX runs a local xelatex binary in a scratch directory.
type XeLaTeX struct {
	Path string
}

func NewXeLaTeX(path string) *XeLaTeX {
	if path == "" {
		path = "xelatex"
	}
	return &XeLaTeX{Path: path}
}

func (x *XeLaTeX) Name() string   { return "xelatex" }
func (x *XeLaTeX) Format() Format { return FormatLaTeX }

func (x *XeLaTeX) Compile(ctx context.Context, source string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "bilingual-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	err = os.WriteFile(filepath.Join(dir, "document.tex"), []byte(source), 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, x.Path, "-interaction=nonstopmode", "-halt-on-error", "document.tex")
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Debug("xelatex output", "stdout", stdout.String(), "stderr", stderr.String())
		// xelatex reports errors on stdout
		detail := stderr.String()
		if detail == "" {
			detail = stdout.String()
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrCompile, err, tail(detail, 2048))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		return nil, fmt.Errorf("%w: no output: %v", ErrCompile, err)
	}
	return pdf, nil
}
