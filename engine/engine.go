// Package engine turns rendered document source into PDF bytes.
package engine

import (
	"context"
	"errors"
)

var (
	ErrCompile    = errors.New("failed to compile document")
	ErrInvalidPDF = errors.New("engine returned an invalid PDF")
)

// Format is the source language a Compiler consumes.
type Format int

const (
	FormatLaTeX Format = iota
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatLaTeX:
		return "latex"
	case FormatHTML:
		return "html"
	}
	return "unknown"
}

type Compiler interface {
	Name() string
	Format() Format
	Compile(ctx context.Context, source string) ([]byte, error)
}

// tail returns at most the last n bytes of s, for error messages.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
