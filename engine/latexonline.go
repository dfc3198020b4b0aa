package engine

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// LatexOnline compiles through a latexonline.cc compatible service.
type LatexOnline struct {
	client *resty.Client
	url    string
}

func NewLatexOnline(client *resty.Client, url string) *LatexOnline {
	return &LatexOnline{client: client, url: url}
}

func (l *LatexOnline) Name() string   { return "latexonline" }
func (l *LatexOnline) Format() Format { return FormatLaTeX }

func (l *LatexOnline) Compile(ctx context.Context, source string) ([]byte, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"text": source}).
		Post(l.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrCompile, resp.StatusCode(), tail(resp.String(), 2048))
	}
	return resp.Body(), nil
}
