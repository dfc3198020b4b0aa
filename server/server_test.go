package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-pdf/engine"
	"bilingual-pdf/generator"
	"bilingual-pdf/normalize"
	"bilingual-pdf/sefaria"
)

type fakeGenerator struct {
	err  error
	refs []string
}

func (f *fakeGenerator) result(ref, ext, contentType string) (*generator.Result, error) {
	f.refs = append(f.refs, ref)
	if f.err != nil {
		return nil, f.err
	}
	data := []byte(ext + ":" + ref)
	return &generator.Result{
		Filename:    normalize.FileStem(ref) + "." + ext,
		ContentType: contentType,
		Data:        data,
		Pages:       2,
		ETag:        generator.ETag(data),
	}, nil
}

func (f *fakeGenerator) PDF(ctx context.Context, ref string) (*generator.Result, error) {
	return f.result(ref, "pdf", generator.ContentTypePDF)
}

func (f *fakeGenerator) EPUB(ctx context.Context, ref string) (*generator.Result, error) {
	return f.result(ref, "epub", generator.ContentTypeEPUB)
}

func (f *fakeGenerator) HTML(ctx context.Context, ref string) (*generator.Result, error) {
	return f.result(ref, "html", generator.ContentTypeHTML)
}

func formRequest(path, ref string) *http.Request {
	body := url.Values{"text_ref": {ref}}.Encode()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHealthy(t *testing.T) {
	s := NewServer(":0", &fakeGenerator{})
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/check/healthy", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["result"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestIndex(t *testing.T) {
	s := NewServer(":0", &fakeGenerator{})
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	dom, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "/generate_pdf", dom.Find("form").AttrOr("action", ""))
}

func TestGeneratePDF(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewServer(":0", gen)

	resp, err := s.App().Test(formRequest("/generate_pdf", "  Mishnah Berachot 3:2-4:1 "), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"Mishnah Berachot 3:2-4:1"}, gen.refs)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="Mishnah_Berachot_3`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.pdf"`), disposition)
	assert.Equal(t, "2", resp.Header.Get("X-Page-Count"))
	etag := resp.Header.Get("ETag")
	assert.NotEmpty(t, etag)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf:Mishnah Berachot 3:2-4:1", string(body))

	req := formRequest("/generate_pdf", "Mishnah Berachot 3:2-4:1")
	req.Header.Set("If-None-Match", etag)
	resp, err = s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestGeneratePDF_JSON(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewServer(":0", gen)

	req := httptest.NewRequest(http.MethodPost, "/generate_pdf", strings.NewReader(`{"text_ref":"Genesis 1:1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Genesis 1:1"}, gen.refs)
}

func TestGenerateEPUB(t *testing.T) {
	s := NewServer(":0", &fakeGenerator{})
	resp, err := s.App().Test(formRequest("/generate_epub", "Psalms 23"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, generator.ContentTypeEPUB, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Psalms_23.epub")
}

func TestPreview(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewServer(":0", gen)
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/preview?text_ref=Psalms+23", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Psalms 23"}, gen.refs)
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
}

func TestValidation(t *testing.T) {
	s := NewServer(":0", &fakeGenerator{})
	for name, ref := range map[string]string{
		"missing":  "   ",
		"too long": strings.Repeat("a", 201),
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := s.App().Test(formRequest("/generate_pdf", ref), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			var body ValidationError
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusUnprocessableEntity, body.Status)
			assert.Contains(t, body.Errors, "text_ref")
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("failed: %w", &normalize.ShapeError{Detail: "x"}), http.StatusUnprocessableEntity},
		{fmt.Errorf("failed: %w", normalize.ErrInvalidReference), http.StatusUnprocessableEntity},
		{fmt.Errorf("failed: %w", sefaria.ErrFetch), http.StatusBadGateway},
		{fmt.Errorf("failed: %w: bad", engine.ErrCompile), http.StatusBadGateway},
		{fmt.Errorf("failed: %w", engine.ErrInvalidPDF), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := NewServer(":0", &fakeGenerator{err: tt.err})
			resp, err := s.App().Test(formRequest("/generate_pdf", "Genesis 1:1"), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body Error
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	s := NewServer(":0", &fakeGenerator{})
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
