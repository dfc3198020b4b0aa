package text

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"tags", "<b>When</b> one <i>reads</i>", "When one reads"},
		{"open marker", `a<span class="mam-spi-pe">{פ}</span>b`, "a{פ}b"},
		{"closed marker", `a<span class="mam-spi-pe">{ס}</span>b`, "a{ס}b"},
		{"other span", `<span class="x">{פ}</span>`, "{פ}"},
		{"unclosed", "a < b", "a < b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestSanitizeHebrew_Marker(t *testing.T) {
	in := `בְּרֵאשִׁית<span class="mam-spi-pe">{פ}</span>abc, <b>x</b>`
	got := SanitizeHebrew(in)

	assert.Contains(t, got, " "+OpenParagraph+" ")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	for _, r := range got {
		assert.False(t, r < unicode.MaxASCII && unicode.IsLetter(r), "latin letter %q retained", r)
	}
	assert.True(t, strings.HasPrefix(got, "בְּרֵאשִׁית "))
}

func TestSanitizeHebrew(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"closed marker padded", `שלום<span class="mam-spi-pe">{ס}</span>עולם`, "שלום {ס} עולם"},
		{"digits and spaces kept", "abc 12 אב", " 12 אב"},
		{"punctuation dropped", "אב, גד.", "אב גד"},
		{"presentation forms kept", "שׁא", "שׁא"},
		{"stray braces dropped", "{א}", "א"},
		{"tab dropped", "א\tב", "אב"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHebrew(tt.in))
		})
	}
}

func TestEscapeLatex(t *testing.T) {
	assert.Equal(t, `a\&b\_c\{d\}`, EscapeLatex("a&b_c{d}"))
	assert.Equal(t, `\%\$\#`, EscapeLatex("%$#"))
	assert.Equal(t, `\textasciitilde{}\textasciicircum{}`, EscapeLatex("~^"))
	assert.Equal(t, `\{פ\}`, EscapeLatex(OpenParagraph))
}

func TestEscapeLatex_AppliedOnce(t *testing.T) {
	once := EscapeLatex("{")
	assert.Equal(t, `\{`, once)
	// a second pass is not idempotent, so callers must escape exactly once
	assert.NotEqual(t, once, EscapeLatex(once))
}

func TestDropFootnotes(t *testing.T) {
	in := `In the beginning<sup class="footnote-marker">*</sup><i class="footnote">Or: when</i> God`
	assert.Equal(t, "In the beginning God", DropFootnotes(in))

	plain := "no <b>notes</b> here"
	assert.Equal(t, plain, DropFootnotes(plain))

	// entities stay encoded, as they are when footnotes are kept
	in = `<b>R&amp;D</b> work<sup class="footnote-marker">a</sup><i class="footnote">note</i>`
	assert.Equal(t, `<b>R&amp;D</b> work`, DropFootnotes(in))
	assert.Equal(t, StripMarkup(`<b>R&amp;D</b> work`), StripMarkup(DropFootnotes(in)))

	in = `God's "light"<sup class="footnote-marker">b</sup><i class="footnote">note</i>`
	assert.Equal(t, `God's "light"`, DropFootnotes(in))
}
