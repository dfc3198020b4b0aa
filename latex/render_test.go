package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-pdf/model"
)

func verse(n int, numeral, he, en string) model.VerseEntry {
	return model.VerseEntry{VerseNumber: n, HebrewText: he, HebrewNumeral: numeral, EnglishText: en}
}

func TestRender_Empty(t *testing.T) {
	out, err := Render(&model.Document{Title: "Nothing 1:1"}, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `\documentclass[10pt]{article}`))
	assert.Contains(t, out, `\fancyfoot[C]{Nothing 1:1}`)
	assert.Contains(t, out, `\Large\textbf{Nothing 1:1}\\[1ex]`)
	assert.NotContains(t, out, `\begin{minipage}[t]{\textwidth}`)
	assert.True(t, strings.HasSuffix(out, `\end{document}`+"\n"))
}

func TestRender_Chapters(t *testing.T) {
	doc := &model.Document{
		Title: "Mishnah Berachot 3:3-4:1",
		Chapters: []model.Chapter{
			{Number: 1, Verses: []model.VerseEntry{
				verse(3, "ג", "שלישי", "third"),
				verse(4, "ד", `א \{פ\} ב`, "fourth & last"),
			}},
			{Number: 2, Verses: []model.VerseEntry{
				verse(1, "א", "ראשון", "first"),
			}},
		},
	}
	out, err := Render(doc, Options{FontDir: "/fonts", HebrewFont: "SBL", EnglishFont: "Gentium"})
	require.NoError(t, err)

	assert.Contains(t, out, `\newfontfamily\hebrewfont[Script=Hebrew, Path=/fonts/, Extension=.ttf]{SBL}`)
	assert.Contains(t, out, `\newfontfamily\englishfont[Path=/fonts/, Extension=.ttf]{Gentium}`)

	assert.Equal(t, 3, strings.Count(out, `\begin{minipage}[t]{\textwidth}`))
	assert.Equal(t, 1, strings.Count(out, `\section*{Chapter`))
	assert.Contains(t, out, "\n"+`\section*{Chapter 2}`+"\n")
	assert.Less(t, strings.Index(out, "fourth"), strings.Index(out, `\section*{Chapter 2}`))
	assert.Less(t, strings.Index(out, `\section*{Chapter 2}`), strings.Index(out, "first"))

	assert.Contains(t, out, `\raggedleft\texthebrew{א \{פ\} ב}`)
	assert.Contains(t, out, `\fbox{\texthebrew{ג}}`)
	assert.Contains(t, out, `\textbf{Verse 4:} fourth & last\par`)

	// a separator between consecutive verses, none after the last one
	assert.Equal(t, 2, strings.Count(out, `\par\decorativeseparator\vspace{10pt}`))
	assert.Contains(t, out, `\textbf{Verse 1:} first\par\vspace{10pt}\end{minipage}`)
}

func TestRender_EscapesTitle(t *testing.T) {
	out, err := Render(&model.Document{Title: "A_B & C"}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, `\fancyfoot[C]{A\_B \& C}`)
}
