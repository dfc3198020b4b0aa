package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-pdf/gematria"
	"bilingual-pdf/model"
	"bilingual-pdf/normalize"
)

func alignedFor(verses ...int) *model.AlignedTextSet {
	set := &model.AlignedTextSet{}
	for _, v := range verses {
		set.Append(model.VerseRecord{
			VerseNumber: v,
			HebrewRaw:   "א",
			EnglishRaw:  fmt.Sprintf("verse %d", v),
		})
	}
	return set
}

func verseNumbers(c model.Chapter) []int {
	out := make([]int, 0, len(c.Verses))
	for _, v := range c.Verses {
		out = append(out, v.VerseNumber)
	}
	return out
}

func TestBuild_ChapterBoundary(t *testing.T) {
	doc, err := Build(alignedFor(3, 4, 1, 2), "Mishnah Berachot 3:3-4:2", Options{})
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 2)
	assert.Equal(t, 1, doc.Chapters[0].Number)
	assert.Equal(t, []int{3, 4}, verseNumbers(doc.Chapters[0]))
	assert.Equal(t, 2, doc.Chapters[1].Number)
	assert.Equal(t, []int{1, 2}, verseNumbers(doc.Chapters[1]))
	assert.Equal(t, "Mishnah Berachot 3:3-4:2", doc.Title)
}

func TestBuild_EqualNumbersStayInChapter(t *testing.T) {
	doc, err := Build(alignedFor(1, 1, 2), "t", Options{})
	require.NoError(t, err)
	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, []int{1, 1, 2}, verseNumbers(doc.Chapters[0]))
}

func TestBuild_Empty(t *testing.T) {
	doc, err := Build(&model.AlignedTextSet{}, "Empty", Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.Chapters)
	assert.Equal(t, "Empty", doc.Title)
	assert.Equal(t, 0, doc.VerseCount())
}

func TestBuild_FromNormalizedTwoChapters(t *testing.T) {
	he := model.Sequence{
		model.Sequence{model.Scalar("א"), model.Scalar("ב"), model.Scalar("ג")},
		model.Sequence{model.Scalar("ד"), model.Scalar("ה")},
	}
	en := model.Sequence{
		model.Sequence{model.Scalar("1"), model.Scalar("2"), model.Scalar("3")},
		model.Sequence{model.Scalar("4"), model.Scalar("5")},
	}
	set, err := normalize.Normalize(he, en, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1, 2}, set.VerseNumbers)

	doc, err := Build(set, "t", Options{})
	require.NoError(t, err)
	require.Len(t, doc.Chapters, 2)
	assert.Equal(t, 5, doc.VerseCount())
}

func TestBuild_VerseEntry(t *testing.T) {
	set := &model.AlignedTextSet{}
	set.Append(model.VerseRecord{
		VerseNumber: 15,
		HebrewRaw:   `אבג<span class="mam-spi-pe">{פ}</span>`,
		EnglishRaw:  "<b>Fifteen</b> &amp; more<sup class=\"footnote-marker\">a</sup><i class=\"footnote\">note</i>",
	})

	doc, err := Build(set, "t", Options{})
	require.NoError(t, err)
	entry := doc.Chapters[0].Verses[0]

	assert.Equal(t, 15, entry.VerseNumber)
	assert.Equal(t, "טו", entry.HebrewNumeral)
	assert.Equal(t, `אבג \{פ\} `, entry.HebrewText)
	assert.Equal(t, "אבג {פ} ", entry.HebrewPlain)
	// english is never escaped
	assert.Equal(t, "Fifteen &amp; moreanote", entry.EnglishText)

	doc, err = Build(set, "t", Options{DropFootnotes: true})
	require.NoError(t, err)
	assert.Equal(t, "Fifteen &amp; more", doc.Chapters[0].Verses[0].EnglishText)
}

func TestBuild_Misaligned(t *testing.T) {
	set := alignedFor(1, 2)
	set.English = set.English[:1]
	_, err := Build(set, "t", Options{})
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestBuild_InvalidVerseNumber(t *testing.T) {
	_, err := Build(alignedFor(1, 0), "t", Options{})
	assert.ErrorIs(t, err, gematria.ErrInvalidNumeral)
}
