package model

// VerseRecord is one verse as delivered by the text source.
type VerseRecord struct {
	VerseNumber int
	HebrewRaw   string
	EnglishRaw  string
}

// AlignedTextSet holds index-aligned Hebrew lines, English lines and verse
// numbers. All three slices have the same length.
type AlignedTextSet struct {
	Hebrew       []string
	English      []string
	VerseNumbers []int
}

func (a *AlignedTextSet) Len() int {
	return len(a.VerseNumbers)
}

// Aligned reports whether the three sequences have the same length.
func (a *AlignedTextSet) Aligned() bool {
	return len(a.Hebrew) == len(a.English) && len(a.English) == len(a.VerseNumbers)
}

// Append adds one record to the end of the set.
func (a *AlignedTextSet) Append(r VerseRecord) {
	a.Hebrew = append(a.Hebrew, r.HebrewRaw)
	a.English = append(a.English, r.EnglishRaw)
	a.VerseNumbers = append(a.VerseNumbers, r.VerseNumber)
}

// Record returns the i-th entry.
func (a *AlignedTextSet) Record(i int) VerseRecord {
	return VerseRecord{
		VerseNumber: a.VerseNumbers[i],
		HebrewRaw:   a.Hebrew[i],
		EnglishRaw:  a.English[i],
	}
}

type VerseEntry struct {
	VerseNumber int    `json:"verse_number" yaml:"verse_number"`
	HebrewText  string `json:"hebrew_text" yaml:"hebrew_text"` // sanitized and escaped for the typesetting engine
	// HebrewPlain is the sanitized Hebrew before escaping, used by the HTML
	// and EPUB renderers.
	HebrewPlain   string `json:"hebrew_plain" yaml:"hebrew_plain"`
	HebrewNumeral string `json:"hebrew_numeral" yaml:"hebrew_numeral"`
	EnglishText   string `json:"english_text" yaml:"english_text"`
}

type Chapter struct {
	Number int          `json:"chapter_number" yaml:"chapter_number"`
	Verses []VerseEntry `json:"verses" yaml:"verses"`
}

type Document struct {
	Title    string    `json:"title" yaml:"title"`
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
}

// VerseCount returns the number of verses across all chapters.
func (d *Document) VerseCount() int {
	n := 0
	for _, c := range d.Chapters {
		n += len(c.Verses)
	}
	return n
}
