package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTextNode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TextNode
	}{
		{"scalar", `"אבג"`, Scalar("אבג")},
		{"flat list", `["a","b"]`, Sequence{Scalar("a"), Scalar("b")}},
		{"nested", `[["a","b"],["c"]]`, Sequence{Sequence{Scalar("a"), Scalar("b")}, Sequence{Scalar("c")}}},
		{"null", `null`, Sequence{}},
		{"empty", ``, Sequence{}},
		{"empty list", `[]`, Sequence{}},
		{"null verse", `["a",null,"c"]`, Sequence{Scalar("a"), Scalar(""), Scalar("c")}},
		{"null verse in chapter", `[["a",null],["b"]]`, Sequence{Sequence{Scalar("a"), Scalar("")}, Sequence{Scalar("b")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTextNode(json.RawMessage(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTextNode_Invalid(t *testing.T) {
	_, err := DecodeTextNode(json.RawMessage(`{"a":1}`))
	assert.Error(t, err)

	_, err = DecodeTextNode(json.RawMessage(`["a", 3]`))
	assert.Error(t, err)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(Scalar("")))
	assert.True(t, IsEmpty(Sequence{}))
	assert.False(t, IsEmpty(Scalar("x")))
	assert.False(t, IsEmpty(Sequence{Scalar("")}))
}

func TestAlignedTextSet(t *testing.T) {
	var a AlignedTextSet
	a.Append(VerseRecord{VerseNumber: 2, HebrewRaw: "ב", EnglishRaw: "two"})
	a.Append(VerseRecord{VerseNumber: 3, HebrewRaw: "ג", EnglishRaw: "three"})

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Aligned())
	assert.Equal(t, VerseRecord{VerseNumber: 3, HebrewRaw: "ג", EnglishRaw: "three"}, a.Record(1))

	a.English = a.English[:1]
	assert.False(t, a.Aligned())
}
