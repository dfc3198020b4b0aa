package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// TextNode is the text-source payload for one reference: either a single
// verse (Scalar) or an ordered list of nodes (Sequence).
type TextNode interface {
	isTextNode()
}

type Scalar string

type Sequence []TextNode

func (Scalar) isTextNode()   {}
func (Sequence) isTextNode() {}

// IsEmpty reports whether n carries no text at all.
func IsEmpty(n TextNode) bool {
	switch v := n.(type) {
	case nil:
		return true
	case Scalar:
		return v == ""
	case Sequence:
		return len(v) == 0
	}
	return true
}

// DecodeTextNode decodes a JSON string, array or null into a TextNode.
// A top-level null or missing value decodes to an empty Sequence. A null
// inside a list is a verse without text and decodes to an empty Scalar, so
// the verses after it keep their position.
func DecodeTextNode(raw json.RawMessage) (TextNode, error) {
	return decodeTextNode(raw, false)
}

func decodeTextNode(raw json.RawMessage, nested bool) (TextNode, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if nested {
			return Scalar(""), nil
		}
		return Sequence{}, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return Scalar(s), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		seq := make(Sequence, 0, len(items))
		for i, item := range items {
			node, err := decodeTextNode(item, true)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			seq = append(seq, node)
		}
		return seq, nil
	}
	return nil, fmt.Errorf("unexpected text value %.20q", string(raw))
}

// SourcePair is the Hebrew and English payload for one reference.
type SourcePair struct {
	Ref     string
	Hebrew  TextNode
	English TextNode
}

type TextSource interface {
	Fetch(ctx context.Context, ref string) (*SourcePair, error)
}
