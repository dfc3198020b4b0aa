// Package sefaria fetches Hebrew and English text from the Sefaria texts API.
package sefaria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"bilingual-pdf/logger"
	"bilingual-pdf/model"
	"bilingual-pdf/normalize"
)

var ErrFetch = errors.New("failed to fetch text")

type Client struct {
	http           *resty.Client
	baseURL        string
	englishVersion string
}

var _ model.TextSource = (*Client)(nil)

// NewClient returns a client for baseURL (e.g. https://www.sefaria.org).
// English text is requested in englishVersion first; an empty version
// always uses the default translation.
func NewClient(http *resty.Client, baseURL, englishVersion string) *Client {
	return &Client{
		http:           http,
		baseURL:        strings.TrimRight(baseURL, "/"),
		englishVersion: englishVersion,
	}
}

type textResponse struct {
	He   json.RawMessage `json:"he"`
	Text json.RawMessage `json:"text"`
}

// Fetch returns the Hebrew and English text of ref. A reference the API
// does not serve yields an empty pair, not an error.
func (c *Client) Fetch(ctx context.Context, ref string) (*model.SourcePair, error) {
	pair := &model.SourcePair{Ref: ref, Hebrew: model.Sequence{}, English: model.Sequence{}}

	he, ok, err := c.get(ctx, ref, map[string]string{"lang": "he"})
	if err != nil {
		return nil, err
	}
	if !ok {
		return pair, nil
	}
	hebrew, err := model.DecodeTextNode(he.He)
	if err != nil {
		return nil, fmt.Errorf("%w %q: failed to decode hebrew: %v", ErrFetch, ref, err)
	}

	english, err := c.fetchEnglish(ctx, ref)
	if err != nil {
		return nil, err
	}
	if english == nil {
		return pair, nil
	}

	pair.Hebrew = hebrew
	pair.English = english
	return pair, nil
}

// fetchEnglish returns nil when no English text is available at all.
func (c *Client) fetchEnglish(ctx context.Context, ref string) (model.TextNode, error) {
	if c.englishVersion != "" {
		en, ok, err := c.get(ctx, ref, map[string]string{"lang": "en", "ven": c.englishVersion})
		if err != nil {
			return nil, err
		}
		if ok {
			node, err := model.DecodeTextNode(en.Text)
			if err != nil {
				return nil, fmt.Errorf("%w %q: failed to decode english: %v", ErrFetch, ref, err)
			}
			if !model.IsEmpty(node) {
				return node, nil
			}
		}
		logger.Debug("english version unavailable, using default", "ref", ref, "version", c.englishVersion)
	}

	en, ok, err := c.get(ctx, ref, map[string]string{"lang": "en"})
	if err != nil || !ok {
		return nil, err
	}
	node, err := model.DecodeTextNode(en.Text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: failed to decode english: %v", ErrFetch, ref, err)
	}
	return node, nil
}

// get reports ok=false for non-2xx responses.
func (c *Client) get(ctx context.Context, ref string, params map[string]string) (*textResponse, bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("ref", normalize.APIPath(ref)).
		SetQueryParams(map[string]string{"context": "0", "pad": "0", "commentary": "0"}).
		SetQueryParams(params).
		Get(c.baseURL + "/api/texts/{ref}")
	if err != nil {
		return nil, false, fmt.Errorf("%w %q: %w", ErrFetch, ref, err)
	}
	if !resp.IsSuccess() {
		logger.Warn("text source returned an error", "ref", ref, "lang", params["lang"], "status", resp.StatusCode())
		return nil, false, nil
	}

	var body textResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, false, fmt.Errorf("%w %q: failed to decode response: %v", ErrFetch, ref, err)
	}
	return &body, true, nil
}
