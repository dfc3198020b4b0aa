package model

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// NCXHead is the <head> of toc.ncx. Only EPUB 2 readers look at it.
type NCXHead struct {
	XMLName xml.Name  `xml:"head"`
	Meta    []NCXMeta `xml:"meta"`
}

type NCXMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

func (h *NCXHead) Marshal() (string, error) {
	return marshalXML(h)
}

// ChapterPoint is the navigation entry of one chapter.
type ChapterPoint struct {
	ID        string `xml:"id,attr"`
	PlayOrder int    `xml:"playOrder,attr"`
	Label     string `xml:"navLabel>text"`
	Content   struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
}

type NavMap struct {
	XMLName xml.Name        `xml:"navMap"`
	Points  []*ChapterPoint `xml:"navPoint"`
}

func (n *NavMap) Marshal() (string, error) {
	return marshalXML(n)
}

// NewNCX builds the head and the chapter navigation of doc. uid is the book
// identifier; href names the file of the i-th chapter.
func NewNCX(doc *Document, uid string, href func(i int) string) (*NCXHead, *NavMap) {
	head := &NCXHead{Meta: []NCXMeta{
		{Name: "dtb:uid", Content: uid},
		{Name: "dtb:depth", Content: "1"},
		{Name: "dtb:totalPageCount", Content: "0"},
		{Name: "dtb:maxPageNumber", Content: "0"},
	}}
	navMap := &NavMap{Points: make([]*ChapterPoint, 0, len(doc.Chapters))}
	for i, chapter := range doc.Chapters {
		point := &ChapterPoint{
			ID:        "navpoint-" + strconv.Itoa(i+1),
			PlayOrder: i + 1,
			Label:     fmt.Sprintf("Chapter %d", chapter.Number),
		}
		point.Content.Src = href(i)
		navMap.Points = append(navMap.Points, point)
	}
	return head, navMap
}
