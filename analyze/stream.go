package analyze

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// itemKind discriminates entries in the flattened document stream.
type itemKind int

const (
	itemText    itemKind = iota // visible text run
	itemHeading                 // h1-h6, carries its own text
	itemBlock                   // counted block element (p, li, table, img)
)

// streamItem is one entry of the document-order flattening that the
// region classifier, heading tree builder, and section analyzer all
// compute from.
type streamItem struct {
	kind   itemKind
	level  int        // heading level, itemHeading only
	tag    atom.Atom  // block tag, itemBlock only
	text   string     // text run or heading text
	words  int
	region RegionKind // nearest semantic marker, "" when outside all markers
}

// docStream is the flattened view of a parsed document.
type docStream struct {
	items     []streamItem
	detected  map[RegionKind]bool
	title     string
	metaDesc  string
	mainNodes []*html.Node // semantic main-marker subtrees, for rendering
	body      *html.Node
}

// markerRegion maps a semantic tag or ARIA role to a region kind.
// Returns "" when the element is not a region marker.
func markerRegion(n *html.Node) RegionKind {
	switch n.DataAtom {
	case atom.Main:
		return RegionMain
	case atom.Nav:
		return RegionNav
	case atom.Header:
		return RegionHeader
	case atom.Footer:
		return RegionFooter
	case atom.Aside:
		return RegionSidebar
	}
	switch getAttr(n, "role") {
	case "main":
		return RegionMain
	case "navigation":
		return RegionNav
	case "banner":
		return RegionHeader
	case "contentinfo":
		return RegionFooter
	case "complementary":
		return RegionSidebar
	}
	return ""
}

// buildStream flattens the parsed document into document order.
// Region attribution follows the nearest matching ancestor: an <aside>
// nested inside <main> attributes its text to sidebar, not main.
func buildStream(doc *html.Node) *docStream {
	s := &docStream{detected: make(map[RegionKind]bool)}

	var walk func(n *html.Node, region RegionKind)
	walk = func(n *html.Node, region RegionKind) {
		switch n.Type {
		case html.TextNode:
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				s.items = append(s.items, streamItem{
					kind:   itemText,
					text:   text,
					words:  countWords(text),
					region: region,
				})
			}
			return
		case html.ElementNode:
			if skipElement(n) {
				return
			}
			switch n.DataAtom {
			case atom.Head:
				s.scanHead(n)
				return
			case atom.Body:
				s.body = n
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				text := collectText(n)
				s.items = append(s.items, streamItem{
					kind:   itemHeading,
					level:  int(n.Data[1] - '0'),
					text:   text,
					words:  countWords(text),
					region: region,
				})
				return
			case atom.P, atom.Li, atom.Table, atom.Img:
				s.items = append(s.items, streamItem{
					kind:   itemBlock,
					tag:    n.DataAtom,
					region: region,
				})
			}
			if r := markerRegion(n); r != "" {
				s.detected[r] = true
				if r == RegionMain {
					s.mainNodes = append(s.mainNodes, n)
				}
				region = r
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, region)
		}
	}
	walk(doc, "")
	return s
}

// scanHead extracts the title and description metadata from <head>.
// Head content never enters the item stream: it is not rendered text.
// The first <meta name="description"> wins, as browsers and SEO tooling
// read it; og:description is a fallback when no named description exists.
func (s *docStream) scanHead(head *html.Node) {
	var desc, ogDesc string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if s.title == "" {
					s.title = collectText(n)
				}
			case atom.Meta:
				if desc == "" && getAttr(n, "name") == "description" {
					desc = getAttr(n, "content")
				}
				if ogDesc == "" && getAttr(n, "property") == "og:description" {
					ogDesc = getAttr(n, "content")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(head)
	s.metaDesc = desc
	if s.metaDesc == "" {
		s.metaDesc = ogDesc
	}
}

// textBearing reports whether an item contributes words to region totals.
func (it *streamItem) textBearing() bool {
	return (it.kind == itemText || it.kind == itemHeading) && it.words > 0
}
