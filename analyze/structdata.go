package analyze

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// extractStructuredData collects embedded structured-data blocks from the
// full tree, independent of the region and heading models. Three surfaces
// are scanned: JSON-LD script blocks, microdata annotations, and RDFa
// annotations. Extraction is best-effort: a block that does not parse is
// skipped, never fatal — one broken annotation must not sink the page.
func extractStructuredData(doc *html.Node) []StructuredDataBlock {
	var blocks []StructuredDataBlock
	blocks = append(blocks, extractJSONLD(doc)...)
	blocks = append(blocks, extractMicrodata(doc)...)
	blocks = append(blocks, extractRDFa(doc)...)
	return blocks
}

// extractJSONLD parses <script type="application/ld+json"> payloads.
// A top-level array yields one block per object element.
func extractJSONLD(doc *html.Node) []StructuredDataBlock {
	var blocks []StructuredDataBlock
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script &&
			strings.EqualFold(strings.TrimSpace(getAttr(n, "type")), "application/ld+json") {
			payload := scriptText(n)
			var v Value
			if err := json.Unmarshal([]byte(payload), &v); err == nil {
				blocks = append(blocks, jsonLDBlocks(v)...)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

// jsonLDBlocks converts a decoded JSON-LD value into blocks, flattening
// top-level arrays and @graph containers.
func jsonLDBlocks(v Value) []StructuredDataBlock {
	switch v.Kind {
	case ValueArray:
		var blocks []StructuredDataBlock
		for _, e := range v.Arr {
			blocks = append(blocks, jsonLDBlocks(e)...)
		}
		return blocks
	case ValueObject:
		if graph, ok := v.Obj["@graph"]; ok && graph.Kind == ValueArray {
			var blocks []StructuredDataBlock
			for _, e := range graph.Arr {
				blocks = append(blocks, jsonLDBlocks(e)...)
			}
			return blocks
		}
		return []StructuredDataBlock{{
			Kind:       declaredType(v.Obj["@type"]),
			Properties: v.Obj,
			Source:     SourceEmbeddedScript,
		}}
	}
	// Scalars at the top level are not structured data.
	return nil
}

// declaredType extracts the @type value, taking the first of an array.
func declaredType(v Value) string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueArray:
		if len(v.Arr) > 0 && v.Arr[0].Kind == ValueString {
			return v.Arr[0].Str
		}
	}
	return ""
}

// scriptText returns the raw text content of a script element.
func scriptText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// extractMicrodata collects itemscope/itemprop annotations. Every
// itemscope element starts its own block; property collection stops at
// nested itemscope boundaries so nested items are not folded into their
// parent.
func extractMicrodata(doc *html.Node) []StructuredDataBlock {
	var blocks []StructuredDataBlock
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasAttr(n, "itemscope") {
			props := make(map[string]Value)
			collectItemProps(n, props)
			blocks = append(blocks, StructuredDataBlock{
				Kind:       getAttr(n, "itemtype"),
				Properties: props,
				Source:     SourceElementAttribute,
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

// collectItemProps gathers itemprop values below a scope root.
// First declaration of a property wins; repeats are ignored for
// deterministic output.
func collectItemProps(root *html.Node, props map[string]Value) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n != root {
			if hasAttr(n, "itemscope") {
				return
			}
			if name := getAttr(n, "itemprop"); name != "" {
				if _, exists := props[name]; !exists {
					props[name] = StringValue(annotationValue(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// extractRDFa collects typeof/property annotations the same way.
func extractRDFa(doc *html.Node) []StructuredDataBlock {
	var blocks []StructuredDataBlock
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && getAttr(n, "typeof") != "" {
			props := make(map[string]Value)
			collectRDFaProps(n, props)
			blocks = append(blocks, StructuredDataBlock{
				Kind:       getAttr(n, "typeof"),
				Properties: props,
				Source:     SourcePropertyAttribute,
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

func collectRDFaProps(root *html.Node, props map[string]Value) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n != root {
			if getAttr(n, "typeof") != "" {
				return
			}
			if name := getAttr(n, "property"); name != "" {
				if _, exists := props[name]; !exists {
					props[name] = StringValue(annotationValue(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// annotationValue resolves the value of an annotated element: an explicit
// content attribute, then link/media targets, then visible text.
func annotationValue(n *html.Node) string {
	if v := getAttr(n, "content"); v != "" {
		return v
	}
	switch n.DataAtom {
	case atom.A, atom.Link, atom.Area:
		if v := getAttr(n, "href"); v != "" {
			return v
		}
	case atom.Img, atom.Audio, atom.Video, atom.Source, atom.Iframe, atom.Embed:
		if v := getAttr(n, "src"); v != "" {
			return v
		}
	case atom.Time:
		if v := getAttr(n, "datetime"); v != "" {
			return v
		}
	case atom.Meta:
		return getAttr(n, "content")
	}
	return collectText(n)
}
