package analyze

import "strings"

// headingInfo pairs a built tree node with its position in the document
// stream, so the section analyzer can recover each heading's markup span.
type headingInfo struct {
	node *HeadingNode
	idx  int
}

// buildHeadingTree walks headings in document order and nests them with a
// level stack: each new heading pops until the stack top is strictly
// shallower, then attaches there (or becomes a root). Skipped levels
// (h1 directly to h3) nest under the nearest shallower ancestor while
// preserving the true level, so skips stay visible to downstream audits.
//
// A node's span runs from its heading to the next heading of
// equal-or-shallower level. Descendant headings and their text are part
// of the ancestor's span: a section encompasses its subsections.
func buildHeadingTree(items []streamItem, entity string) ([]*HeadingNode, []headingInfo) {
	var roots []*HeadingNode
	var flat []headingInfo
	var stack []*HeadingNode

	for i := range items {
		it := &items[i]
		if it.kind != itemHeading {
			continue
		}

		words, spanText := headingSpan(items, i)
		node := &HeadingNode{
			Level:          it.level,
			Text:           it.text,
			WordCountBelow: words,
			EntityMentions: countMentions(spanText, entity),
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
		flat = append(flat, headingInfo{node: node, idx: i})
	}

	return roots, flat
}

// headingSpan accumulates words and text between the heading at idx and
// the next heading of equal-or-shallower level.
func headingSpan(items []streamItem, idx int) (int, string) {
	level := items[idx].level
	words := 0
	var parts []string
	for j := idx + 1; j < len(items); j++ {
		it := &items[j]
		if it.kind == itemHeading && it.level <= level {
			break
		}
		if it.textBearing() {
			words += it.words
			parts = append(parts, it.text)
		}
	}
	return words, strings.Join(parts, " ")
}

// flattenHeadings returns the tree's nodes in document order.
func flattenHeadings(roots []*HeadingNode) []*HeadingNode {
	var out []*HeadingNode
	var walk func(*HeadingNode)
	walk = func(n *HeadingNode) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
