package analyze

import "golang.org/x/net/html"

// collectMetrics runs a pure counting pass over the parsed tree.
func collectMetrics(doc *html.Node, s *docStream, sizeBytes int) DomMetrics {
	m := DomMetrics{SizeBytes: sizeBytes}

	// Depth counts elements on the path from the document root: <html>
	// sits at depth 1.
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		d := depth
		if n.Type == html.ElementNode {
			d = depth + 1
			m.TotalNodes++
			if d > m.MaxNestingDepth {
				m.MaxNestingDepth = d
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, d)
		}
	}
	walk(doc, 0)

	// Main-region element count. With a semantic main marker the subtree
	// boundary is exact; otherwise there is no element-level boundary and
	// everything under <body> counts as main content.
	switch {
	case len(s.mainNodes) > 0:
		for _, n := range s.mainNodes {
			m.MainContentNodes += countElements(n)
		}
	case s.body != nil:
		m.MainContentNodes = countElements(s.body)
	}

	return m
}

// countElements counts element nodes in a subtree, including the root.
func countElements(n *html.Node) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return count
}
