package analyze

import "golang.org/x/net/html/atom"

// sectionLevel is the heading level that defines a section. Fixed by
// convention: content-brief and audit consumers define "section" as a
// level-2 heading.
const sectionLevel = 2

// buildSections derives structural composition for every level-2 heading.
// A document with no level-2 headings yields an empty slice; that is
// valid output, and callers treat the whole main region as one implicit
// section.
func buildSections(items []streamItem, flat []headingInfo) []SectionAnalysis {
	idxOf := make(map[*HeadingNode]int, len(flat))
	for _, h := range flat {
		idxOf[h.node] = h.idx
	}

	var sections []SectionAnalysis
	for _, h := range flat {
		if h.node.Level == sectionLevel {
			sections = append(sections, sectionFor(items, h.node, idxOf))
		}
	}
	return sections
}

// sectionFor computes counts over a heading's markup span and recurses
// into deeper descendants.
func sectionFor(items []streamItem, node *HeadingNode, idxOf map[*HeadingNode]int) SectionAnalysis {
	sec := SectionAnalysis{
		Heading:        node.Text,
		Level:          node.Level,
		WordCount:      node.WordCountBelow,
		EntityMentions: node.EntityMentions,
	}

	start := idxOf[node]
	for j := start + 1; j < len(items); j++ {
		it := &items[j]
		if it.kind == itemHeading && it.level <= node.Level {
			break
		}
		if it.kind != itemBlock {
			continue
		}
		switch it.tag {
		case atom.P:
			sec.ParagraphCount++
		case atom.Li:
			sec.ListCount++
		case atom.Table:
			sec.TableCount++
		case atom.Img:
			sec.ImageCount++
		}
	}

	for _, child := range node.Children {
		sec.SubSections = append(sec.SubSections, sectionFor(items, child, idxOf))
	}
	return sec
}
