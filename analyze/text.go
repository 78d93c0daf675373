package analyze

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0[^.]`),
	regexp.MustCompile(`(?i)position\s*:\s*absolute[^;]*-\d{4,}`),
}

// hasHiddenStyle reports whether an element is hidden via inline style.
// Hidden subtrees are excluded from all text metrics: a browser would not
// show them, so they carry no structural signal.
func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

// skipElement reports whether a subtree contributes no visible text.
func skipElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return hasHiddenStyle(n)
}

// collectText extracts all visible text from a node subtree, collapsing
// whitespace to single spaces.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if skipElement(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// countWords counts whitespace-delimited tokens.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// getAttr returns the value of an attribute on a node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasAttr checks if a node has a specific attribute.
func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// isWordRune reports whether a rune continues a token for the purpose of
// whole-word entity matching.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// firstMention returns the byte offset of the first case-insensitive,
// word-boundary-constrained occurrence of entity in text, or -1.
// Matching is literal surface form: no stemming, no synonyms. That is a
// documented contract, not an omission.
func firstMention(text, entity string) int {
	e := strings.ToLower(strings.TrimSpace(entity))
	if e == "" {
		return -1
	}
	t := strings.ToLower(text)
	for start := 0; start < len(t); {
		idx := strings.Index(t[start:], e)
		if idx < 0 {
			return -1
		}
		pos := start + idx
		if boundedAt(t, pos, len(e)) {
			return pos
		}
		start = pos + 1
	}
	return -1
}

// countMentions counts non-overlapping whole-word occurrences of entity.
func countMentions(text, entity string) int {
	e := strings.ToLower(strings.TrimSpace(entity))
	if e == "" {
		return 0
	}
	t := strings.ToLower(text)
	count := 0
	for start := 0; start < len(t); {
		idx := strings.Index(t[start:], e)
		if idx < 0 {
			break
		}
		pos := start + idx
		if boundedAt(t, pos, len(e)) {
			count++
			start = pos + len(e)
		} else {
			start = pos + 1
		}
	}
	return count
}

// containsMention reports whether entity appears as a whole word in text.
func containsMention(text, entity string) bool {
	return firstMention(text, entity) >= 0
}

// boundedAt checks that the match at [pos, pos+n) does not sit inside a
// longer token.
func boundedAt(t string, pos, n int) bool {
	if pos > 0 {
		if r, _ := utf8.DecodeLastRuneInString(t[:pos]); isWordRune(r) {
			return false
		}
	}
	if pos+n < len(t) {
		if r, _ := utf8.DecodeRuneInString(t[pos+n:]); isWordRune(r) {
			return false
		}
	}
	return true
}
