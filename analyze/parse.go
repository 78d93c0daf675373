package analyze

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// printableThreshold is the minimum ratio of printable runes for input to
// be treated as text at all. Below it the input is rejected as binary.
const printableThreshold = 0.70

// parseDocument parses raw markup with browser-like error recovery.
// It fails only when the input is not markup at all: html.Parse swallows
// almost any text, so binary data is detected up front by encoding checks.
func parseDocument(markup string) (*html.Node, error) {
	if !utf8.ValidString(markup) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedMarkup)
	}
	if strings.IndexByte(markup, 0x00) >= 0 {
		return nil, fmt.Errorf("%w: NUL byte in input", ErrMalformedMarkup)
	}
	if r := printableRatio(markup); r < printableThreshold {
		return nil, fmt.Errorf("%w: printable ratio %.2f", ErrMalformedMarkup, r)
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	return doc, nil
}

// printableRatio returns the share of printable runes in text.
// Control characters (except whitespace) and replacement characters count
// as garbage.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if r == 0xFFFD {
			continue
		}
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable) / float64(total)
}
