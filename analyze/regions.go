package analyze

import "strings"

// regionOutcome carries region classification results plus the per-region
// text needed by the prominence scorer.
type regionOutcome struct {
	stats      map[RegionKind]RegionStats
	regionText map[RegionKind]string
	mainText   string
	totalWords int
	fallback   bool // positional heuristic was used (no semantic markers)
}

// computeRegions classifies every text-bearing item into exactly one
// region. Semantic tags and ARIA roles win; when the document carries no
// marker at all, a positional heuristic splits the linear block sequence
// into header / main / footer by the configured fractions. The fractions
// are an approximation tuned for common page templates, not a law.
func computeRegions(s *docStream, cfg Config) regionOutcome {
	out := regionOutcome{
		stats:      make(map[RegionKind]RegionStats, len(regionKinds)),
		regionText: make(map[RegionKind]string, len(regionKinds)),
	}
	out.fallback = len(s.detected) == 0

	assigned := make([]RegionKind, len(s.items))
	if out.fallback {
		positionalAssign(s.items, assigned, cfg)
	} else {
		for i := range s.items {
			r := s.items[i].region
			if r == "" {
				// Text outside every marker still belongs somewhere;
				// main is the only defensible default.
				r = RegionMain
			}
			assigned[i] = r
		}
	}

	words := make(map[RegionKind]int, len(regionKinds))
	texts := make(map[RegionKind][]string, len(regionKinds))
	total := 0
	for i := range s.items {
		it := &s.items[i]
		if !it.textBearing() {
			continue
		}
		words[assigned[i]] += it.words
		texts[assigned[i]] = append(texts[assigned[i]], it.text)
		total += it.words
	}
	out.totalWords = total

	for _, kind := range regionKinds {
		out.regionText[kind] = strings.Join(texts[kind], " ")
		st := RegionStats{WordCount: words[kind]}
		if !out.fallback {
			st.TagDetected = s.detected[kind]
		}
		if total > 0 {
			st.PercentageOfTotal = float64(st.WordCount) / float64(total) * 100
		}
		out.stats[kind] = st
	}
	out.mainText = out.regionText[RegionMain]

	// Global fallback: main is never empty while the page has any text.
	// This deliberately double-counts words already attributed to other
	// regions; region sums are documented as not required to equal the
	// page total.
	if total > 0 && out.stats[RegionMain].WordCount == 0 {
		var all []string
		for i := range s.items {
			if s.items[i].textBearing() {
				all = append(all, s.items[i].text)
			}
		}
		out.mainText = strings.Join(all, " ")
		out.regionText[RegionMain] = out.mainText
		st := out.stats[RegionMain]
		st.WordCount = total
		st.PercentageOfTotal = 100
		out.stats[RegionMain] = st
	}

	return out
}

// positionalAssign labels the leading fraction of the item sequence as
// header, the trailing fraction as footer, and the middle as main.
// Nav and sidebar stay absent: the heuristic has no positional signal
// for them.
func positionalAssign(items []streamItem, assigned []RegionKind, cfg Config) {
	n := len(items)
	head := int(cfg.HeadFraction * float64(n))
	tail := int(cfg.TailFraction * float64(n))
	for i := range items {
		switch {
		case i < head:
			assigned[i] = RegionHeader
		case i >= n-tail:
			assigned[i] = RegionFooter
		default:
			assigned[i] = RegionMain
		}
	}
}
