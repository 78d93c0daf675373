package analyze

import "strings"

// scoreProminence measures the structural signal of the target entity
// across title, headings, description metadata, and content regions.
//
// An empty entity is not an error: callers that only want structural
// metrics get an all-zero result with the position sentinel.
func scoreProminence(entity string, s *docStream, reg regionOutcome, flat []headingInfo) EntityProminence {
	prom := EntityProminence{
		Entity:               entity,
		FirstMentionPosition: PositionAbsent,
	}
	if entity == "" {
		return prom
	}

	prom.InTitle = containsMention(s.title, entity)
	prom.InDescriptionMetadata = containsMention(s.metaDesc, entity)

	headingHits := 0
	for i, h := range flat {
		if containsMention(h.node.Text, entity) {
			headingHits++
			if i == 0 {
				prom.InFirstHeading = true
			}
		}
	}
	for _, h := range flat {
		if h.node.Level == sectionLevel {
			prom.InFirstSecondLevelHeading = containsMention(h.node.Text, entity)
			break
		}
	}
	if len(flat) > 0 {
		prom.HeadingMentionRate = float64(headingHits) / float64(len(flat))
	}

	for i := range s.items {
		if s.items[i].textBearing() {
			prom.TotalMentions += countMentions(s.items[i].text, entity)
		}
	}
	prom.MainContentMentions = countMentions(reg.mainText, entity)
	prom.SidebarMentions = countMentions(reg.regionText[RegionSidebar], entity)
	prom.FooterMentions = countMentions(reg.regionText[RegionFooter], entity)

	if reg.mainText != "" {
		// The offset indexes the case-folded text; normalize by that same
		// string's length. Some case mappings change byte length, so the
		// original length is the wrong denominator.
		if pos := firstMention(reg.mainText, entity); pos >= 0 {
			prom.FirstMentionPosition = float64(pos) / float64(len(strings.ToLower(reg.mainText)))
		}
	}

	return prom
}
