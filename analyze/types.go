// Package analyze derives a structural representation of a rendered HTML
// page: heading hierarchy, content regions, entity prominence, embedded
// structured data, and whole-document DOM metrics.
//
// The engine is a pure function of its input. It holds no state between
// calls, performs no I/O, and favors graceful degradation over failure:
// real-world pages are messy, and anything short of "this is not markup"
// produces a complete result with documented defaults.
package analyze

import "time"

// RegionKind identifies a content region of the page.
type RegionKind string

const (
	RegionMain    RegionKind = "main"
	RegionNav     RegionKind = "nav"
	RegionHeader  RegionKind = "header"
	RegionFooter  RegionKind = "footer"
	RegionSidebar RegionKind = "sidebar"
)

// regionKinds is the fixed set of classified regions, in stable order.
var regionKinds = []RegionKind{RegionMain, RegionNav, RegionHeader, RegionFooter, RegionSidebar}

// RegionStats describes one classified region.
type RegionStats struct {
	WordCount         int     `json:"word_count"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
	// TagDetected is true when a semantic tag or ARIA role located the
	// region, false when it was inferred positionally. Downstream
	// consumers use it to tell "no sidebar exists" from "we guessed".
	TagDetected bool `json:"tag_detected"`
}

// HeadingNode is one heading in the nested document hierarchy.
// Children always have a strictly greater level than their parent and
// appear later in document order.
type HeadingNode struct {
	Level int    `json:"level"` // 1-6
	Text  string `json:"text"`
	// WordCountBelow counts words strictly between this heading and the
	// next heading of equal-or-shallower level. Descendant section text
	// is included: an ancestor's span encompasses its subsections.
	WordCountBelow int            `json:"word_count_below"`
	EntityMentions int            `json:"entity_mentions"`
	Children       []*HeadingNode `json:"children,omitempty"`
}

// SectionAnalysis is the structural composition of one level-2 section,
// pruned to counts rather than raw text.
type SectionAnalysis struct {
	Heading        string            `json:"heading"`
	Level          int               `json:"level"`
	WordCount      int               `json:"word_count"`
	ParagraphCount int               `json:"paragraph_count"`
	ListCount      int               `json:"list_count"` // list items across ul and ol
	TableCount     int               `json:"table_count"`
	ImageCount     int               `json:"image_count"`
	EntityMentions int               `json:"entity_mentions"`
	SubSections    []SectionAnalysis `json:"sub_sections,omitempty"`
}

// PositionAbsent is the sentinel for FirstMentionPosition when the entity
// never appears in the main content. Zero is a valid strong signal (very
// start of main content), so absence maps to -1 instead.
const PositionAbsent = -1.0

// EntityProminence measures how strongly an entity is signaled by page
// structure, as opposed to raw frequency.
type EntityProminence struct {
	Entity                    string  `json:"entity"`
	InTitle                   bool    `json:"in_title"`
	InFirstHeading            bool    `json:"in_first_heading"`
	InFirstSecondLevelHeading bool    `json:"in_first_second_level_heading"`
	InDescriptionMetadata     bool    `json:"in_description_metadata"`
	TotalMentions             int     `json:"total_mentions"`
	MainContentMentions       int     `json:"main_content_mentions"`
	SidebarMentions           int     `json:"sidebar_mentions"`
	FooterMentions            int     `json:"footer_mentions"`
	FirstMentionPosition      float64 `json:"first_mention_position"` // 0..1, or PositionAbsent
	HeadingMentionRate        float64 `json:"heading_mention_rate"`   // fraction of all headings
}

// StructuredDataSource identifies which surface a block was extracted from.
type StructuredDataSource string

const (
	SourceEmbeddedScript    StructuredDataSource = "embedded-script"    // JSON-LD script blocks
	SourceElementAttribute  StructuredDataSource = "element-attribute"  // microdata itemscope/itemprop
	SourcePropertyAttribute StructuredDataSource = "property-attribute" // RDFa typeof/property
)

// StructuredDataBlock is one embedded structured-data item.
type StructuredDataBlock struct {
	Kind       string               `json:"kind"`
	Properties map[string]Value     `json:"properties"`
	Source     StructuredDataSource `json:"source"`
}

// DomMetrics holds whole-tree counts.
type DomMetrics struct {
	TotalNodes       int `json:"total_nodes"`
	MainContentNodes int `json:"main_content_nodes"`
	MaxNestingDepth  int `json:"max_nesting_depth"`
	SizeBytes        int `json:"size_bytes"`
}

// StructuralAnalysis is the complete result of one analysis call.
// It is owned by the caller and immutable once produced; persistence and
// cache invalidation live entirely outside the engine.
type StructuralAnalysis struct {
	HeadingTree          []*HeadingNode             `json:"heading_tree"`
	Regions              map[RegionKind]RegionStats `json:"regions"`
	MainContentText      string                     `json:"main_content_text"`
	MainContentHTML      string                     `json:"main_content_html,omitempty"`
	MainContentMarkdown  string                     `json:"main_content_markdown,omitempty"`
	MainContentWordCount int                        `json:"main_content_word_count"`
	Sections             []SectionAnalysis          `json:"sections"`
	EntityProminence     EntityProminence           `json:"entity_prominence"`
	StructuredDataBlocks []StructuredDataBlock      `json:"structured_data_blocks"`
	DomMetrics           DomMetrics                 `json:"dom_metrics"`
	AnalyzedAt           time.Time                  `json:"analyzed_at"`
	AnalyzerVersion      string                     `json:"analyzer_version"`
}
