package analyze

import (
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Analyzer runs the structural analysis pipeline. It is safe for
// concurrent use: analyses share nothing but read-only configuration.
type Analyzer struct {
	config   Config
	md       *converter.Converter
	sanitize *bluemonday.Policy
}

// New creates an Analyzer.
func New(cfg Config) *Analyzer {
	cfg.defaults()
	return &Analyzer{
		config: cfg,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// Analyze derives the structural representation of a rendered page.
// targetEntity may be empty; prominence scoring then returns its
// documented zero result.
//
// The call is synchronous, deterministic apart from AnalyzedAt, and has
// exactly two failure modes: ErrEmptyInput and ErrMalformedMarkup.
// Everything else — missing regions, missing headings, broken
// structured-data blocks — degrades to documented defaults.
func (a *Analyzer) Analyze(markup, targetEntity string) (*StructuralAnalysis, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, ErrEmptyInput
	}
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	stream := buildStream(doc)
	regions := computeRegions(stream, a.config)
	roots, flat := buildHeadingTree(stream.items, targetEntity)
	sections := buildSections(stream.items, flat)
	prominence := scoreProminence(targetEntity, stream, regions, flat)
	blocks := extractStructuredData(doc)
	metrics := collectMetrics(doc, stream, len(markup))

	mainHTML := renderMainHTML(stream)
	markdown := ""
	if mainHTML != "" {
		md, err := a.md.ConvertString(mainHTML)
		if err != nil {
			a.config.Logger.Debug("markdown conversion failed", "error", err)
		} else {
			markdown = strings.TrimSpace(md)
		}
	}

	return &StructuralAnalysis{
		HeadingTree:          roots,
		Regions:              regions.stats,
		MainContentText:      regions.mainText,
		MainContentHTML:      strings.TrimSpace(a.sanitize.Sanitize(mainHTML)),
		MainContentMarkdown:  markdown,
		MainContentWordCount: regions.stats[RegionMain].WordCount,
		Sections:             sections,
		EntityProminence:     prominence,
		StructuredDataBlocks: blocks,
		DomMetrics:           metrics,
		AnalyzedAt:           time.Now().UTC(),
		AnalyzerVersion:      AnalyzerVersion,
	}, nil
}

// renderMainHTML serializes the main region markup: the semantic main
// subtrees when present, otherwise the whole body.
func renderMainHTML(s *docStream) string {
	nodes := s.mainNodes
	if len(nodes) == 0 {
		if s.body == nil {
			return ""
		}
		nodes = []*html.Node{s.body}
	}
	var sb strings.Builder
	for _, n := range nodes {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		if err := html.Render(&sb, n); err != nil {
			return ""
		}
	}
	return sb.String()
}
