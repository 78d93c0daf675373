package analyze

import (
	"math"
	"strings"
	"testing"
)

func score(t *testing.T, markup, entity string) EntityProminence {
	t.Helper()
	s := mustStream(t, markup)
	cfg := testConfig()
	reg := computeRegions(s, cfg)
	_, flat := buildHeadingTree(s.items, entity)
	return scoreProminence(entity, s, reg, flat)
}

func TestProminence_Flags(t *testing.T) {
	markup := `<html><head>
<title>Acme Corp — industrial widgets</title>
<meta name="description" content="Acme builds the best widgets.">
</head><body>
<main>
<h1>Welcome to Acme</h1>
<h2>Why Acme wins</h2>
<p>Acme is mentioned here. And Acme again.</p>
<h2>Pricing</h2>
<p>plans and tiers</p>
</main>
</body></html>`
	p := score(t, markup, "Acme")

	if !p.InTitle {
		t.Error("InTitle should be true")
	}
	if !p.InDescriptionMetadata {
		t.Error("InDescriptionMetadata should be true")
	}
	if !p.InFirstHeading {
		t.Error("InFirstHeading should be true")
	}
	if !p.InFirstSecondLevelHeading {
		t.Error("InFirstSecondLevelHeading should be true")
	}
	// 2 of 3 headings mention the entity.
	if math.Abs(p.HeadingMentionRate-2.0/3.0) > 1e-9 {
		t.Errorf("heading rate = %v, want 2/3", p.HeadingMentionRate)
	}
}

func TestProminence_RegionCounts(t *testing.T) {
	markup := `<body>
<main><p>Acme opens. More about Acme follows.</p></main>
<aside><p>Acme promo</p></aside>
<footer><p>Acme footer note</p></footer>
</body>`
	p := score(t, markup, "Acme")

	if p.MainContentMentions != 2 {
		t.Errorf("main mentions = %d, want 2", p.MainContentMentions)
	}
	if p.SidebarMentions != 1 {
		t.Errorf("sidebar mentions = %d, want 1", p.SidebarMentions)
	}
	if p.FooterMentions != 1 {
		t.Errorf("footer mentions = %d, want 1", p.FooterMentions)
	}
	if p.TotalMentions != 4 {
		t.Errorf("total mentions = %d, want 4", p.TotalMentions)
	}
}

func TestProminence_FirstMentionPosition(t *testing.T) {
	// Entity at the very start of main content scores position 0 — a
	// valid strong signal, distinct from the absent sentinel.
	p := score(t, `<body><main><p>Acme leads the paragraph with more words after</p></main></body>`, "Acme")
	if p.FirstMentionPosition != 0 {
		t.Errorf("position = %v, want 0", p.FirstMentionPosition)
	}

	p = score(t, `<body><main><p>many words come before the final Acme</p></main></body>`, "Acme")
	if p.FirstMentionPosition <= 0 || p.FirstMentionPosition > 1 {
		t.Errorf("position = %v, want within (0,1]", p.FirstMentionPosition)
	}
}

func TestProminence_FirstMentionPositionBounds(t *testing.T) {
	// WHAT: Position stays within [0,1] for text whose lowercase form has a
	// different byte length.
	// WHY: "Ⱥ" (2 bytes) lowers to "ⱥ" (3 bytes); mention offsets index the
	// case-folded text, so normalizing by the original length would push the
	// ratio past 1.
	markup := `<body><main><p>` + strings.Repeat("Ⱥ", 40) + ` Acme</p></main></body>`
	p := score(t, markup, "Acme")
	if p.FirstMentionPosition == PositionAbsent {
		t.Fatal("entity is present, sentinel is wrong")
	}
	if p.FirstMentionPosition < 0 || p.FirstMentionPosition > 1 {
		t.Errorf("position = %v, want within [0,1]", p.FirstMentionPosition)
	}
}

func TestProminence_AbsentEntitySentinel(t *testing.T) {
	p := score(t, `<body><main><p>nothing relevant here</p></main></body>`, "Acme")
	if p.FirstMentionPosition != PositionAbsent {
		t.Errorf("position = %v, want sentinel", p.FirstMentionPosition)
	}
	if p.TotalMentions != 0 {
		t.Errorf("total = %d, want 0", p.TotalMentions)
	}
}

func TestProminence_WordBoundary(t *testing.T) {
	// WHAT: No matches inside longer tokens.
	// WHY: The contract is literal surface-form detection with word
	// boundaries, not substring counting.
	p := score(t, `<body><main><p>Acmeville and preAcme are different towns</p></main></body>`, "Acme")
	if p.TotalMentions != 0 {
		t.Errorf("total = %d, want 0 (no partial-token matches)", p.TotalMentions)
	}

	// Case-insensitive whole words do match.
	p = score(t, `<body><main><p>ACME and acme and Acme.</p></main></body>`, "Acme")
	if p.TotalMentions != 3 {
		t.Errorf("total = %d, want 3", p.TotalMentions)
	}
}

func TestProminence_MultiWordEntity(t *testing.T) {
	p := score(t, `<body><main><h1>Acme Corp</h1><p>Acme Corp ships worldwide. AcmeCorp does not count.</p></main></body>`, "Acme Corp")
	if !p.InFirstHeading {
		t.Error("multi-word entity should match the heading")
	}
	if p.TotalMentions != 2 {
		t.Errorf("total = %d, want 2", p.TotalMentions)
	}
}

func TestProminence_OgDescriptionFallback(t *testing.T) {
	markup := `<html><head>
<meta property="og:description" content="Acme in the open graph only">
</head><body><main><p>body text</p></main></body></html>`
	p := score(t, markup, "Acme")
	if !p.InDescriptionMetadata {
		t.Error("og:description should back the description flag")
	}
}

func TestScanHead_FirstDescriptionWins(t *testing.T) {
	// Duplicate description metas: the first one is what browsers and SEO
	// consumers read, later ones must not overwrite it.
	s := mustStream(t, `<html><head>
<meta name="description" content="first description">
<meta name="description" content="second description">
</head><body><p>text</p></body></html>`)
	if s.metaDesc != "first description" {
		t.Errorf("metaDesc = %q, want first description", s.metaDesc)
	}

	// A named description beats og:description regardless of order.
	s = mustStream(t, `<html><head>
<meta property="og:description" content="open graph form">
<meta name="description" content="named form">
</head><body><p>text</p></body></html>`)
	if s.metaDesc != "named form" {
		t.Errorf("metaDesc = %q, want named form", s.metaDesc)
	}
}
