// Package goquery provides a gripdoc.Extractor for rendered MkDocs
// Material documentation pages. Extraction is a pure function of the
// input HTML: no network or store access.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gripdoc/gripdoc"
	"golang.org/x/net/html"
)

// DefaultLanguage is assumed for code blocks whose language cannot be
// inferred from class names.
const DefaultLanguage = "text"

// contentSelectors locate the primary content container, tried in order.
var contentSelectors = []string{".md-content__inner", ".md-content", "article"}

// sectionLevels are the heading levels scanned for sections.
const sectionLevels = "h2, h3, h4"

// anchorGlyph is the decorative permalink character MkDocs appends to
// headings.
const anchorGlyph = "¶"

// Ensure Extractor implements gripdoc.Extractor.
var _ gripdoc.Extractor = (*Extractor)(nil)

// Extractor extracts structured content from rendered MkDocs pages.
type Extractor struct{}

// NewExtractor creates a new HTML Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses HTML into the uniform extraction record. When no
// content container matches, an empty record is returned with the title
// still attempted from the first top-level heading.
func (e *Extractor) Extract(input string) (*gripdoc.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, gripdoc.Errorf(gripdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &gripdoc.Extraction{
		Title: headingText(doc.Find("h1").First()),
	}

	content := findContent(doc)
	if content == nil {
		return result, nil
	}

	if contentHTML, err := goquery.OuterHtml(content); err == nil {
		result.ContentHTML = contentHTML
	}
	result.Content = selectionText(content)
	result.Breadcrumbs = breadcrumbs(doc)
	result.Sections = sections(content)
	result.CodeExamples = codeExamples(content)

	return result, nil
}

// findContent returns the primary content container, trying each
// selector in priority order.
func findContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// headingText returns a heading's text with the trailing anchor glyph
// stripped.
func headingText(sel *goquery.Selection) string {
	text := strings.TrimSpace(sel.Text())
	return strings.TrimSpace(strings.TrimSuffix(text, anchorGlyph))
}

// breadcrumbs collects the breadcrumb trail labels, if present.
func breadcrumbs(doc *goquery.Document) []string {
	nav := doc.Find(".md-breadcrumb").First()
	if nav.Length() == 0 {
		nav = doc.Find("nav[aria-label='Breadcrumb']").First()
	}
	if nav.Length() == 0 {
		return nil
	}

	var crumbs []string
	nav.Find("a").Each(func(_ int, a *goquery.Selection) {
		crumbs = append(crumbs, strings.TrimSpace(a.Text()))
	})
	return crumbs
}

// sections scans the content container's headings in document order.
// Each section's body is the text of the siblings between its heading
// and the next heading of any scanned level.
func sections(content *goquery.Selection) []gripdoc.ExtractedSection {
	var result []gripdoc.ExtractedSection
	content.Find(sectionLevels).Each(func(_ int, heading *goquery.Selection) {
		node := heading.Get(0)

		var parts []string
		for sib := node.NextSibling; sib != nil; sib = sib.NextSibling {
			if isHeading(sib) {
				break
			}
			if text := nodeText(sib); text != "" {
				parts = append(parts, text)
			}
		}

		result = append(result, gripdoc.ExtractedSection{
			Heading: headingText(heading),
			Level:   int(node.Data[1] - '0'),
			Content: strings.Join(parts, "\n"),
			Anchor:  heading.AttrOr("id", ""),
		})
	})
	return result
}

var highlightClassPattern = regexp.MustCompile(`^highlight-(\w+)`)

// codeExamples scans preformatted code blocks in document order. The
// context is the text of the nearest preceding paragraph or heading.
func codeExamples(content *goquery.Selection) []gripdoc.ExtractedExample {
	var result []gripdoc.ExtractedExample
	context := ""

	content.Find("p, h2, h3, h4, pre").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "pre" {
			context = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sel.Text()), anchorGlyph))
			return
		}

		code := sel.Find("code").First()
		if code.Length() == 0 {
			return
		}
		text := code.Text()
		if strings.TrimSpace(text) == "" {
			return
		}

		result = append(result, gripdoc.ExtractedExample{
			Language: codeLanguage(code),
			Code:     strings.TrimSpace(text),
			Context:  context,
		})
	})
	return result
}

// codeLanguage infers the language from the code element's class names:
// language-X or highlight-X, first match wins.
func codeLanguage(code *goquery.Selection) string {
	for _, class := range strings.Fields(code.AttrOr("class", "")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
		if m := highlightClassPattern.FindStringSubmatch(class); m != nil {
			return m[1]
		}
	}
	return DefaultLanguage
}

// isHeading reports whether the node is a heading element at any of the
// section boundary levels.
func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

// selectionText extracts a selection's text with one line per text run,
// in the manner of a newline-separated strip.
func selectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel.Get(0))
}

// nodeText collects the trimmed text nodes under n, joined by newlines.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, "\n")
}
