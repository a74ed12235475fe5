// Package markdown provides a gripdoc.Extractor for raw markdown source
// files. It is the extraction half of the GitHub fallback scraper and is
// a pure line-oriented scan: no HTML parsing, no network, no store
// access.
package markdown

import (
	"regexp"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// DefaultLanguage is assumed for fenced code blocks with no language
// token.
const DefaultLanguage = "python"

// Ensure Extractor implements gripdoc.Extractor.
var _ gripdoc.Extractor = (*Extractor)(nil)

// Extractor extracts structured content from markdown source.
type Extractor struct{}

// NewExtractor creates a new markdown Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var headingPattern = regexp.MustCompile(`^(#{1,4})\s+(.+)`)

// Extract parses markdown into the uniform extraction record. The first
// level-1 heading seen before any other heading becomes the title and is
// not also emitted as a section; every other heading at levels 1-4
// closes the previous section and opens a new one. Triple-backtick
// fences toggle code-block mode; blocks closed while a section is open
// are tagged with that section's heading as context. The plain-text
// content is the full source.
func (e *Extractor) Extract(input string) (*gripdoc.Extraction, error) {
	result := &gripdoc.Extraction{Content: input}

	var (
		current   *gripdoc.ExtractedSection
		textParts []string
		codeLines []string
		codeLang  string
		inCode    bool
	)

	flush := func() {
		if current != nil && len(textParts) > 0 {
			current.Content = strings.TrimSpace(strings.Join(textParts, "\n"))
			result.Sections[len(result.Sections)-1] = *current
		}
	}

	for _, line := range strings.Split(input, "\n") {
		if strings.HasPrefix(line, "```") {
			if inCode {
				code := strings.Join(codeLines, "\n")
				if strings.TrimSpace(code) != "" {
					context := ""
					if current != nil {
						context = current.Heading
					}
					result.CodeExamples = append(result.CodeExamples, gripdoc.ExtractedExample{
						Language: codeLang,
						Code:     code,
						Context:  context,
					})
				}
				codeLines = nil
				inCode = false
			} else {
				inCode = true
				codeLang = DefaultLanguage
				if fields := strings.Fields(strings.TrimLeft(line, "`")); len(fields) > 0 {
					codeLang = fields[0]
				}
			}
			continue
		}

		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			textParts = append(textParts, line)
			continue
		}

		level := len(m[1])
		heading := strings.TrimSpace(m[2])

		// The document title is not a section.
		if level == 1 && result.Title == "" && len(result.Sections) == 0 {
			result.Title = heading
			continue
		}

		flush()
		current = &gripdoc.ExtractedSection{
			Heading: heading,
			Level:   level,
			Anchor:  anchor(heading),
		}
		result.Sections = append(result.Sections, *current)
		textParts = nil
	}

	flush()

	return result, nil
}

var nonAnchorPattern = regexp.MustCompile(`[^\w\s-]`)

// anchor derives a stable anchor token from a heading: lower-cased, with
// non-word characters stripped and spaces replaced by hyphens.
func anchor(heading string) string {
	a := nonAnchorPattern.ReplaceAllString(strings.ToLower(heading), "")
	return strings.ReplaceAll(a, " ", "-")
}
