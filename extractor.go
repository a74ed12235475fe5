package gripdoc

// Extraction is the uniform intermediate record produced by both content
// extractor variants. The HTML variant fills ContentHTML and Breadcrumbs;
// the markdown variant leaves them empty.
type Extraction struct {
	Title        string
	Content      string // plain text
	ContentHTML  string
	Breadcrumbs  []string
	Sections     []ExtractedSection
	CodeExamples []ExtractedExample
}

// ExtractedSection is a heading-delimited slice of the document body, in
// document order.
type ExtractedSection struct {
	Heading string
	Level   int
	Content string
	Anchor  string
}

// ExtractedExample is one code block with best-effort language and
// context. Context is the nearby heading or paragraph text and doubles as
// the join key for the section link at store time.
type ExtractedExample struct {
	Language string
	Code     string
	Context  string
}

// Extractor extracts structured content from a raw document. Extract is a
// pure function of its input: no network or store access.
type Extractor interface {
	Extract(input string) (*Extraction, error)
}
