package gripdoc

import (
	"regexp"
	"strings"
)

// Node describes one visual-workflow building block, derived from node
// documentation pages. The page reference is weak: it survives deletion
// of the originating page.
type Node struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PageID      *int64 `json:"pageId"`
}

// Validate returns an error if the node contains invalid fields.
func (n *Node) Validate() error {
	if n.Name == "" {
		return Errorf(EINVALID, "node name required")
	}
	if n.Category == "" {
		return Errorf(EINVALID, "node category required")
	}
	return nil
}

// nodeCategories maps URL path segments to display categories. Slugs not
// in this vocabulary fall back to a title-cased version of the raw segment.
var nodeCategories = map[string]string{
	"agents":                 "Agents",
	"audio":                  "Audio",
	"config":                 "Config",
	"convert":                "Convert",
	"dict":                   "Dict",
	"execution":              "Execution",
	"image":                  "Image",
	"json":                   "JSON",
	"lists":                  "Lists",
	"misc":                   "Misc",
	"number":                 "Number",
	"rules":                  "Rules",
	"text":                   "Text",
	"three_d":                "3D",
	"tools":                  "Tools",
	"video":                  "Video",
	"advanced_media_library": "Advanced Media Library",
	"workflows":              "Workflows",
}

// NodeCategory resolves a category slug to its display name, falling back
// to a humanized version of the slug ("custom_stuff" -> "Custom Stuff").
func NodeCategory(slug string) string {
	if category, ok := nodeCategories[slug]; ok {
		return category
	}
	return humanize(slug)
}

var (
	nodeURLPattern  = regexp.MustCompile(`/nodes/(\w+)/(\w+)/?$`)
	nodePathPattern = regexp.MustCompile(`docs/nodes/(\w+)/(\w+)\.md$`)
)

// NodeFromURL derives a node record from a node-documentation URL.
// Returns nil if the URL is not a node documentation page.
func NodeFromURL(url, title string) *Node {
	m := nodeURLPattern.FindStringSubmatch(url)
	if m == nil {
		return nil
	}
	return &Node{
		Name:        title,
		DisplayName: title,
		Category:    NodeCategory(m[1]),
	}
}

// NodeFromPath derives a node record from a GitHub markdown file path of
// the shape docs/nodes/{category}/{name}.md. The "overview" slug is a
// category landing page, not a node, and yields nil. When title is empty
// the humanized file stem is used instead.
func NodeFromPath(path, title string) *Node {
	m := nodePathPattern.FindStringSubmatch(path)
	if m == nil {
		return nil
	}
	if m[1] == "overview" {
		return nil
	}
	name := title
	if name == "" {
		name = humanize(m[2])
	}
	return &Node{
		Name:        name,
		DisplayName: name,
		Category:    NodeCategory(m[1]),
	}
}

// humanize converts a snake_case slug into a title-cased label.
func humanize(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
