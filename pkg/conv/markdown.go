package conv

import (
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions  = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	textPolicy  = bluemonday.StrictPolicy()
	rendererOps = mdhtml.RendererOptions{Flags: mdhtml.FlagsNone}
)

// MarkdownToPlainText flattens model output (markdown, stray HTML) into a single
// line of prose suitable for storage and prompt injection.
func MarkdownToPlainText(md string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}

	p := parser.NewWithExtensions(extensions)
	renderer := mdhtml.NewRenderer(rendererOps)
	rendered := markdown.Render(p.Parse([]byte(md)), renderer)

	return collapse(html.UnescapeString(string(textPolicy.SanitizeBytes(rendered))))
}

// StripHTML removes all markup but leaves markdown punctuation alone.
func StripHTML(s string) string {
	return collapse(html.UnescapeString(textPolicy.Sanitize(s)))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
