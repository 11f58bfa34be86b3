package portfolio

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// RenderMarkdown converts markdown into sanitised HTML safe to embed in a
// template without escaping.
func RenderMarkdown(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}

	// Parsers keep state and cannot be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.NoopenerLinks | html.NoreferrerLinks,
	})
	rendered := markdown.Render(p.Parse([]byte(trimmed)), renderer)

	return strings.TrimSpace(textSanitizer().Sanitize(string(rendered)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("target").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
		policy.RequireNoReferrerOnLinks(true)
		textPolicy = policy
	})
	return textPolicy
}
