package result

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

func sanitizeHTML(raw string) string {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy.Sanitize(raw)
}

var markdownMarkers = []string{"#", "**", "```", "[", "|"}

// MarkdownRenderer classifies strings by markdown marker substrings. The
// heuristic is best-effort and can misfire on ordinary text containing those
// characters; that is a documented limitation, not a defect to tighten.
type MarkdownRenderer struct{}

// Name implements Renderer.
func (MarkdownRenderer) Name() string { return "markdown" }

// CanRender accepts strings containing any markdown marker.
func (MarkdownRenderer) CanRender(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, marker := range markdownMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Render tags the raw string for client-side markdown rendering.
func (MarkdownRenderer) Render(value any) (RenderedResult, error) {
	return RenderedResult{Type: TypeMarkdown, Data: value}, nil
}

// HTMLRenderer classifies strings that look like markup: trimmed value starts
// with '<' and contains '>'. Same best-effort caveat as MarkdownRenderer.
type HTMLRenderer struct{}

// Name implements Renderer.
func (HTMLRenderer) Name() string { return "html" }

// CanRender accepts strings that look like markup.
func (HTMLRenderer) CanRender(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">")
}

// Render sanitizes the markup before handing it to the client. Scripts and
// event handlers are stripped; structural tags survive.
func (HTMLRenderer) Render(value any) (RenderedResult, error) {
	s, _ := value.(string)
	return RenderedResult{
		Type:    TypeHTML,
		Data:    sanitizeHTML(s),
		Options: map[string]any{"sanitized": true},
	}, nil
}
