package forms

import (
	"embed"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-funcform/pkg/funcs"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplateName = "templates/form_page.html"

// pageRenderer renders and caches the HTML form page for a function. Pages
// only depend on the function name and theme selection, so rendered output is
// memoised in a bounded LRU.
type pageRenderer struct {
	opts Options

	once  sync.Once
	tmpl  *pongo2.Template
	cache *lru.Cache[string, string]
	err   error
}

func newPageRenderer(opts Options) *pageRenderer {
	return &pageRenderer{opts: opts}
}

func (p *pageRenderer) init() {
	set := pongo2.NewSet("funcform", pongo2.NewFSLoader(templateFS))
	tmpl, err := set.FromFile(pageTemplateName)
	if err != nil {
		p.err = fmt.Errorf("forms: parse page template: %w", err)
		return
	}
	p.tmpl = tmpl

	cache, err := lru.New[string, string](p.opts.PageCacheSize)
	if err != nil {
		p.err = fmt.Errorf("forms: create page cache: %w", err)
		return
	}
	p.cache = cache
}

// Page returns the rendered HTML page for the supplied descriptor.
func (p *pageRenderer) Page(desc funcs.Descriptor) (string, error) {
	p.once.Do(p.init)
	if p.err != nil {
		return "", p.err
	}

	key := desc.Name + "\x00" + p.themeKey()
	if html, ok := p.cache.Get(key); ok {
		return html, nil
	}

	ctx := pongo2.Context{
		"title":      p.opts.Title,
		"function":   desc.Name,
		"summary":    desc.Summary,
		"schema_url": p.opts.RoutePrefix + "/" + desc.Name + "/schema",
		"endpoint":   p.opts.RoutePrefix + "/" + desc.Name,
		"index_url":  p.opts.RoutePrefix,
	}
	if p.opts.Theme != nil {
		ctx["theme_name"] = p.opts.Theme.Theme
		ctx["theme_variant"] = p.opts.Theme.Variant
		if p.opts.Theme.AssetURL != nil {
			ctx["theme_stylesheet"] = p.opts.Theme.AssetURL("forms.stylesheet")
		}
	}

	html, err := p.tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("forms: render page for %q: %w", desc.Name, err)
	}

	p.cache.Add(key, html)
	return html, nil
}

func (p *pageRenderer) themeKey() string {
	if p.opts.Theme == nil {
		return ""
	}
	return p.opts.Theme.Theme + "/" + p.opts.Theme.Variant
}
