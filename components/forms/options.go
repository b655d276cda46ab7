package forms

import (
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-funcform/pkg/funcs"
	"github.com/goliatone/go-funcform/pkg/result"
)

// GuardFunc runs before every request; a non-nil error rejects it. Errors
// implementing HTTPError pick their own status code.
type GuardFunc func(r *http.Request) error

// Options configures the forms component.
type Options struct {
	RoutePrefix   string
	Title         string
	RendererParam string
	PageCacheSize int
	Guard         GuardFunc
	Functions     *funcs.Registry
	Results       *result.Registry
	Theme         *theme.RendererConfig
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the component defaults. Functions and Results have
// no useful zero value and must be supplied by the caller (Results falls back
// to the built-in registry).
func DefaultOptions() Options {
	return Options{
		RoutePrefix:   "/forms",
		Title:         "Functions",
		RendererParam: "renderer",
		PageCacheSize: 64,
	}
}

// NewOptions applies overrides on top of defaults and clamps the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePrefix == "" {
		opts.RoutePrefix = "/forms"
	}
	if opts.Title == "" {
		opts.Title = "Functions"
	}
	if opts.RendererParam == "" {
		opts.RendererParam = "renderer"
	}
	if opts.PageCacheSize <= 0 {
		opts.PageCacheSize = 64
	}
	if opts.Results == nil {
		opts.Results = result.NewRegistry()
	}
	return opts
}

// WithFunctions supplies the function registry backing the component.
func WithFunctions(registry *funcs.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Functions = registry
	}
}

// WithResults supplies the result renderer registry. When omitted, the
// built-in registry with default probe order is used.
func WithResults(registry *result.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Results = registry
	}
}

// WithRoutePrefix overrides the mount prefix for all component routes.
func WithRoutePrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePrefix = prefix
	}
}

// WithTitle sets the page title used by the index and form pages.
func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

// WithGuard installs a request guard, typically auth.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithTheme attaches a resolved go-theme renderer configuration; the form
// page links its stylesheet assets and exposes the theme name to templates.
func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// WithPageCacheSize bounds the rendered-page LRU cache.
func WithPageCacheSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageCacheSize = size
	}
}
