package forms

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the component registers under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPattern(basePath, opts.RoutePrefix)
}

// RegisterRoutes registers the forms handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("forms: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Functions == nil {
		return "", fmt.Errorf("forms: missing function registry")
	}

	prefix := joinPaths(basePath, opts.RoutePrefix)
	opts.RoutePrefix = prefix
	pattern := prefix + "/"
	mux.Handle(pattern, HandlerWithOptions(opts))
	mux.Handle(prefix, HandlerWithOptions(opts))
	return pattern, nil
}

func mountPattern(basePath, routePrefix string) string {
	return joinPaths(basePath, routePrefix) + "/"
}

func joinPaths(basePath, routePrefix string) string {
	basePath = strings.TrimSpace(basePath)
	routePrefix = strings.TrimSpace(routePrefix)

	if routePrefix == "" {
		routePrefix = "/forms"
	}
	if !strings.HasPrefix(routePrefix, "/") {
		routePrefix = "/" + routePrefix
	}
	routePrefix = strings.TrimRight(routePrefix, "/")

	if basePath == "" || basePath == "/" {
		return routePrefix
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePrefix
}
