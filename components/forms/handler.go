package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-funcform/pkg/result"
	"github.com/goliatone/go-funcform/pkg/schema"
)

// HTTPError lets guard and handler errors choose their HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with a status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode implements HTTPError.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

type indexEntry struct {
	Name     string `json:"name"`
	Summary  string `json:"summary,omitempty"`
	Page     string `json:"page"`
	Schema   string `json:"schema"`
	Endpoint string `json:"endpoint"`
}

type indexResponse struct {
	Title     string       `json:"title"`
	Functions []indexEntry `json:"functions"`
}

type submitResponse struct {
	ID       string                `json:"id"`
	Function string                `json:"function"`
	Result   result.RenderedResult `json:"result"`
}

// Handler builds the component's net/http handler with default options plus
// any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Callers are expected to pass an Options value produced by NewOptions so
// defaults and clamps apply.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	pages := newPageRenderer(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, guardStatus(err), err)
				return
			}
		}
		if opts.Functions == nil {
			writeError(w, http.StatusInternalServerError, errors.New("forms: no function registry configured"))
			return
		}

		name, action := splitRoute(strings.TrimPrefix(r.URL.Path, opts.RoutePrefix))
		switch {
		case name == "":
			serveIndex(w, r, opts)
		case action == "schema":
			serveSchema(w, r, opts, name)
		case action == "":
			if r.Method == http.MethodPost {
				serveSubmit(w, r, opts, name)
				return
			}
			servePage(w, r, opts, pages, name)
		default:
			http.NotFound(w, r)
		}
	})
}

// splitRoute extracts "{name}" or "{name}/schema" from the remaining path.
func splitRoute(rest string) (name, action string) {
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", ""
	}
	parts := strings.SplitN(rest, "/", 2)
	name = parts[0]
	if len(parts) == 2 {
		action = parts[1]
	}
	return name, action
}

func serveIndex(w http.ResponseWriter, r *http.Request, opts Options) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	resp := indexResponse{Title: opts.Title}
	for _, name := range opts.Functions.Names() {
		desc, err := opts.Functions.Get(name)
		if err != nil {
			continue
		}
		resp.Functions = append(resp.Functions, indexEntry{
			Name:     name,
			Summary:  desc.Summary,
			Page:     opts.RoutePrefix + "/" + name,
			Schema:   opts.RoutePrefix + "/" + name + "/schema",
			Endpoint: opts.RoutePrefix + "/" + name,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func serveSchema(w http.ResponseWriter, r *http.Request, opts Options, name string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	desc, err := opts.Functions.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	form, err := schema.Build(desc, schema.WithEndpointPrefix(opts.RoutePrefix))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func serveSubmit(w http.ResponseWriter, r *http.Request, opts Options, name string) {
	desc, err := opts.Functions.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	args := make(map[string]any)
	if r.Body != nil {
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&args); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	value, err := desc.Handler(r.Context(), args)
	if err != nil {
		writeError(w, handlerStatus(err), err)
		return
	}

	rendererType := strings.TrimSpace(r.URL.Query().Get(opts.RendererParam))
	if rendererType == "" {
		rendererType = desc.Renderer
	}

	rendered, err := opts.Results.Render(value, rendererType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		ID:       uuid.NewString(),
		Function: name,
		Result:   rendered,
	})
}

func servePage(w http.ResponseWriter, r *http.Request, opts Options, pages *pageRenderer, name string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	desc, err := opts.Functions.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	html, err := pages.Page(desc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(html))
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func guardStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusForbidden
}

func handlerStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusUnprocessableEntity
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Type:  fmt.Sprintf("%T", err),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
