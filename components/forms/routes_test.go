package forms

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPathJoins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base   string
		prefix string
		want   string
	}{
		{"", "/forms", "/forms/"},
		{"/", "/forms", "/forms/"},
		{"/admin", "/forms", "/admin/forms/"},
		{"admin/", "tools", "/admin/tools/"},
	}
	for _, tc := range cases {
		got := MountPath(tc.base, WithRoutePrefix(tc.prefix))
		if got != tc.want {
			t.Fatalf("MountPath(%q, %q) = %q, want %q", tc.base, tc.prefix, got, tc.want)
		}
	}
}

func TestRegisterRoutesRequiresMuxAndRegistry(t *testing.T) {
	t.Parallel()

	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("RegisterRoutes accepted a nil mux")
	}
	if _, err := RegisterRoutes(http.NewServeMux(), ""); err == nil {
		t.Fatalf("RegisterRoutes accepted a missing function registry")
	}
}

func TestRegisterRoutesServesUnderBasePath(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithFunctions(testRegistry(t)))
	if err != nil {
		t.Fatalf("RegisterRoutes returned error: %v", err)
	}
	if pattern != "/admin/forms/" {
		t.Fatalf("pattern = %q, want /admin/forms/", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/forms/metrics/schema", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}
