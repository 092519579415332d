package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/sessioncookie"
)

func noContentModule(id string, prefix string) stubModule {
	return stubModule{id: id, mount: module.Mount{Prefix: prefix, Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}}
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{noContentModule("one", "/one/"), noContentModule("two", "/one/")},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
	if !strings.Contains(err.Error(), `owned by module "one"`) {
		t.Fatalf("unexpected error = %q", err.Error())
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "missing leading slash", prefix: "characters/"},
		{name: "missing trailing slash", prefix: "/characters"},
		{name: "contains surrounding whitespace", prefix: "/characters/ "},
		{name: "blank", prefix: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("bad", tc.prefix)}})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsRootPrefix(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("root", "/")}}); err == nil {
		t.Fatalf("expected root prefix error")
	}
}

func TestComposeRejectsNilModule(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
}

func TestComposeRejectsMissingHandler(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "empty", mount: module.Mount{Prefix: "/empty/"}}}})
	if err == nil {
		t.Fatalf("expected missing handler error")
	}
}

func TestComposeServesSlashlessModuleRoot(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for _, path := range []string{"/characters", "/characters/", "/characters/1"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusNoContent)
		}
	}
}

func TestComposeRejectsCookieMutationWithoutSameOriginProof(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/characters/1/delete", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestComposeAllowsMutationWithoutSessionCookie(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/characters/reset", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeAllowsCookieMutationWithSameOriginHeader(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "https://catalog.example.test/characters/1/delete", nil)
	req.Host = "catalog.example.test"
	req.Header.Set("Origin", "https://catalog.example.test")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeRejectsCookieMutationWhenOriginSchemeDiffers(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "https://catalog.example.test/characters/1/delete", nil)
	req.Host = "catalog.example.test"
	req.Header.Set("Origin", "http://catalog.example.test")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestComposeAllowsCookieMutationWhenForwardedProtoTrustEnabled(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		RequestSchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: true},
		Modules:             []module.Module{noContentModule("characters", "/characters/")},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "http://catalog.example.test/characters/1/delete", nil)
	req.Host = "catalog.example.test"
	req.Header.Set("Origin", "https://catalog.example.test")
	req.Header.Set("X-Forwarded-Proto", "https")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeRejectsCookieMutationWhenForwardedProtoMismatchesWithDefaultPolicy(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{noContentModule("characters", "/characters/")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "http://catalog.example.test/characters/1/delete", nil)
	req.Host = "catalog.example.test"
	req.Header.Set("Origin", "https://catalog.example.test")
	req.Header.Set("X-Forwarded-Proto", "https")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string {
	return s.id
}

func (s stubModule) Mount() (module.Mount, error) {
	return s.mount, s.err
}
