package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/characters/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	for _, marker := range []string{`class="app-error"`, `data-status="404"`, `<html`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestWriteModuleErrorRendersFragmentForHTMXUnavailable(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/characters/1", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.Wrap(apperrors.KindUnavailable, "", "fetch character", errors.New("dial tcp: refused")))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("expected fragment only, got %q", body)
	}
	if strings.Contains(body, "dial tcp") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/characters", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	// Invariant: user-facing transport errors must not leak raw internal strings.
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestPublicMessageUsesLocalizationKey(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/characters", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.EK(apperrors.KindInvalidInput, "errors.http.invalid_input", "bad page"))
	if body := rr.Body.String(); !strings.Contains(body, "The request is invalid.") {
		t.Fatalf("body = %q, want localized message", body)
	}
}

func TestShouldRenderAppError(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusBadRequest:          false,
		http.StatusForbidden:           false,
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
	} {
		if got := ShouldRenderAppError(status); got != want {
			t.Fatalf("ShouldRenderAppError(%d) = %v, want %v", status, got, want)
		}
	}
}
