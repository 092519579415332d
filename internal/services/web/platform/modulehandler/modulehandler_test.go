package modulehandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerNeverNil(t *testing.T) {
	t.Parallel()

	if (Base{}).Logger() == nil {
		t.Fatal("zero Base logger is nil")
	}
	if NewTestBase().Logger() == nil {
		t.Fatal("test Base logger is nil")
	}
}

func TestPageLocalizerUsesQueryLanguage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/characters?lang=pt-BR", nil)
	loc, lang := NewTestBase().PageLocalizer(rr, req)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want pt-BR", lang)
	}
	if got := loc.Sprintf("web.characters.title"); got != "Personagens" {
		t.Fatalf("title = %q, want Personagens", got)
	}
}

func TestWriteErrorLogsServerFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := NewBase(zap.New(core))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/characters/1", nil)
	base.WriteError(rr, req, apperrors.Wrap(apperrors.KindUnavailable, "", "load", errors.New("boom")))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("logged entries = %v, want one request failure", logs.All())
	}
}

func TestWriteErrorSkipsClientFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := NewBase(zap.New(core))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/characters/1", nil)
	base.WriteError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if logs.Len() != 0 {
		t.Fatalf("logged entries = %v, want none", logs.All())
	}
}

func TestWritePageFallsBackToErrorOnRenderFailure(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/characters", nil)
	req.Header.Set("HX-Request", "true")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("render failed")
	})
	NewTestBase().WritePage(rr, req, "Characters", http.StatusOK, failing)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "render failed") {
		t.Fatalf("body leaked render error: %q", rr.Body.String())
	}
}
