package templates

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/charactercatalog/internal/services/web/platform/i18n"
	"golang.org/x/text/language"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(context.Background(), &buf, c); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestCharacterListRendersRowsAndTargets(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.AmericanEnglish)
	got := renderString(t, CharacterList(CharacterListView{
		Loc: loc,
		Rows: []CharacterRow{{
			ID:            "1",
			Name:          "Luke <Skywalker>",
			DetailURL:     "/characters/1",
			EditURL:       "/characters/1/edit",
			DeleteURL:     "/characters/1/delete",
			ConfirmURL:    "/characters/1/delete",
			DeleteConfirm: "Delete Luke?",
			Edited:        true,
		}},
		IDSort:   SortLink{Label: "ID", URL: "/characters?order_by=id+desc", Active: true},
		NameSort: SortLink{Label: "Name", URL: "/characters?order_by=name"},
		Pager: PagerView{
			Summary: "Page 1 of 1",
			Pages:   []PageLink{{Number: 1, URL: "/characters?page=1", Current: true}},
		},
		ResetURL:        "/characters/reset",
		ResetConfirmURL: "/characters/reset",
	}))

	for _, want := range []string{
		`id="character-list"`,
		`Luke &lt;Skywalker&gt;`,
		`hx-target="#overlay"`,
		`hx-confirm="Delete Luke?"`,
		`aria-sort="ascending"`,
		`aria-current="page"`,
		`class="edited"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("list markup missing %q:\n%s", want, got)
		}
	}
}

func TestCharacterListRendersEmptyAndWarning(t *testing.T) {
	t.Parallel()

	got := renderString(t, CharacterList(CharacterListView{
		Loc:     webi18n.Printer(language.AmericanEnglish),
		Warning: "catalog unreachable",
	}))
	if !strings.Contains(got, "No characters found.") {
		t.Fatalf("expected empty-state copy, got:\n%s", got)
	}
	if !strings.Contains(got, "catalog unreachable") {
		t.Fatalf("expected warning, got:\n%s", got)
	}
}

func TestCharactersPageDebouncesSearch(t *testing.T) {
	t.Parallel()

	got := renderString(t, CharactersPage(CharactersPageView{
		Loc:            webi18n.Printer(language.AmericanEnglish),
		ListURL:        "/characters",
		Search:         "sky",
		DebounceMillis: 300,
	}))
	if !strings.Contains(got, `hx-trigger="input changed delay:300ms, search"`) {
		t.Fatalf("expected debounced trigger, got:\n%s", got)
	}
	if !strings.Contains(got, `value="sky"`) {
		t.Fatalf("expected search value, got:\n%s", got)
	}
}

func TestCharacterEditMarksInvalidFields(t *testing.T) {
	t.Parallel()

	got := renderString(t, CharacterEdit(CharacterEditView{
		Loc:       webi18n.Printer(language.AmericanEnglish),
		ID:        "1",
		Name:      "Luke",
		ActionURL: "/characters/1/edit",
		CancelURL: "/characters",
		Fields: []FormField{
			{Name: "name", Label: "Name", Error: "Name is required."},
			{Name: "height", Label: "Height", Value: "172"},
		},
	}))
	for _, want := range []string{`Edit Luke`, `aria-invalid="true"`, `id="field-name-error"`, `value="172"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("edit markup missing %q:\n%s", want, got)
		}
	}
}

func TestCharacterDetailMarksUnavailableRelated(t *testing.T) {
	t.Parallel()

	got := renderString(t, CharacterDetail(CharacterDetailView{
		Loc:  webi18n.Printer(language.AmericanEnglish),
		ID:   "1",
		Name: "Luke",
		Related: []RelatedGroup{{
			Label: "Films",
			Items: []RelatedItem{{Label: "A New Hope"}, {Unavailable: true}},
		}},
	}))
	if !strings.Contains(got, "A New Hope") || !strings.Contains(got, "Unavailable") {
		t.Fatalf("unexpected detail markup:\n%s", got)
	}
}

func TestAppLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.AmericanEnglish)
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>child body</p>")
		return err
	})
	ctx := templ.WithChildren(context.Background(), body)
	var buf bytes.Buffer
	err := AppLayout(LayoutOptions{
		Title: "Characters",
		Lang:  "en-US",
		Loc:   loc,
		Toast: &AppToast{Kind: "success", Message: "Saved"},
	}).Render(ctx, &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	got := buf.String()
	for _, want := range []string{`<main id="main"><p>child body</p></main>`, `<div id="overlay"`, "Characters | Character Catalog", "Saved"} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q:\n%s", want, got)
		}
	}
}

func TestAppErrorStateNormalizesStatus(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.AmericanEnglish)
	got := renderString(t, AppErrorState(http.StatusTeapot, "/characters", loc))
	if !strings.Contains(got, `data-status="500"`) {
		t.Fatalf("expected normalized status, got:\n%s", got)
	}
	if AppErrorPageTitle(http.StatusNotFound, loc) != "Not found" {
		t.Fatalf("title = %q", AppErrorPageTitle(http.StatusNotFound, loc))
	}
}

func TestCharacterListRefreshClearsOverlayOutOfBand(t *testing.T) {
	t.Parallel()

	got := renderString(t, CharacterListRefresh(CharacterListView{Loc: webi18n.Printer(language.AmericanEnglish)}))
	if !strings.Contains(got, `id="character-list"`) {
		t.Fatalf("refresh missing list region:\n%s", got)
	}
	if !strings.Contains(got, `hx-swap-oob="true"`) {
		t.Fatalf("refresh missing out-of-band overlay:\n%s", got)
	}
}
