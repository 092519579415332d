package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func catalogFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestEmbeddedLocales(t *testing.T) {
	t.Parallel()

	set, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	if diff := cmp.Diff([]string{"en-US", "pt-BR"}, set.Locales()); diff != "" {
		t.Fatalf("Locales() mismatch (-want +got):\n%s", diff)
	}
	for _, locale := range set.Locales() {
		if missing := set.Missing(locale); len(missing) > 0 {
			t.Errorf("locale %s is missing keys %v", locale, missing)
		}
	}
}

func TestEmbeddedMessagesRegistered(t *testing.T) {
	t.Parallel()

	set, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	for _, tc := range []struct {
		tag    language.Tag
		locale string
	}{
		{tag: language.MustParse("en-US"), locale: "en-US"},
		{tag: language.MustParse("pt-BR"), locale: "pt-BR"},
		{tag: language.Portuguese, locale: "pt-BR"},
	} {
		p := message.NewPrinter(tc.tag)
		want := set[tc.locale]["web.characters.title"]
		if got := p.Sprintf("web.characters.title"); got != want {
			t.Fatalf("%s title = %q, want %q", tc.tag, got, want)
		}
	}
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	base := `locale: "en-US"
namespace: "core"
messages:
  "core.app_name": "Catalog"
`
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "no files", files: map[string]string{}},
		{name: "malformed yaml", files: map[string]string{
			"locales/en-US/core.yaml": "locale: \"en-US\"\nmessages: [unterminated\n",
		}},
		{name: "locale mismatch", files: map[string]string{
			"locales/en-US/core.yaml": `locale: "pt-BR"
namespace: "core"
messages:
  "core.app_name": "Catálogo"
`,
		}},
		{name: "namespace mismatch", files: map[string]string{
			"locales/en-US/core.yaml": `locale: "en-US"
namespace: "web"
messages:
  "web.title": "Catalog"
`,
		}},
		{name: "key outside namespace", files: map[string]string{
			"locales/en-US/core.yaml": base,
			"locales/en-US/web.yaml": `locale: "en-US"
namespace: "web"
messages:
  "core.bad": "nope"
`,
		}},
		{name: "empty messages", files: map[string]string{
			"locales/en-US/core.yaml": "locale: \"en-US\"\nnamespace: \"core\"\nmessages: {}\n",
		}},
		{name: "missing base locale", files: map[string]string{
			"locales/pt-BR/core.yaml": `locale: "pt-BR"
namespace: "core"
messages:
  "core.app_name": "Catálogo"
`,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Load(catalogFS(tc.files)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMissingListsUntranslatedKeys(t *testing.T) {
	t.Parallel()

	set, err := Load(catalogFS(map[string]string{
		"locales/en-US/core.yaml": `locale: "en-US"
namespace: "core"
messages:
  "core.a": "A"
  "core.b": "B"
`,
		"locales/pt-BR/core.yaml": `locale: "pt-BR"
namespace: "core"
messages:
  "core.a": "A"
`,
	}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"core.b"}, set.Missing("pt-BR")); diff != "" {
		t.Fatalf("Missing() mismatch (-want +got):\n%s", diff)
	}
}
