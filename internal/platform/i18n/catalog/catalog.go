// Package catalog embeds the UI message catalogs and registers them with
// golang.org/x/text/message at init.
//
// Catalogs live at locales/<locale>/<namespace>.yaml. Every file repeats its
// locale and namespace so a misplaced file fails to load instead of silently
// shadowing another locale.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale; every other locale must translate its keys.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Set maps a locale to its flattened messages.
type Set map[string]map[string]string

func init() {
	set, err := Load(embedded)
	if err != nil {
		panic(fmt.Sprintf("load embedded catalogs: %v", err))
	}
	if err := set.Register(); err != nil {
		panic(fmt.Sprintf("register embedded catalogs: %v", err))
	}
}

// Embedded loads the catalogs compiled into the binary.
func Embedded() (Set, error) {
	return Load(embedded)
}

// Load reads every catalog file under fsys.
func Load(fsys fs.FS) (Set, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	set := Set{}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := set.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if _, ok := set[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s has no catalog", BaseLocale)
	}
	return set, nil
}

func (s Set) add(p string, f file) error {
	locale := strings.TrimSpace(f.Locale)
	if want := path.Base(path.Dir(p)); locale != want {
		return fmt.Errorf("locale %q does not match directory %q", locale, want)
	}
	namespace := strings.TrimSpace(f.Namespace)
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); namespace != want {
		return fmt.Errorf("namespace %q does not match file name %q", namespace, want)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("no messages")
	}

	messages := s[locale]
	if messages == nil {
		messages = map[string]string{}
		s[locale] = messages
	}
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("key %q must start with %q", key, namespace+".")
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("duplicate key %q", key)
		}
		messages[key] = value
	}
	return nil
}

// Locales returns the loaded locales in sorted order.
func (s Set) Locales() []string {
	out := make([]string, 0, len(s))
	for locale := range s {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Missing returns the base locale keys that locale does not translate.
func (s Set) Missing(locale string) []string {
	var out []string
	for key := range s[BaseLocale] {
		if _, ok := s[locale][key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}

// Register installs every message in the default x/text catalog, under both
// the regional tag and its base language.
func (s Set) Register() error {
	for _, locale := range s.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for key, value := range s[locale] {
			for _, t := range tags {
				if err := message.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}
