package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/charactercatalog/internal/services/web/module"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/sessioncookie"
)

// ComposeInput carries modules and shared composition contracts.
type ComposeInput struct {
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	// HasSession reports whether a request carries a session cookie. Cookie
	// bearing mutations must prove same-origin. Defaults to a cookie check.
	HasSession func(*http.Request) bool
}

// Compose builds a root HTTP handler from modules.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.HasSession == nil {
		input.HasSession = hasSessionCookie
	}
	wrap := httpx.RequireSameOrigin(input.RequestSchemePolicy, input.HasSession)
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		if err := mountFeature(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func mountFeature(root *http.ServeMux, feature module.Module, seen map[string]string, wrap httpx.Middleware) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := slashlessPrefixAlias(prefix); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap httpx.Middleware,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if prefix == "/" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: root prefix is reserved", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// slashlessPrefixAlias returns "/characters" for "/characters/" so the
// module root is served without a redirect.
func slashlessPrefixAlias(prefix string) string {
	alias := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	if alias == "" || alias == prefix {
		return ""
	}
	return alias
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
