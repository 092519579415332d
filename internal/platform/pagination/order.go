package pagination

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/ordering"
)

// OrderByConfig configures order_by validation.
type OrderByConfig struct {
	// Default is used when order_by is blank, in order_by syntax.
	Default string
	// Allowed lists the field paths that may be ordered on.
	Allowed []string
}

// Order is one parsed ordering directive.
type Order struct {
	Path string
	Desc bool
}

// String renders o in AIP-132 order_by syntax.
func (o Order) String() string {
	if o.Desc {
		return o.Path + " desc"
	}
	return o.Path
}

// NormalizeOrderBy validates order_by and applies defaults, returning the
// canonical order_by string.
func NormalizeOrderBy(orderBy string, cfg OrderByConfig) (string, error) {
	order, err := ParseOrderBy(orderBy, cfg)
	if err != nil {
		return "", err
	}
	return order.String(), nil
}

// ParseOrderBy parses a single-field AIP-132 order_by value such as
// "name desc" and validates the field against cfg.Allowed.
func ParseOrderBy(orderBy string, cfg OrderByConfig) (Order, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		orderBy = strings.TrimSpace(cfg.Default)
	}
	if orderBy == "" {
		return Order{}, fmt.Errorf("order_by is required")
	}
	var parsed ordering.OrderBy
	if err := parsed.UnmarshalString(orderBy); err != nil {
		return Order{}, fmt.Errorf("invalid order_by %q: %w", orderBy, err)
	}
	if len(parsed.Fields) != 1 {
		return Order{}, fmt.Errorf("invalid order_by %q: exactly one field is supported", orderBy)
	}
	if len(cfg.Allowed) > 0 {
		if err := parsed.ValidateForPaths(cfg.Allowed...); err != nil {
			return Order{}, fmt.Errorf("invalid order_by %q: %w", orderBy, err)
		}
	}
	field := parsed.Fields[0]
	return Order{Path: field.Path, Desc: field.Desc}, nil
}
