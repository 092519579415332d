package characters

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/louisbranch/charactercatalog/internal/platform/pagination"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortByID   SortKey = "id"
	SortByName SortKey = "name"
)

// Sort is the client-side ordering of a rendered page.
type Sort struct {
	Key  SortKey
	Desc bool
}

// DefaultSort orders by id ascending, which is the upstream order.
var DefaultSort = Sort{Key: SortByID}

var orderByConfig = pagination.OrderByConfig{
	Default: string(SortByID),
	Allowed: []string{string(SortByID), string(SortByName)},
}

// ParseSortKey returns the sort key for raw, if it names one.
func ParseSortKey(raw string) (SortKey, bool) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortByID, SortByName:
		return key, true
	default:
		return "", false
	}
}

// ParseSort parses an order_by value such as "name desc".
func ParseSort(raw string) (Sort, error) {
	order, err := pagination.ParseOrderBy(raw, orderByConfig)
	if err != nil {
		return Sort{}, err
	}
	key, ok := ParseSortKey(order.Path)
	if !ok {
		return DefaultSort, nil
	}
	return Sort{Key: key, Desc: order.Desc}, nil
}

// OrderBy formats s as an order_by value.
func (s Sort) OrderBy() string {
	return pagination.Order{Path: string(s.normalized().Key), Desc: s.Desc}.String()
}

func (s Sort) normalized() Sort {
	if _, ok := ParseSortKey(string(s.Key)); !ok {
		return Sort{Key: DefaultSort.Key, Desc: s.Desc}
	}
	return s
}

// ToggleSort flips the direction when key is already active and otherwise
// selects key ascending.
func ToggleSort(current Sort, key SortKey) Sort {
	current = current.normalized()
	if current.Key == key {
		return Sort{Key: key, Desc: !current.Desc}
	}
	return Sort{Key: key}
}

// SortCharacters returns a sorted copy of records. Records with equal keys
// keep their fetched order in both directions.
func SortCharacters(records []Character, s Sort) []Character {
	out := slices.Clone(records)
	s = s.normalized()
	compare := compareByID
	if s.Key == SortByName {
		compare = compareByName
	}
	if s.Desc {
		asc := compare
		compare = func(a, b Character) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func compareByID(a, b Character) int {
	left, leftErr := strconv.Atoi(a.ID)
	right, rightErr := strconv.Atoi(b.ID)
	switch {
	case leftErr == nil && rightErr == nil:
		return cmp.Compare(left, right)
	case leftErr == nil:
		return -1
	case rightErr == nil:
		return 1
	default:
		return strings.Compare(a.ID, b.ID)
	}
}

func compareByName(a, b Character) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
