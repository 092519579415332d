// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root                    = "/"
	Health                  = "/up"
	StaticPrefix            = "/static/"
	Characters              = "/characters"
	CharactersPrefix        = "/characters/"
	CharacterPattern        = CharactersPrefix + "{characterID}"
	CharacterEditPattern    = CharactersPrefix + "{characterID}/edit"
	CharacterDeletePattern  = CharactersPrefix + "{characterID}/delete"
	CharactersReset         = CharactersPrefix + "reset"
	CharactersPageQueryKey  = "page"
	CharactersSearchKey     = "search"
	CharactersOrderByKey    = "order_by"
	CharactersSortToggleKey = "sort"
)

// ListQuery carries the list state encoded in list URLs.
type ListQuery struct {
	Page    int
	Search  string
	OrderBy string
	Toggle  string
}

// CharactersList returns the list route for q, omitting zero values. A
// missing page or order_by keeps the session's current value, so links that
// must land on page 1 or the default sort set them explicitly.
func CharactersList(q ListQuery) string {
	values := url.Values{}
	if q.Page > 0 {
		values.Set(CharactersPageQueryKey, strconv.Itoa(q.Page))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set(CharactersSearchKey, search)
	}
	if orderBy := strings.TrimSpace(q.OrderBy); orderBy != "" {
		values.Set(CharactersOrderByKey, orderBy)
	}
	if toggle := strings.TrimSpace(q.Toggle); toggle != "" {
		values.Set(CharactersSortToggleKey, toggle)
	}
	if len(values) == 0 {
		return Characters
	}
	return Characters + "?" + values.Encode()
}

// Character returns the character detail route.
func Character(characterID string) string {
	return CharactersPrefix + escapeSegment(characterID)
}

// CharacterEdit returns the character edit route.
func CharacterEdit(characterID string) string {
	return Character(characterID) + "/edit"
}

// CharacterDelete returns the character delete route.
func CharacterDelete(characterID string) string {
	return Character(characterID) + "/delete"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
