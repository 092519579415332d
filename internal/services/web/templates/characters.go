package templates

import "github.com/a-h/templ"

// Element ids targeted by HTMX swaps.
const (
	CharacterListID = "character-list"
	OverlayID       = "overlay"
)

// CharactersPageView is the list page body: the search form and the list.
type CharactersPageView struct {
	Loc            Localizer
	ListURL        string
	Search         string
	DebounceMillis int64
	List           CharacterListView
}

// CharacterListView is the swappable list region.
type CharacterListView struct {
	Loc             Localizer
	Warning         string
	Rows            []CharacterRow
	IDSort          SortLink
	NameSort        SortLink
	Pager           PagerView
	ResetURL        string
	ResetConfirmURL string
	HasOverrides    bool
}

// CharacterRow is one table row.
type CharacterRow struct {
	ID            string
	Name          string
	Height        string
	Mass          string
	BirthYear     string
	Gender        string
	Edited        bool
	DetailURL     string
	EditURL       string
	DeleteURL     string
	DeleteConfirm string
	ConfirmURL    string
}

// SortLink is a sortable column header.
type SortLink struct {
	Label  string
	URL    string
	Active bool
	Desc   bool
}

// PagerView is the page navigation below the table.
type PagerView struct {
	Summary  string
	Pages    []PageLink
	PrevURL  string
	NextURL  string
	FirstURL string
	LastURL  string
}

// PageLink is one numbered page link.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// CharacterDetailView is the read-only detail overlay.
type CharacterDetailView struct {
	Loc      Localizer
	ID       string
	Name     string
	Fields   []DetailField
	Related  []RelatedGroup
	EditURL  string
	CloseURL string
}

// DetailField is one labeled value in the detail overlay.
type DetailField struct {
	Label  string
	Value  string
	Edited bool
}

// RelatedGroup lists related entities of one kind.
type RelatedGroup struct {
	Label string
	Items []RelatedItem
}

// RelatedItem is one related entity; Unavailable marks a failed fetch.
type RelatedItem struct {
	Label       string
	Unavailable bool
}

// CharacterEditView is the edit form overlay.
type CharacterEditView struct {
	Loc       Localizer
	ID        string
	Name      string
	Fields    []FormField
	ActionURL string
	CancelURL string
	Confirm   string
}

// FormField is one input of the edit form.
type FormField struct {
	Name  string
	Label string
	Value string
	Error string
}

// ConfirmView is a confirmation dialog for a destructive action.
type ConfirmView struct {
	Loc         Localizer
	Title       string
	Message     string
	ActionURL   string
	CancelURL   string
	SubmitLabel string
}

// CharactersPage renders the list page body.
func CharactersPage(view CharactersPageView) templ.Component {
	return named("characters_page", view)
}

// CharacterList renders only the swappable list region.
func CharacterList(view CharacterListView) templ.Component {
	return named("character_list", view)
}

// CharacterListRefresh renders the list region and empties the overlay
// out of band, for responses to mutations made from an overlay.
func CharacterListRefresh(view CharacterListView) templ.Component {
	return named("character_list_refresh", view)
}

// CharacterDetail renders the detail overlay.
func CharacterDetail(view CharacterDetailView) templ.Component {
	return named("character_detail", view)
}

// CharacterEdit renders the edit form overlay.
func CharacterEdit(view CharacterEditView) templ.Component {
	return named("character_edit", view)
}

// Confirm renders a confirmation dialog.
func Confirm(view ConfirmView) templ.Component {
	return named("confirm", view)
}
