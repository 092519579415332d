package characters

import (
	"github.com/louisbranch/charactercatalog/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/charactercatalog/internal/services/web/templates"
)

// listURL always carries page and order_by: an absent value would keep the
// session's current one instead of selecting page 1 or the default sort.
func listURL(page int, search string, sort Sort) string {
	return routepath.CharactersList(routepath.ListQuery{
		Page:    max(page, 1),
		Search:  search,
		OrderBy: sort.normalized().OrderBy(),
	})
}

func mapCharactersPageView(result listResult, debounceMillis int64, loc webtemplates.Localizer) webtemplates.CharactersPageView {
	return webtemplates.CharactersPageView{
		Loc:            loc,
		ListURL:        routepath.Characters,
		Search:         result.Search,
		DebounceMillis: debounceMillis,
		List:           mapCharacterListView(result, loc),
	}
}

func mapCharacterListView(result listResult, loc webtemplates.Localizer) webtemplates.CharacterListView {
	view := webtemplates.CharacterListView{
		Loc:             loc,
		Rows:            make([]webtemplates.CharacterRow, 0, len(result.Records)),
		IDSort:          mapSortLink(result, SortByID, webtemplates.T(loc, "web.characters.field.id")),
		NameSort:        mapSortLink(result, SortByName, webtemplates.T(loc, "web.characters.field.name")),
		Pager:           mapPagerView(result, loc),
		ResetURL:        routepath.CharactersReset,
		ResetConfirmURL: routepath.CharactersReset,
		HasOverrides:    result.HasOverrides,
	}
	if result.Unavailable {
		view.Warning = webtemplates.T(loc, "web.characters.warning_unavailable")
	}
	for _, record := range result.Records {
		view.Rows = append(view.Rows, webtemplates.CharacterRow{
			ID:            record.ID,
			Name:          record.Name,
			Height:        record.Height,
			Mass:          record.Mass,
			BirthYear:     record.BirthYear,
			Gender:        record.Gender,
			Edited:        record.LocallyEdited,
			DetailURL:     routepath.Character(record.ID),
			EditURL:       routepath.CharacterEdit(record.ID),
			DeleteURL:     routepath.CharacterDelete(record.ID),
			ConfirmURL:    routepath.CharacterDelete(record.ID),
			DeleteConfirm: webtemplates.T(loc, "web.characters.confirm_delete", record.Name),
		})
	}
	return view
}

func mapSortLink(result listResult, key SortKey, label string) webtemplates.SortLink {
	active := result.Sort.normalized().Key == key
	return webtemplates.SortLink{
		Label:  label,
		URL:    listURL(result.Window.Current, result.Search, ToggleSort(result.Sort, key)),
		Active: active,
		Desc:   active && result.Sort.Desc,
	}
}

func mapPagerView(result listResult, loc webtemplates.Localizer) webtemplates.PagerView {
	window := result.Window
	pageURL := func(page int) string {
		return listURL(page, result.Search, result.Sort)
	}
	view := webtemplates.PagerView{
		Summary: webtemplates.T(loc, "web.characters.summary_empty"),
		Pages:   make([]webtemplates.PageLink, 0, len(window.Pages)),
	}
	if window.TotalCount > 0 {
		view.Summary = webtemplates.T(loc, "web.characters.summary", window.Current, window.TotalPages, window.TotalCount)
	}
	for _, page := range window.Pages {
		view.Pages = append(view.Pages, webtemplates.PageLink{
			Number:  page,
			URL:     pageURL(page),
			Current: page == window.Current,
		})
	}
	if window.HasPrev {
		view.PrevURL = pageURL(window.Current - 1)
	}
	if window.HasNext {
		view.NextURL = pageURL(window.Current + 1)
	}
	if window.ShowFirst() {
		view.FirstURL = pageURL(1)
	}
	if window.ShowLast() {
		view.LastURL = pageURL(window.TotalPages)
	}
	return view
}

func mapCharacterDetailView(detail characterDetail, loc webtemplates.Localizer) webtemplates.CharacterDetailView {
	record := detail.Character
	edit := detail.Edit
	values := editFromCharacter(record)
	view := webtemplates.CharacterDetailView{
		Loc:      loc,
		ID:       record.ID,
		Name:     record.Name,
		EditURL:  routepath.CharacterEdit(record.ID),
		CloseURL: routepath.Characters,
		Related:  make([]webtemplates.RelatedGroup, 0, len(detail.Related)),
	}
	for _, field := range editFields[1:] {
		view.Fields = append(view.Fields, webtemplates.DetailField{
			Label:  webtemplates.T(loc, field.LabelKey),
			Value:  *field.get(&values),
			Edited: *field.get(&edit) != "",
		})
	}
	for _, group := range detail.Related {
		items := make([]webtemplates.RelatedItem, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, webtemplates.RelatedItem{Label: item.Label, Unavailable: item.Unavailable})
		}
		view.Related = append(view.Related, webtemplates.RelatedGroup{
			Label: webtemplates.T(loc, "web.characters.related."+string(group.Kind)),
			Items: items,
		})
	}
	return view
}

func mapCharacterEditView(record Character, values CharacterEdit, validation *ValidationError, loc webtemplates.Localizer) webtemplates.CharacterEditView {
	view := webtemplates.CharacterEditView{
		Loc:       loc,
		ID:        record.ID,
		Name:      record.Name,
		ActionURL: routepath.CharacterEdit(record.ID),
		CancelURL: routepath.Characters,
		Confirm:   webtemplates.T(loc, "web.characters.confirm_edit", record.Name),
		Fields:    make([]webtemplates.FormField, 0, len(editFields)),
	}
	for _, field := range editFields {
		formField := webtemplates.FormField{
			Name:  field.Name,
			Label: webtemplates.T(loc, field.LabelKey),
			Value: *field.get(&values),
		}
		if validation != nil {
			if fieldErr, ok := validation.Fields[field.Name]; ok {
				formField.Error = localizeFieldError(fieldErr, loc)
			}
		}
		view.Fields = append(view.Fields, formField)
	}
	return view
}

func localizeFieldError(fieldErr fieldError, loc webtemplates.Localizer) string {
	label := webtemplates.T(loc, fieldErr.LabelKey)
	if fieldErr.Limit > 0 {
		return webtemplates.T(loc, fieldErr.Key, label, fieldErr.Limit)
	}
	return webtemplates.T(loc, fieldErr.Key, label)
}

func mapDeleteConfirmView(record Character, loc webtemplates.Localizer) webtemplates.ConfirmView {
	return webtemplates.ConfirmView{
		Loc:         loc,
		Title:       webtemplates.T(loc, "web.characters.delete_title"),
		Message:     webtemplates.T(loc, "web.characters.confirm_delete", record.Name),
		ActionURL:   routepath.CharacterDelete(record.ID),
		CancelURL:   routepath.Characters,
		SubmitLabel: webtemplates.T(loc, "web.characters.delete"),
	}
}

func mapResetConfirmView(loc webtemplates.Localizer) webtemplates.ConfirmView {
	return webtemplates.ConfirmView{
		Loc:         loc,
		Title:       webtemplates.T(loc, "web.characters.reset_title"),
		Message:     webtemplates.T(loc, "web.characters.confirm_reset"),
		ActionURL:   routepath.CharactersReset,
		CancelURL:   routepath.Characters,
		SubmitLabel: webtemplates.T(loc, "web.characters.reset"),
	}
}
