package characters

import (
	"path"
	"strings"
	"time"
	"unicode/utf8"
)

// Character is one record from the upstream catalog, optionally carrying a
// session-local edit overlay.
type Character struct {
	ID        string
	Name      string
	Height    string
	Mass      string
	HairColor string
	SkinColor string
	EyeColor  string
	BirthYear string
	Gender    string
	Homeworld string
	Films     []string
	Species   []string
	Vehicles  []string
	Starships []string
	CreatedAt time.Time
	EditedAt  time.Time

	// LocallyEdited reports that an overlay was merged over fetched values.
	LocallyEdited bool
}

// CharacterPage is one upstream list page.
type CharacterPage struct {
	Count   int
	HasNext bool
	HasPrev bool
	Results []Character
}

// CharacterEdit holds locally edited field values; blank fields are not
// overlaid.
type CharacterEdit struct {
	Name      string
	Height    string
	Mass      string
	HairColor string
	SkinColor string
	EyeColor  string
	BirthYear string
	Gender    string
}

// IsZero reports whether the edit overlays nothing.
func (e CharacterEdit) IsZero() bool {
	return e == CharacterEdit{}
}

// applyTo merges the non-blank edit fields over c.
func (e CharacterEdit) applyTo(c Character) Character {
	overlay := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	overlay(&c.Name, e.Name)
	overlay(&c.Height, e.Height)
	overlay(&c.Mass, e.Mass)
	overlay(&c.HairColor, e.HairColor)
	overlay(&c.SkinColor, e.SkinColor)
	overlay(&c.EyeColor, e.EyeColor)
	overlay(&c.BirthYear, e.BirthYear)
	overlay(&c.Gender, e.Gender)
	if !e.IsZero() {
		c.LocallyEdited = true
	}
	return c
}

// diff keeps only the fields of e that differ from the fetched record.
func (e CharacterEdit) diff(base Character) CharacterEdit {
	keep := func(value, fetched string) string {
		if value == fetched {
			return ""
		}
		return value
	}
	return CharacterEdit{
		Name:      keep(e.Name, base.Name),
		Height:    keep(e.Height, base.Height),
		Mass:      keep(e.Mass, base.Mass),
		HairColor: keep(e.HairColor, base.HairColor),
		SkinColor: keep(e.SkinColor, base.SkinColor),
		EyeColor:  keep(e.EyeColor, base.EyeColor),
		BirthYear: keep(e.BirthYear, base.BirthYear),
		Gender:    keep(e.Gender, base.Gender),
	}
}

// editField names one editable field for forms and validation.
type editField struct {
	Name     string
	LabelKey string
	get      func(*CharacterEdit) *string
}

// maxFieldRunes bounds every edited value.
const maxFieldRunes = 100

var editFields = []editField{
	{Name: "name", LabelKey: "web.characters.field.name", get: func(e *CharacterEdit) *string { return &e.Name }},
	{Name: "height", LabelKey: "web.characters.field.height", get: func(e *CharacterEdit) *string { return &e.Height }},
	{Name: "mass", LabelKey: "web.characters.field.mass", get: func(e *CharacterEdit) *string { return &e.Mass }},
	{Name: "hair_color", LabelKey: "web.characters.field.hair_color", get: func(e *CharacterEdit) *string { return &e.HairColor }},
	{Name: "skin_color", LabelKey: "web.characters.field.skin_color", get: func(e *CharacterEdit) *string { return &e.SkinColor }},
	{Name: "eye_color", LabelKey: "web.characters.field.eye_color", get: func(e *CharacterEdit) *string { return &e.EyeColor }},
	{Name: "birth_year", LabelKey: "web.characters.field.birth_year", get: func(e *CharacterEdit) *string { return &e.BirthYear }},
	{Name: "gender", LabelKey: "web.characters.field.gender", get: func(e *CharacterEdit) *string { return &e.Gender }},
}

// editFromCharacter returns the editable values of c.
func editFromCharacter(c Character) CharacterEdit {
	return CharacterEdit{
		Name:      c.Name,
		Height:    c.Height,
		Mass:      c.Mass,
		HairColor: c.HairColor,
		SkinColor: c.SkinColor,
		EyeColor:  c.EyeColor,
		BirthYear: c.BirthYear,
		Gender:    c.Gender,
	}
}

// fieldError is a localized validation failure for one form field.
type fieldError struct {
	Key      string
	LabelKey string
	Limit    int
}

// ValidationError reports invalid edit form input per field.
type ValidationError struct {
	Fields map[string]fieldError
}

func (e ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, field := range editFields {
		if _, ok := e.Fields[field.Name]; ok {
			names = append(names, field.Name)
		}
	}
	return "invalid character edit: " + strings.Join(names, ", ")
}

// validateEdit trims every field and checks the form constraints.
func validateEdit(input CharacterEdit) (CharacterEdit, error) {
	errs := map[string]fieldError{}
	for _, field := range editFields {
		value := field.get(&input)
		*value = strings.TrimSpace(*value)
		if utf8.RuneCountInString(*value) > maxFieldRunes {
			errs[field.Name] = fieldError{Key: "errors.validation.too_long", LabelKey: field.LabelKey, Limit: maxFieldRunes}
		}
	}
	if input.Name == "" {
		errs["name"] = fieldError{Key: "errors.validation.required", LabelKey: "web.characters.field.name"}
	}
	if len(errs) > 0 {
		return input, ValidationError{Fields: errs}
	}
	return input, nil
}

// idFromURL derives the stable record id from the trailing path segment of
// an upstream resource URL.
func idFromURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	id := path.Base(trimmed)
	if id == "." || id == "/" || strings.Contains(id, ":") {
		return ""
	}
	return id
}
