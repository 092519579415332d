package characters

// Overrides holds the session-local deletions and field edits applied on
// top of fetched records. They are never sent upstream.
type Overrides struct {
	deleted map[string]struct{}
	edits   map[string]CharacterEdit
}

// NewOverrides returns empty overrides.
func NewOverrides() *Overrides {
	return &Overrides{
		deleted: map[string]struct{}{},
		edits:   map[string]CharacterEdit{},
	}
}

// Delete hides id from every rendered list until Reset and drops its edit.
func (o *Overrides) Delete(id string) {
	if id == "" {
		return
	}
	o.deleted[id] = struct{}{}
	delete(o.edits, id)
}

// Edit replaces the overlay stored for id. A zero edit removes it.
func (o *Overrides) Edit(id string, edit CharacterEdit) {
	if id == "" {
		return
	}
	if edit.IsZero() {
		delete(o.edits, id)
		return
	}
	o.edits[id] = edit
}

// IsDeleted reports whether id was deleted in this session.
func (o *Overrides) IsDeleted(id string) bool {
	_, ok := o.deleted[id]
	return ok
}

// EditFor returns the overlay stored for id.
func (o *Overrides) EditFor(id string) (CharacterEdit, bool) {
	edit, ok := o.edits[id]
	return edit, ok
}

// ApplyOne merges the overlay for c. It reports false when c is deleted.
func (o *Overrides) ApplyOne(c Character) (Character, bool) {
	if o.IsDeleted(c.ID) {
		return Character{}, false
	}
	if edit, ok := o.edits[c.ID]; ok {
		c = edit.applyTo(c)
	}
	return c, true
}

// Apply filters deleted records and merges edit overlays. The input slice is
// not modified.
func (o *Overrides) Apply(records []Character) []Character {
	out := make([]Character, 0, len(records))
	for _, record := range records {
		if merged, ok := o.ApplyOne(record); ok {
			out = append(out, merged)
		}
	}
	return out
}

// Reset clears deletions and edits.
func (o *Overrides) Reset() {
	clear(o.deleted)
	clear(o.edits)
}

// Empty reports whether no override is stored.
func (o *Overrides) Empty() bool {
	return len(o.deleted) == 0 && len(o.edits) == 0
}
