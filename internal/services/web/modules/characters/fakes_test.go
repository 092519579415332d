package characters

import (
	"context"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
)

// fakeGateway implements CharacterGateway for tests with per-page results,
// error injection, and call counters.
type fakeGateway struct {
	mu sync.Mutex

	pages      map[listKey]CharacterPage
	listErr    error
	records    map[string]Character
	related    map[string]RelatedEntity
	relatedErr error

	listCalls    []listKey
	getCalls     int
	relatedCalls int
}

type listKey struct {
	Page   int
	Search string
}

var _ CharacterGateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		pages:   map[listKey]CharacterPage{},
		records: map[string]Character{},
		related: map[string]RelatedEntity{},
	}
}

// withPage stores records as page for search, with count as the total.
func (f *fakeGateway) withPage(page int, search string, count int, records ...Character) *fakeGateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[listKey{Page: page, Search: search}] = CharacterPage{
		Count:   count,
		HasPrev: page > 1,
		HasNext: page*upstreamPageSize < count,
		Results: records,
	}
	for _, record := range records {
		f.records[record.ID] = record
	}
	return f
}

func (f *fakeGateway) failLists(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeGateway) ListCharacters(_ context.Context, page int, search string) (CharacterPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := listKey{Page: page, Search: search}
	f.listCalls = append(f.listCalls, key)
	if f.listErr != nil {
		return CharacterPage{}, f.listErr
	}
	result, ok := f.pages[key]
	if !ok {
		return CharacterPage{}, apperrors.EK(apperrors.KindNotFound, notFoundKey, "page not found")
	}
	return result, nil
}

func (f *fakeGateway) GetCharacter(_ context.Context, id string) (Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	record, ok := f.records[id]
	if !ok {
		return Character{}, apperrors.EK(apperrors.KindNotFound, notFoundKey, "character not found")
	}
	return record, nil
}

func (f *fakeGateway) GetRelated(_ context.Context, url string) (RelatedEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relatedCalls++
	if f.relatedErr != nil {
		return RelatedEntity{}, f.relatedErr
	}
	entity, ok := f.related[url]
	if !ok {
		return RelatedEntity{}, apperrors.EK(apperrors.KindUnavailable, unavailableKey, "related record missing")
	}
	return entity, nil
}

func (f *fakeGateway) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func (f *fakeGateway) relatedCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.relatedCalls
}

func testCharacter(id int, name string) Character {
	return Character{
		ID:        strconv.Itoa(id),
		Name:      name,
		Height:    "172",
		Mass:      "77",
		HairColor: "blond",
		SkinColor: "fair",
		EyeColor:  "blue",
		BirthYear: "19BBY",
		Gender:    "male",
	}
}

// firstPage returns the standard ten-record first page of an 82 record catalog.
func firstPage() []Character {
	names := []string{
		"Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader", "Leia Organa",
		"Owen Lars", "Beru Whitesun lars", "R5-D4", "Biggs Darklighter", "Obi-Wan Kenobi",
	}
	records := make([]Character, 0, len(names))
	for idx, name := range names {
		records = append(records, testCharacter(idx+1, name))
	}
	return records
}

func recordIDs(records []Character) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}

func ptrTo[T any](value T) *T {
	return &value
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
