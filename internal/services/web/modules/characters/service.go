package characters

import (
	"context"
	"strings"

	"github.com/louisbranch/charactercatalog/internal/platform/pagination"
	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultRelatedConcurrency bounds concurrent related-entity fetches.
const DefaultRelatedConcurrency = 4

// listRequest is one list action. Nil or zero fields keep the session value.
type listRequest struct {
	Page   int
	Search *string
	Sort   *Sort
	Toggle SortKey
}

// listResult is the rendered state of the list after one action.
type listResult struct {
	Records      []Character
	Window       pagination.Window
	Search       string
	Sort         Sort
	Unavailable  bool
	HasOverrides bool
}

type relatedKind string

const (
	relatedHomeworld relatedKind = "homeworld"
	relatedFilms     relatedKind = "films"
	relatedSpecies   relatedKind = "species"
	relatedVehicles  relatedKind = "vehicles"
	relatedStarships relatedKind = "starships"
)

type relatedItem struct {
	URL         string
	Label       string
	Unavailable bool
}

type relatedGroup struct {
	Kind  relatedKind
	Items []relatedItem
}

// characterDetail is a merged record, the overlay merged into it, and its
// resolved related entities.
type characterDetail struct {
	Character Character
	Edit      CharacterEdit
	Related   []relatedGroup
}

type service struct {
	gateway            CharacterGateway
	relatedConcurrency int
	logger             *zap.Logger
}

func newService(gateway CharacterGateway, relatedConcurrency int, logger *zap.Logger) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if relatedConcurrency <= 0 {
		relatedConcurrency = DefaultRelatedConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return service{gateway: gateway, relatedConcurrency: relatedConcurrency, logger: logger}
}

// list applies one list action to sess. An upstream failure is not returned:
// the result falls back to the last-good page and is marked unavailable.
func (s service) list(ctx context.Context, sess *session, req listRequest) listResult {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	search := sess.search
	if req.Search != nil {
		search = strings.TrimSpace(*req.Search)
	}
	page := req.Page
	if search != sess.search {
		page = 1
	} else if page <= 0 {
		page = sess.page
	}
	page = clampToKnownPages(sess.lastGood, page, search)

	switch {
	case req.Sort != nil:
		sess.sort = req.Sort.normalized()
	case req.Toggle != "":
		sess.sort = ToggleSort(sess.sort, req.Toggle)
	}

	unavailable := false
	if !sess.lastGood.matches(page, search) {
		unavailable = s.fetchLocked(ctx, sess, page, search) != nil
	}
	return s.resultLocked(sess, unavailable)
}

// reset clears every override and re-fetches the current page.
func (s service) reset(ctx context.Context, sess *session) listResult {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.overrides.Reset()
	unavailable := s.fetchLocked(ctx, sess, sess.page, sess.search) != nil
	return s.resultLocked(sess, unavailable)
}

// character returns the merged record for id and the overlay merged into it.
func (s service) character(ctx context.Context, sess *session, id string) (Character, CharacterEdit, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	base, err := s.lookupLocked(ctx, sess, id)
	if err != nil {
		return Character{}, CharacterEdit{}, err
	}
	merged, _ := sess.overrides.ApplyOne(base)
	edit, _ := sess.overrides.EditFor(base.ID)
	return merged, edit, nil
}

// detail returns the merged record for id with one fetch per related URL.
// Related failures are logged and rendered as unavailable slots. The session
// is not locked while related entities load.
func (s service) detail(ctx context.Context, sess *session, id string) (characterDetail, error) {
	record, edit, err := s.character(ctx, sess, id)
	if err != nil {
		return characterDetail{}, err
	}
	return characterDetail{Character: record, Edit: edit, Related: s.fetchRelated(ctx, record)}, nil
}

// edit validates input and stores the fields that differ from the fetched
// record as the overlay for id. On validation failure the current merged
// record is returned with a ValidationError.
func (s service) edit(ctx context.Context, sess *session, id string, input CharacterEdit) (Character, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	base, err := s.lookupLocked(ctx, sess, id)
	if err != nil {
		return Character{}, err
	}
	normalized, err := validateEdit(input)
	if err != nil {
		merged, _ := sess.overrides.ApplyOne(base)
		return merged, err
	}
	sess.overrides.Edit(base.ID, normalized.diff(base))
	merged, _ := sess.overrides.ApplyOne(base)
	return merged, nil
}

// delete hides id for the rest of the session and returns the record as it
// was last rendered.
func (s service) delete(ctx context.Context, sess *session, id string) (Character, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	base, err := s.lookupLocked(ctx, sess, id)
	if err != nil {
		return Character{}, err
	}
	merged, _ := sess.overrides.ApplyOne(base)
	sess.overrides.Delete(base.ID)
	return merged, nil
}

func (s service) fetchLocked(ctx context.Context, sess *session, page int, search string) error {
	result, err := s.gateway.ListCharacters(ctx, page, search)
	if err != nil {
		s.logger.Warn("upstream request failed",
			zap.String("operation", "list_characters"),
			zap.Int("page", page),
			zap.String("search", search),
			zap.Error(err),
		)
		if sess.lastGood == nil {
			sess.page, sess.search = page, search
		}
		return err
	}
	sess.lastGood = &pageSnapshot{
		Page:    page,
		Search:  search,
		Count:   result.Count,
		HasNext: result.HasNext,
		HasPrev: result.HasPrev,
		Records: result.Results,
	}
	sess.page, sess.search = page, search
	return nil
}

func (s service) resultLocked(sess *session, unavailable bool) listResult {
	result := listResult{
		Search:       sess.search,
		Sort:         sess.sort,
		Unavailable:  unavailable,
		HasOverrides: !sess.overrides.Empty(),
	}
	page, count := sess.page, 0
	if snap := sess.lastGood; snap != nil {
		page, count = snap.Page, snap.Count
		result.Search = snap.Search
		result.Records = SortCharacters(sess.overrides.Apply(snap.Records), sess.sort)
	}
	result.Window = pagination.NewWindow(page, count, upstreamPageSize, pagination.DefaultSpan)
	return result
}

// lookupLocked finds the fetched record for id, preferring the last-good
// page over an upstream call. Deleted records are not found.
func (s service) lookupLocked(ctx context.Context, sess *session, id string) (Character, error) {
	id = strings.TrimSpace(id)
	if id == "" || sess.overrides.IsDeleted(id) {
		return Character{}, apperrors.EK(apperrors.KindNotFound, notFoundKey, "character not found")
	}
	if snap := sess.lastGood; snap != nil {
		for _, record := range snap.Records {
			if record.ID == id {
				return record, nil
			}
		}
	}
	record, err := s.gateway.GetCharacter(ctx, id)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			s.logger.Warn("upstream request failed",
				zap.String("operation", "get_character"),
				zap.String("character_id", id),
				zap.Error(err),
			)
		}
		return Character{}, err
	}
	return record, nil
}

func (s service) fetchRelated(ctx context.Context, record Character) []relatedGroup {
	sources := []struct {
		kind relatedKind
		urls []string
	}{
		{kind: relatedHomeworld, urls: nonBlank(record.Homeworld)},
		{kind: relatedFilms, urls: nonBlank(record.Films...)},
		{kind: relatedSpecies, urls: nonBlank(record.Species...)},
		{kind: relatedVehicles, urls: nonBlank(record.Vehicles...)},
		{kind: relatedStarships, urls: nonBlank(record.Starships...)},
	}

	groups := make([]relatedGroup, 0, len(sources))
	for _, source := range sources {
		if len(source.urls) == 0 {
			continue
		}
		groups = append(groups, relatedGroup{Kind: source.kind, Items: make([]relatedItem, len(source.urls))})
		for idx, u := range source.urls {
			groups[len(groups)-1].Items[idx].URL = u
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.relatedConcurrency)
	for gi := range groups {
		for ii := range groups[gi].Items {
			slot := &groups[gi].Items[ii]
			eg.Go(func() error {
				entity, err := s.gateway.GetRelated(egCtx, slot.URL)
				if err != nil {
					s.logger.Warn("related fetch failed",
						zap.String("operation", "get_related"),
						zap.String("character_id", record.ID),
						zap.String("url", slot.URL),
						zap.Error(err),
					)
					slot.Unavailable = true
					return nil
				}
				slot.Label = entity.Label
				return nil
			})
		}
	}
	_ = eg.Wait()
	return groups
}

func (snap *pageSnapshot) matches(page int, search string) bool {
	return snap != nil && snap.Page == page && snap.Search == search
}

// clampToKnownPages keeps page within the page count last seen for search.
func clampToKnownPages(snap *pageSnapshot, page int, search string) int {
	if snap == nil || snap.Search != search {
		return max(page, 1)
	}
	return pagination.ClampPage(page, pagination.TotalPages(snap.Count, upstreamPageSize))
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
