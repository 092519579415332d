package characters

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/charactercatalog/internal/services/web/platform/flash"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/charactercatalog/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/charactercatalog/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/charactercatalog/internal/services/web/templates"
	"go.uber.org/zap"
)

// characterService defines the service operations used by character handlers.
type characterService interface {
	list(ctx context.Context, sess *session, req listRequest) listResult
	reset(ctx context.Context, sess *session) listResult
	character(ctx context.Context, sess *session, id string) (Character, CharacterEdit, error)
	detail(ctx context.Context, sess *session, id string) (characterDetail, error)
	edit(ctx context.Context, sess *session, id string, input CharacterEdit) (Character, error)
	delete(ctx context.Context, sess *session, id string) (Character, error)
}

type handlers struct {
	modulehandler.Base
	service  characterService
	sessions *Store
	debounce time.Duration
	policy   requestmeta.SchemePolicy
}

func newHandlers(s characterService, sessions *Store, debounce time.Duration, policy requestmeta.SchemePolicy, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s, sessions: sessions, debounce: debounce, policy: policy}
}

// openSession resolves the session for the request and refreshes its cookie.
func (h handlers) openSession(w http.ResponseWriter, r *http.Request) *session {
	id, _ := sessioncookie.Read(r)
	sess, created := h.sessions.open(id)
	if created && id != "" {
		h.Logger().Debug("session replaced", zap.String("request_id", httpx.RequestIDFrom(r)))
	}
	sessioncookie.WriteWithPolicy(w, r, sess.id, h.sessions.TTL(), h.policy)
	return sess
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r.URL.Query())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	result := h.service.list(r.Context(), sess, req)
	h.writeList(w, r, result, loc)
}

func (h handlers) writeList(w http.ResponseWriter, r *http.Request, result listResult, loc webtemplates.Localizer) {
	title := webtemplates.T(loc, "web.characters.title")
	if httpx.HTMXTarget(r) == webtemplates.CharacterListID {
		h.WritePage(w, r, title, http.StatusOK, webtemplates.CharacterList(mapCharacterListView(result, loc)))
		return
	}
	h.WritePage(w, r, title, http.StatusOK, webtemplates.CharactersPage(mapCharactersPageView(result, h.debounce.Milliseconds(), loc)))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("characterID"))
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	detail, err := h.service.detail(r.Context(), sess, id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, detail.Character.Name, http.StatusOK, webtemplates.CharacterDetail(mapCharacterDetailView(detail, loc)))
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("characterID"))
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	record, _, err := h.service.character(r.Context(), sess, id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	title := webtemplates.T(loc, "web.characters.edit_title", record.Name)
	h.WritePage(w, r, title, http.StatusOK, webtemplates.CharacterEdit(mapCharacterEditView(record, editFromCharacter(record), nil, loc)))
}

func (h handlers) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("characterID"))
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "errors.http.invalid_input", "parse edit form", err))
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	input := editFromForm(r.PostForm)
	record, err := h.service.edit(r.Context(), sess, id, input)
	var validation ValidationError
	if errors.As(err, &validation) {
		title := webtemplates.T(loc, "web.characters.edit_title", record.Name)
		h.WritePage(w, r, title, http.StatusUnprocessableEntity, webtemplates.CharacterEdit(mapCharacterEditView(record, input, &validation, loc)))
		return
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeMutation(w, r, sess, nil, flashnotice.Success("web.characters.notice_updated", record.Name), loc)
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("characterID"))
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	record, _, err := h.service.character(r.Context(), sess, id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, webtemplates.T(loc, "web.characters.delete_title"), http.StatusOK, webtemplates.Confirm(mapDeleteConfirmView(record, loc)))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("characterID"))
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	record, err := h.service.delete(r.Context(), sess, id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeMutation(w, r, sess, nil, flashnotice.Success("web.characters.notice_deleted", record.Name), loc)
}

func (h handlers) handleResetConfirm(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "web.characters.reset_title"), http.StatusOK, webtemplates.Confirm(mapResetConfirmView(loc)))
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	sess := h.openSession(w, r)
	result := h.service.reset(r.Context(), sess)
	h.writeMutation(w, r, sess, &result, flashnotice.Success("web.characters.notice_reset"), loc)
}

// writeMutation answers a successful mutation. HTMX callers get the
// refreshed list region in place; others are redirected to the list with a
// flash notice.
func (h handlers) writeMutation(w http.ResponseWriter, r *http.Request, sess *session, result *listResult, notice flashnotice.Notice, loc webtemplates.Localizer) {
	if !httpx.IsHTMXRequest(r) {
		flashnotice.WriteWithPolicy(w, r, notice, h.policy)
		httpx.WriteRedirect(w, r, routepath.Characters)
		return
	}
	if result == nil {
		current := h.service.list(r.Context(), sess, listRequest{})
		result = &current
	}
	httpx.SetHXRetarget(w, "#"+webtemplates.CharacterListID, "outerHTML")
	h.WritePage(w, r, webtemplates.T(loc, "web.characters.title"), http.StatusOK, webtemplates.CharacterListRefresh(mapCharacterListView(*result, loc)))
}

// parseListRequest reads list state from the query. Absent parameters keep
// the session's current value.
func parseListRequest(query url.Values) (listRequest, error) {
	var req listRequest
	if raw := strings.TrimSpace(query.Get(routepath.CharactersPageQueryKey)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return listRequest{}, apperrors.Wrap(apperrors.KindInvalidInput, "errors.http.invalid_input", "invalid page "+strconv.Quote(raw), err)
		}
		req.Page = max(page, 1)
	}
	if query.Has(routepath.CharactersSearchKey) {
		search := strings.TrimSpace(query.Get(routepath.CharactersSearchKey))
		req.Search = &search
	}
	if query.Has(routepath.CharactersOrderByKey) {
		sort, err := ParseSort(query.Get(routepath.CharactersOrderByKey))
		if err != nil {
			return listRequest{}, apperrors.Wrap(apperrors.KindInvalidInput, "errors.http.invalid_input", "invalid order_by", err)
		}
		req.Sort = &sort
	} else if raw := strings.TrimSpace(query.Get(routepath.CharactersSortToggleKey)); raw != "" {
		key, ok := ParseSortKey(raw)
		if !ok {
			return listRequest{}, apperrors.EK(apperrors.KindInvalidInput, "errors.http.invalid_input", "invalid sort "+strconv.Quote(raw))
		}
		req.Toggle = key
	}
	return req, nil
}

func editFromForm(form url.Values) CharacterEdit {
	var edit CharacterEdit
	for _, field := range editFields {
		*field.get(&edit) = form.Get(field.Name)
	}
	return edit
}
