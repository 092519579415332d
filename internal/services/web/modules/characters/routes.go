package characters

import (
	"net/http"

	"github.com/louisbranch/charactercatalog/internal/services/web/platform/httpx"
	"github.com/louisbranch/charactercatalog/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Characters, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CharactersPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CharactersReset, h.handleResetConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CharactersReset, h.handleReset)
	mux.HandleFunc(http.MethodGet+" "+routepath.CharacterPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.CharacterEditPattern, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CharacterEditPattern, h.handleEditSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.CharacterDeletePattern, h.handleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CharacterDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodPost+" "+routepath.CharacterPattern, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(http.MethodGet+" "+routepath.CharactersPrefix+"{characterID}/{rest...}", h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.CharactersPrefix+"{characterID}/{rest...}", h.WriteNotFound)
}
