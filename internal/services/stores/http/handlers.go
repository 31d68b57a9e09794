// Package http provides http transport for stores
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"storewatch/internal/modkit/httpkit"
	phttp "storewatch/internal/platform/net/http"
	"storewatch/internal/services/stores/domain"
	svc "storewatch/internal/services/stores/service"
)

// Register mounts stores endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/{store_id}", h.get)
	r.Post("/search", phttp.JSONHandler(h.search))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /stores/search Stores storesSearch
// @Summary List stores
// @Tags Stores
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Paging"
// @Success 200 {array} domain.Store "ok"
// @Router /stores/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route GET /stores/{store_id} Stores storesGet
// @Summary Fetch a store and its timezone
// @Tags Stores
// @Produce json
// @Param store_id path string true "Store UUID"
// @Success 200 {object} domain.Store "ok"
// @Failure 404 "unknown store"
// @Router /stores/{store_id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "store_id"))
}
