package http

import (
	"context"
	"net/http"

	"ecoleta/internal/domain/item"
)

type ItemService interface {
	ListItems(ctx context.Context) ([]*item.Item, error)
}

type ItemHandler struct {
	itemService ItemService
}

func NewItemHandler(itemService ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// HandleListItems returns the whole item catalog.
func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*item.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}
