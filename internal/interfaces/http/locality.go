package http

import (
	"context"
	"net/http"
)

type LocalityService interface {
	ListStates(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, uf string) ([]string, error)
}

type LocalityHandler struct {
	localityService LocalityService
}

func NewLocalityHandler(localityService LocalityService) *LocalityHandler {
	return &LocalityHandler{localityService: localityService}
}

// HandleListStates returns the UF siglas.
func (h *LocalityHandler) HandleListStates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	ufs, err := h.localityService.ListStates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ufs)
}

// HandleListCities returns the municipalities of the {uf} path segment.
func (h *LocalityHandler) HandleListCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	cities, err := h.localityService.ListCities(r.Context(), r.PathValue("uf"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cities)
}
