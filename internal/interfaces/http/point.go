package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ecoleta/internal/domain"
	"ecoleta/internal/domain/point"
)

type PointService interface {
	SearchPoints(ctx context.Context, city, uf, items string) ([]*point.Point, error)
	GetPoint(ctx context.Context, id int64) (*point.Detail, error)
	CreatePoint(ctx context.Context, params point.CreatePointParams) (*point.Point, error)
}

type PointHandler struct {
	pointService   PointService
	maxUploadBytes int64
}

// NewPointHandler creates a point handler. maxUploadBytes caps the multipart
// body of a registration.
func NewPointHandler(pointService PointService, maxUploadBytes int64) *PointHandler {
	return &PointHandler{pointService: pointService, maxUploadBytes: maxUploadBytes}
}

// HandlePoints routes requests to the appropriate handler based on method
func (h *PointHandler) HandlePoints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleSearchPoints(w, r)
	case http.MethodPost:
		h.handleCreatePoint(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

// HandlePointByID returns one point with the titles of its items.
func (h *PointHandler) HandlePointByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	id, err := point.ParseID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.pointService.GetPoint(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *PointHandler) handleSearchPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	points, err := h.pointService.SearchPoints(r.Context(), q.Get("city"), q.Get("uf"), q.Get("items"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if points == nil {
		points = []*point.Point{}
	}

	writeJSON(w, http.StatusOK, points)
}

func (h *PointHandler) handleCreatePoint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, err)
			return
		}
		writeError(w, r, fmt.Errorf("%w: expected a multipart form: %w", domain.ErrInvalidQuery, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	params := point.CreatePointParams{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Whatsapp:  r.PostFormValue("whatssap"),
		Latitude:  r.PostFormValue("latitude"),
		Longitude: r.PostFormValue("longitude"),
		City:      r.PostFormValue("city"),
		UF:        r.PostFormValue("uf"),
		Items:     r.PostFormValue("items"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		params.Image = &point.Image{Filename: header.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile):
		// Left nil; the service reports the missing image after validating the rest.
	default:
		writeError(w, r, fmt.Errorf("%w: unreadable image: %w", domain.ErrInvalidQuery, err))
		return
	}

	created, err := h.pointService.CreatePoint(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
