package point

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ecoleta/internal/domain"
)

// Point is a registered waste-collection location.
type Point struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Whatsapp  string  `json:"whatssap"`
	Image     string  `json:"image"`
	ImageURL  string  `json:"image_url,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	UF        string  `json:"uf"`
}

// Detail is a point together with the titles of the items it accepts.
type Detail struct {
	Point *Point   `json:"point"`
	Items []string `json:"items"`
}

// SearchFilter selects points in a city/uf accepting any of ItemIDs.
type SearchFilter struct {
	City    string
	UF      string
	ItemIDs []int64
}

// Image is an uploaded image file as received from the client.
type Image struct {
	Filename string
	Content  io.Reader
}

// CreatePointParams carries the registration form as submitted. Latitude,
// Longitude and Items are raw form values coerced by the service.
type CreatePointParams struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  string
	Longitude string
	City      string
	UF        string
	Items     string
	Image     *Image
}

// normalize coerces the raw form values. It performs no I/O.
func (p *CreatePointParams) normalize() (*Point, []int64, error) {
	itemIDs, err := ParseItemIDs(p.Items)
	if err != nil {
		return nil, nil, err
	}

	lat, err := parseCoordinate("latitude", p.Latitude)
	if err != nil {
		return nil, nil, err
	}
	lng, err := parseCoordinate("longitude", p.Longitude)
	if err != nil {
		return nil, nil, err
	}

	if p.Image == nil || p.Image.Content == nil {
		return nil, nil, fmt.Errorf("%w: an image file is required", domain.ErrMissingImage)
	}

	return &Point{
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  lat,
		Longitude: lng,
		City:      p.City,
		UF:        p.UF,
	}, itemIDs, nil
}

// ParseItemIDs parses a comma-separated list of item ids. Tokens are trimmed;
// empty, non-integer and non-positive tokens are rejected with
// domain.ErrInvalidQuery. Repeated ids are collapsed keeping the first
// occurrence. An empty list is rejected, so a successful parse always yields at
// least one id.
func ParseItemIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrInvalidQuery)
	}

	tokens := strings.Split(raw, ",")
	ids := make([]int64, 0, len(tokens))
	seen := make(map[int64]struct{}, len(tokens))

	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty item id at position %d", domain.ErrInvalidQuery, i+1)
		}

		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: item id %q is not an integer", domain.ErrInvalidQuery, tok)
		}
		if id <= 0 {
			return nil, fmt.Errorf("%w: item id %d must be positive", domain.ErrInvalidQuery, id)
		}

		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseID parses a point id taken from a request path.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: point id %q is not a positive integer", domain.ErrInvalidQuery, raw)
	}
	return id, nil
}

func parseCoordinate(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidQuery, field, raw)
	}
	return v, nil
}
