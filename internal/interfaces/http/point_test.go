package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecoleta/internal/domain"
	"ecoleta/internal/domain/point"
)

// MockPointService implements PointService for testing
type MockPointService struct {
	SearchPointsFunc func(ctx context.Context, city, uf, items string) ([]*point.Point, error)
	GetPointFunc     func(ctx context.Context, id int64) (*point.Detail, error)
	CreatePointFunc  func(ctx context.Context, params point.CreatePointParams) (*point.Point, error)
}

func (m *MockPointService) SearchPoints(ctx context.Context, city, uf, items string) ([]*point.Point, error) {
	if m.SearchPointsFunc != nil {
		return m.SearchPointsFunc(ctx, city, uf, items)
	}
	return nil, nil
}

func (m *MockPointService) GetPoint(ctx context.Context, id int64) (*point.Detail, error) {
	if m.GetPointFunc != nil {
		return m.GetPointFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPointService) CreatePoint(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
	if m.CreatePointFunc != nil {
		return m.CreatePointFunc(ctx, params)
	}
	return nil, nil
}

func decodeError(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return resp
}

func TestHandlePoints_Search(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mock           *MockPointService
		expectedStatus int
		expectedLen    int
		expectedReason string
	}{
		{
			name:  "Success",
			query: "?city=Recife&uf=PE&items=1,2",
			mock: &MockPointService{
				SearchPointsFunc: func(ctx context.Context, city, uf, items string) ([]*point.Point, error) {
					if city != "Recife" || uf != "PE" || items != "1,2" {
						return nil, fmt.Errorf("unexpected filter %q %q %q", city, uf, items)
					}
					return []*point.Point{{ID: 1, Name: "Mercado"}, {ID: 2, Name: "Feira"}}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:  "No Match Is Empty Array",
			query: "?city=Recife&uf=PE&items=3",
			mock: &MockPointService{
				SearchPointsFunc: func(ctx context.Context, city, uf, items string) ([]*point.Point, error) {
					return nil, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:  "Invalid Items",
			query: "?city=Recife&uf=PE&items=1,abc",
			mock: &MockPointService{
				SearchPointsFunc: func(ctx context.Context, city, uf, items string) ([]*point.Point, error) {
					return nil, fmt.Errorf("%w: item id %q is not a number", domain.ErrInvalidQuery, "abc")
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedReason: "invalid_query",
		},
		{
			name:  "Storage Down",
			query: "?city=Recife&uf=PE&items=1",
			mock: &MockPointService{
				SearchPointsFunc: func(ctx context.Context, city, uf, items string) ([]*point.Point, error) {
					return nil, fmt.Errorf("%w: connection refused", domain.ErrStorageUnavailable)
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedReason: "storage_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPointHandler(tt.mock, 1<<20)

			req := httptest.NewRequest(http.MethodGet, "/points"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.HandlePoints(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedReason != "" {
				if got := decodeError(t, rr.Body).Reason; got != tt.expectedReason {
					t.Errorf("reason = %q, want %q", got, tt.expectedReason)
				}
				return
			}

			var points []point.Point
			if err := json.NewDecoder(rr.Body).Decode(&points); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if points == nil || len(points) != tt.expectedLen {
				t.Errorf("got %v points, want %d", points, tt.expectedLen)
			}
		})
	}
}

func TestHandlePointByID(t *testing.T) {
	tests := []struct {
		name            string
		id              string
		mock            *MockPointService
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "Success",
			id:   "7",
			mock: &MockPointService{
				GetPointFunc: func(ctx context.Context, id int64) (*point.Detail, error) {
					return &point.Detail{
						Point: &point.Point{ID: id, Name: "Mercado", Whatsapp: "81999999999"},
						Items: []string{"Lâmpadas", "Óleo de Cozinha"},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			id:   "99",
			mock: &MockPointService{
				GetPointFunc: func(ctx context.Context, id int64) (*point.Detail, error) {
					return nil, fmt.Errorf("%w: point %d", domain.ErrNotFound, id)
				},
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Point not found.",
		},
		{
			name: "Non-numeric ID",
			id:   "abc",
			mock: &MockPointService{
				GetPointFunc: func(ctx context.Context, id int64) (*point.Detail, error) {
					t.Error("service should not be called")
					return nil, nil
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPointHandler(tt.mock, 1<<20)

			mux := http.NewServeMux()
			mux.HandleFunc("/points/{id}", handler.HandlePointByID)

			req := httptest.NewRequest(http.MethodGet, "/points/"+tt.id, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedMessage != "" {
				if got := decodeError(t, rr.Body).Message; got != tt.expectedMessage {
					t.Errorf("message = %q, want %q", got, tt.expectedMessage)
				}
			}

			if tt.expectedStatus == http.StatusOK {
				var body struct {
					Point map[string]any `json:"point"`
					Items []string       `json:"items"`
				}
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if body.Point["whatssap"] != "81999999999" {
					t.Errorf("point.whatssap = %v", body.Point["whatssap"])
				}
				if len(body.Items) != 2 {
					t.Errorf("items = %v, want 2 titles", body.Items)
				}
			}
		})
	}
}

type multipartField struct {
	name, value string
}

func newMultipartRequest(t *testing.T, fields []multipartField, imageName, imageContent string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		io.WriteString(fw, imageContent)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/points", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validFields() []multipartField {
	return []multipartField{
		{"name", "Mercado do Zé"},
		{"email", "ze@example.com"},
		{"whatssap", "81999999999"},
		{"latitude", "-8.05"},
		{"longitude", "-34.9"},
		{"city", "Recife"},
		{"uf", "PE"},
		{"items", "1,2"},
	}
}

func TestHandlePoints_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		var got point.CreatePointParams
		var image string
		mock := &MockPointService{
			CreatePointFunc: func(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
				got = params
				if params.Image != nil {
					b, _ := io.ReadAll(params.Image.Content)
					image = params.Image.Filename + ":" + string(b)
				}
				return &point.Point{ID: 10, Name: params.Name, City: params.City, UF: params.UF}, nil
			},
		}
		handler := NewPointHandler(mock, 1<<20)

		rr := httptest.NewRecorder()
		handler.HandlePoints(rr, newMultipartRequest(t, validFields(), "foto.png", "PNGDATA"))

		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusCreated, rr.Body)
		}
		if got.Whatsapp != "81999999999" || got.Items != "1,2" || got.Latitude != "-8.05" {
			t.Errorf("params = %+v", got)
		}
		if image != "foto.png:PNGDATA" {
			t.Errorf("image = %q", image)
		}

		var created point.Point
		if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID != 10 {
			t.Errorf("created.ID = %d, want 10", created.ID)
		}
	})

	t.Run("Missing image reaches the service", func(t *testing.T) {
		mock := &MockPointService{
			CreatePointFunc: func(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
				if params.Image != nil {
					t.Error("Image should be nil")
				}
				return nil, fmt.Errorf("%w: an image file is required", domain.ErrMissingImage)
			},
		}
		handler := NewPointHandler(mock, 1<<20)

		rr := httptest.NewRecorder()
		handler.HandlePoints(rr, newMultipartRequest(t, validFields(), "", ""))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
		if got := decodeError(t, rr.Body).Reason; got != "missing_image" {
			t.Errorf("reason = %q, want missing_image", got)
		}
	})

	t.Run("Transaction failure", func(t *testing.T) {
		mock := &MockPointService{
			CreatePointFunc: func(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
				return nil, fmt.Errorf("%w: unknown item id", domain.ErrTransactionFailed)
			},
		}
		handler := NewPointHandler(mock, 1<<20)

		rr := httptest.NewRecorder()
		handler.HandlePoints(rr, newMultipartRequest(t, validFields(), "foto.png", "PNGDATA"))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
		}
		resp := decodeError(t, rr.Body)
		if resp.Reason != "transaction_failed" || resp.Message == "" {
			t.Errorf("error body = %+v", resp)
		}
	})

	t.Run("Not multipart", func(t *testing.T) {
		mock := &MockPointService{
			CreatePointFunc: func(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
				t.Error("service should not be called")
				return nil, nil
			},
		}
		handler := NewPointHandler(mock, 1<<20)

		req := httptest.NewRequest(http.MethodPost, "/points", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.HandlePoints(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("Too large", func(t *testing.T) {
		mock := &MockPointService{
			CreatePointFunc: func(ctx context.Context, params point.CreatePointParams) (*point.Point, error) {
				t.Error("service should not be called")
				return nil, nil
			},
		}
		handler := NewPointHandler(mock, 512)

		rr := httptest.NewRecorder()
		handler.HandlePoints(rr, newMultipartRequest(t, validFields(), "foto.png", strings.Repeat("x", 4096)))

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestHandlePoints_MethodNotAllowed(t *testing.T) {
	handler := NewPointHandler(&MockPointService{}, 1<<20)

	rr := httptest.NewRecorder()
	handler.HandlePoints(rr, httptest.NewRequest(http.MethodDelete, "/points", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != "GET, POST" {
		t.Errorf("Allow = %q", got)
	}
	if got := decodeError(t, rr.Body).Reason; got != "method_not_allowed" {
		t.Errorf("reason = %q", got)
	}
}
