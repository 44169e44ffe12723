package ibge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"ecoleta/internal/domain"
	"ecoleta/internal/domain/locality"
)

// API Docs: https://servicodados.ibge.gov.br/api/docs/localidades
// Sample request: https://servicodados.ibge.gov.br/api/v1/localidades/estados/PE/municipios
const (
	DefaultBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

// ListStates fetches every Brazilian state, ordered by name upstream.
func (c *Client) ListStates(ctx context.Context) ([]locality.State, error) {
	var resp []StateAPIResponse
	if err := c.get(ctx, "estados", url.Values{"orderBy": {"nome"}}, &resp); err != nil {
		return nil, err
	}

	states := make([]locality.State, 0, len(resp))
	for _, s := range resp {
		states = append(states, locality.State{Sigla: s.Sigla, Name: s.Nome})
	}
	return states, nil
}

// ListCities fetches the municipalities of one state.
func (c *Client) ListCities(ctx context.Context, uf string) ([]locality.City, error) {
	var resp []CityAPIResponse
	if err := c.get(ctx, "estados/"+url.PathEscape(uf)+"/municipios", nil, &resp); err != nil {
		return nil, err
	}

	cities := make([]locality.City, 0, len(resp))
	for _, m := range resp {
		cities = append(cities, locality.City{Name: m.Nome})
	}
	return cities, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	u = u.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to fetch %s: %w", domain.ErrUpstreamUnavailable, path, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: fetch %s returned status %d: %s", domain.ErrUpstreamUnavailable, path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", domain.ErrUpstreamUnavailable, err)
	}

	return nil
}
