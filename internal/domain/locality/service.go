package locality

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ecoleta/internal/domain"
)

// Provider lists Brazilian states and their municipalities.
type Provider interface {
	ListStates(ctx context.Context) ([]State, error)
	ListCities(ctx context.Context, uf string) ([]City, error)
}

// Service proxies the locality lookups the clients use to fill their UF and
// city selectors.
type Service struct {
	provider Provider
}

// NewService creates a locality service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ListStates returns every UF sigla in alphabetical order.
func (s *Service) ListStates(ctx context.Context) ([]string, error) {
	states, err := s.provider.ListStates(ctx)
	if err != nil {
		return nil, err
	}

	ufs := make([]string, 0, len(states))
	for _, st := range states {
		ufs = append(ufs, st.Sigla)
	}
	sortPortuguese(ufs)

	return ufs, nil
}

// ListCities returns the municipality names of uf in Portuguese
// alphabetical order, so "Água Preta" sorts next to "Abreu e Lima".
func (s *Service) ListCities(ctx context.Context, uf string) ([]string, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if !isUF(uf) {
		return nil, fmt.Errorf("%w: uf must be two letters, got %q", domain.ErrInvalidQuery, uf)
	}

	cities, err := s.provider.ListCities(ctx, uf)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	sortPortuguese(names)

	return names, nil
}

// sortPortuguese sorts with Brazilian Portuguese collation. A Collator is not
// safe for concurrent use, so one is built per call.
func sortPortuguese(names []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(names)
}

func isUF(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
