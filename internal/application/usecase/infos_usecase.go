package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

const (
	StatesEndpoint = "/infos/state"
	CitiesEndpoint = "/infos/city"
)

// InfosUseCase catálogos de estados y ciudades; se cachean en memoria por proceso.
type InfosUseCase struct {
	api ports.APIRequester

	mu     sync.Mutex
	states []entity.State
	cities map[string][]entity.City
}

// NewInfosUseCase construye el caso de uso.
func NewInfosUseCase(api ports.APIRequester) *InfosUseCase {
	return &InfosUseCase{api: api, cities: make(map[string][]entity.City)}
}

// States lista las unidades federativas.
func (uc *InfosUseCase) States(ctx context.Context) ([]entity.State, error) {
	uc.mu.Lock()
	cached := uc.states
	uc.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	list, err := fetchList[entity.State](ctx, uc.api, StatesEndpoint)
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	uc.states = list
	uc.mu.Unlock()
	return list, nil
}

// Cities lista las ciudades de la UF dada (ej. "SP").
func (uc *InfosUseCase) Cities(ctx context.Context, uf string) ([]entity.City, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if len(uf) != 2 {
		return nil, fmt.Errorf("%w: UF %q", domain.ErrInvalidInput, uf)
	}
	uc.mu.Lock()
	cached, ok := uc.cities[uf]
	uc.mu.Unlock()
	if ok {
		return cached, nil
	}
	list, err := fetchList[entity.City](ctx, uc.api, CitiesEndpoint+"?"+url.Values{"state": {uf}}.Encode())
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	uc.cities[uf] = list
	uc.mu.Unlock()
	return list, nil
}
