package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

func pagedList(pages map[int][]string, lastPage int) (*pagination.List[string], *[]int) {
	var requested []int
	fetch := func(_ context.Context, page int, _ string) (*entity.Page[string], error) {
		requested = append(requested, page)
		return &entity.Page[string]{Data: pages[page], CurrentPage: page, LastPage: lastPage, Total: 2}, nil
	}
	l := pagination.New(fetch, func(s string) string { return s }, pagination.Options{
		Debounce:  500 * time.Millisecond,
		Lookahead: 2,
		Clock:     clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		Logger:    zerolog.Nop(),
	})
	return l, &requested
}

func scrollCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestScrollAll_PrimeraPaginaVaciaSigueCargando(t *testing.T) {
	list, requested := pagedList(map[int][]string{1: nil, 2: {"a"}, 3: {"b"}}, 3)

	items, meta, err := scrollAll(scrollCmd(), list, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, []int{1, 2, 3}, *requested)
	assert.Equal(t, 3, meta.CurrentPage)
}

func TestScrollAll_PaginaDuplicadaNoCorta(t *testing.T) {
	list, requested := pagedList(map[int][]string{1: {"a"}, 2: {"a"}, 3: {"b"}}, 3)

	items, _, err := scrollAll(scrollCmd(), list, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, []int{1, 2, 3}, *requested)
}
