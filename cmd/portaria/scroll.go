package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// scrollAll abre el listado con el término dado y simula el scroll hasta la última página:
// cada vuelta marca como visible el último ítem, que dispara la carga de la siguiente.
func scrollAll[T any](cmd *cobra.Command, list *pagination.List[T], search string) ([]T, entity.Pagination, error) {
	defer list.Close()
	ctx := cmd.Context()

	list.SetSearch(search)
	if err := list.Open(ctx); err != nil {
		return nil, entity.Pagination{}, err
	}
	for {
		snap := list.Snapshot()
		if !snap.HasNextPage {
			break
		}
		// sin ítems no hay nada que marcar como visible: se pide la siguiente página directamente
		if len(snap.Items) == 0 {
			if err := list.LoadMore(ctx); err != nil {
				return nil, entity.Pagination{}, err
			}
			continue
		}
		loaded, err := list.Visible(ctx, len(snap.Items)-1)
		if err != nil {
			return nil, entity.Pagination{}, err
		}
		if !loaded {
			break
		}
	}
	snap := list.Snapshot()
	if snap.Err != nil {
		return nil, entity.Pagination{}, snap.Err
	}
	return snap.Items, entity.Pagination{
		CurrentPage: snap.CurrentPage,
		LastPage:    snap.CurrentPage,
		Total:       snap.TotalCount,
	}, nil
}
