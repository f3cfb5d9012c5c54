// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listequipment

import (
	"context"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct{}

type Response struct {
	Items []api.Equipment `json:"items"`
	Count int             `json:"count"`
}

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler lists the equipment master data.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) ListEquipment(ctx context.Context, _ *Request) (*Response, error) {
	equipment, err := h.store.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]api.Equipment, len(equipment))
	for i, e := range equipment {
		items[i] = api.EquipmentFromDB(e)
	}
	return &Response{Items: items, Count: len(items)}, nil
}
