// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getequipment

import (
	"context"
	"errors"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	ID string `path:"id"`
}

type Response = api.Equipment

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler returns a single piece of equipment.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) GetEquipment(ctx context.Context, req *Request) (*Response, error) {
	equipment, err := h.store.Equipment(ctx, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Equipment not found"))
	}
	if err != nil {
		return nil, err
	}

	res := api.EquipmentFromDB(equipment)
	return &res, nil
}
