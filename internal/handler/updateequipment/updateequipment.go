// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updateequipment

import (
	"context"
	"errors"
	"time"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	ID            string `path:"id"`
	EquipmentID   string `json:"equipmentId"`
	EquipmentName string `json:"equipmentName"`
}

type Response = api.Equipment

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler updates equipment master data. Empty request fields keep
// their current values.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) UpdateEquipment(ctx context.Context, req *Request) (*Response, error) {
	equipment, err := h.store.Equipment(ctx, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Equipment not found"))
	}
	if err != nil {
		return nil, err
	}

	if req.EquipmentID != "" {
		equipment.EquipmentID = req.EquipmentID
	}
	if req.EquipmentName != "" {
		equipment.EquipmentName = req.EquipmentName
	}
	equipment.UpdatedAt = time.Now()

	if err := h.store.PutEquipment(ctx, equipment); err != nil {
		return nil, err
	}

	res := api.EquipmentFromDB(equipment)
	return &res, nil
}
