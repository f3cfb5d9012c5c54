// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecord

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

type Response = api.MaintenanceRecord

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler returns a single maintenance record with its equipment name.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) GetRecord(ctx context.Context, req *Request) (*Response, error) {
	record, err := h.store.Record(ctx, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Record not found"))
	}
	if err != nil {
		return nil, err
	}

	var equipmentName string
	equipment, err := h.store.Equipment(ctx, record.EquipmentID)
	if err == nil {
		equipmentName = equipment.EquipmentName
	} else if !errors.Is(err, maintdb.ErrNotFound) {
		return nil, err
	}

	res := api.RecordFromDB(record, equipmentName)
	return &res, nil
}
