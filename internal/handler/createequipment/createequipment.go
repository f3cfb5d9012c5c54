// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package createequipment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	EquipmentID   string `json:"equipmentId"`
	EquipmentName string `json:"equipmentName"`
}

type Response = api.Equipment

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler registers equipment in the master data.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) CreateEquipment(ctx context.Context, req *Request) (*Response, error) {
	if req.EquipmentID == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("設備IDは必須です"))
	}
	if req.EquipmentName == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("設備名は必須です"))
	}

	now := time.Now()
	equipment := maintdb.Equipment{
		ID:            uuid.NewString(),
		EquipmentID:   req.EquipmentID,
		EquipmentName: req.EquipmentName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.store.PutEquipment(ctx, equipment); err != nil {
		return nil, err
	}

	res := api.EquipmentFromDB(equipment)
	return &res, nil
}
