// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleteequipment

import (
	"context"
	"errors"

	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	ID string `path:"id"`
}

type Response struct {
	Message string `json:"message"`
}

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler deletes equipment that has no maintenance records.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) DeleteEquipment(ctx context.Context, req *Request) (*Response, error) {
	if _, err := h.store.Equipment(ctx, req.ID); err != nil {
		if errors.Is(err, maintdb.ErrNotFound) {
			return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Equipment not found"))
		}
		return nil, err
	}

	hasRecords, err := h.store.HasRecordsForEquipment(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if hasRecords {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("この設備に関連するメンテナンス記録が存在するため削除できません"))
	}

	if err := h.store.DeleteEquipment(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Response{Message: "Equipment deleted successfully"}, nil
}
