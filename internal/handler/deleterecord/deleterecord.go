// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleterecord

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

// Handler deletes a maintenance record.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) DeleteRecord(ctx context.Context, req *Request) (*Response, error) {
	if _, err := h.store.Record(ctx, req.ID); err != nil {
		if errors.Is(err, maintdb.ErrNotFound) {
			return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Record not found"))
		}
		return nil, err
	}

	if err := h.store.DeleteRecord(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Response{Message: "Record deleted successfully"}, nil
}
