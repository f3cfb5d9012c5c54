// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updaterecord

import (
	"context"
	"errors"
	"time"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	ID       string `path:"id"`
	Symptom  string `json:"symptom"`
	Cause    string `json:"cause"`
	Solution string `json:"solution"`
}

type Response = api.MaintenanceRecord

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler updates the extracted fields of a record. Empty request
// fields keep their current values.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) UpdateRecord(ctx context.Context, req *Request) (*Response, error) {
	record, err := h.store.Record(ctx, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Record not found"))
	}
	if err != nil {
		return nil, err
	}

	if req.Symptom != "" {
		record.Symptom = req.Symptom
	}
	if req.Cause != "" {
		record.Cause = req.Cause
	}
	if req.Solution != "" {
		record.Solution = req.Solution
	}
	record.UpdatedAt = time.Now()

	if err := h.store.PutRecord(ctx, record); err != nil {
		return nil, err
	}

	res := api.RecordFromDB(record, "")
	return &res, nil
}
