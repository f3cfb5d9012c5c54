// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listrecords

import (
	"context"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

// defaultLimit bounds an unfiltered listing, as the master data can
// outgrow a single response.
const defaultLimit = 100

type Request struct {
	EquipmentID string `query:"equipmentId"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	Keyword     string `query:"keyword"`
	Limit       int    `query:"limit"`
}

type Response struct {
	Items []api.MaintenanceRecord `json:"items"`
	Count int                     `json:"count"`
}

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler lists maintenance records with optional filters, joining
// equipment names.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) ListRecords(ctx context.Context, req *Request) (*Response, error) {
	records, err := List(ctx, h.store, req)
	if err != nil {
		return nil, err
	}
	return &Response{Items: records, Count: len(records)}, nil
}

// List queries records per the request and joins equipment names. It is
// shared with the CSV export.
func List(ctx context.Context, store *maintdb.Store, req *Request) ([]api.MaintenanceRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	filter, err := maintdb.ParseRecordFilter(req.EquipmentID, req.StartDate, req.EndDate, req.Keyword, limit)
	if err != nil {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, err)
	}

	records, err := store.QueryRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	seen := map[string]bool{}
	for _, record := range records {
		if !seen[record.EquipmentID] {
			seen[record.EquipmentID] = true
			ids = append(ids, record.EquipmentID)
		}
	}
	names, err := store.EquipmentNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]api.MaintenanceRecord, len(records))
	for i, record := range records {
		items[i] = api.RecordFromDB(record, names[record.EquipmentID])
	}
	return items, nil
}
