// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package exportrecords

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/curioswitch/mentenote/internal/handler/listrecords"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler exports maintenance records as a CSV download. It accepts the
// same filters as the record listing.
type Handler struct {
	store *maintdb.Store
}

func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	req := &listrecords.Request{
		EquipmentID: q.Get("equipmentId"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
		Keyword:     q.Get("keyword"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			httpapi.WriteError(ctx, w, httpapi.NewError(httpapi.CodeInvalidArgument, fmt.Errorf("exportrecords: parsing limit: %w", err)))
			return
		}
		req.Limit = n
	}

	records, err := listrecords.List(ctx, h.store, req)
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.csv"`, time.Now().Format(time.DateOnly)))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "設備ID", "設備名", "症状", "原因", "対策", "作成日時", "更新日時"})
	for _, record := range records {
		_ = cw.Write([]string{
			record.ID,
			record.EquipmentID,
			record.EquipmentName,
			record.Symptom,
			record.Cause,
			record.Solution,
			record.CreatedAt.Format(time.RFC3339),
			record.UpdatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}
