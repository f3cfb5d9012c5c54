// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package createrecord

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	EquipmentID   string `json:"equipmentId"`
	Symptom       string `json:"symptom"`
	Cause         string `json:"cause"`
	Solution      string `json:"solution"`
	PDFKey        string `json:"pdfKey"`
	ChatSessionID string `json:"chatSessionId"`
}

type Response = api.MaintenanceRecord

// NewHandler returns a Handler.
func NewHandler(store *maintdb.Store, sessions *chat.Sessions) *Handler {
	return &Handler{
		store:    store,
		sessions: sessions,
	}
}

// Handler creates a maintenance record. A record saved from a chat
// session marks that session completed; this is the only way a session
// completes.
type Handler struct {
	store    *maintdb.Store
	sessions *chat.Sessions
}

func (h *Handler) CreateRecord(ctx context.Context, req *Request) (*Response, error) {
	switch {
	case req.EquipmentID == "":
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("設備IDは必須です"))
	case req.Symptom == "":
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("症状は必須です"))
	case req.Cause == "":
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("原因は必須です"))
	case req.Solution == "":
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("対策は必須です"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID
	now := time.Now()

	record := maintdb.MaintenanceRecord{
		ID:            uuid.NewString(),
		EquipmentID:   req.EquipmentID,
		Symptom:       req.Symptom,
		Cause:         req.Cause,
		Solution:      req.Solution,
		PDFKey:        req.PDFKey,
		ChatSessionID: req.ChatSessionID,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.store.PutRecord(ctx, record); err != nil {
		return nil, err
	}

	if req.ChatSessionID != "" {
		err := h.sessions.Complete(ctx, userID, req.ChatSessionID, record.ID)
		if errors.Is(err, maintdb.ErrNotFound) {
			slog.WarnContext(ctx, "createrecord: chat session not found for completion", "sessionId", req.ChatSessionID)
		} else if err != nil {
			return nil, err
		}
	}

	res := api.RecordFromDB(record, "")
	return &res, nil
}
