// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package createsession

import (
	"context"
	"errors"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/httpapi"
)

type Request struct {
	EquipmentID string `json:"equipmentId"`
	Title       string `json:"title"`
}

type Response = api.ChatSession

// NewHandler returns a Handler.
func NewHandler(sessions *chat.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Handler creates a chat session and seeds the assistant greeting.
type Handler struct {
	sessions *chat.Sessions
}

func (h *Handler) CreateSession(ctx context.Context, req *Request) (*Response, error) {
	if req.EquipmentID == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("設備IDは必須です"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID
	session, err := h.sessions.Create(ctx, userID, req.EquipmentID, req.Title)
	if err != nil {
		return nil, err
	}

	res := api.SessionFromDB(session)
	return &res, nil
}
