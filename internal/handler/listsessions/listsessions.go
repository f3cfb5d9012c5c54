// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listsessions

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/chat"
)

// Request is empty; sessions are scoped to the caller.
type Request struct{}

type Response struct {
	Items []api.ChatSession `json:"items"`
	Count int               `json:"count"`
}

// NewHandler returns a Handler.
func NewHandler(sessions *chat.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Handler lists the caller's chat sessions.
type Handler struct {
	sessions *chat.Sessions
}

func (h *Handler) ListSessions(ctx context.Context, _ *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	sessions, err := h.sessions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]api.ChatSession, len(sessions))
	for i, session := range sessions {
		items[i] = api.SessionFromDB(session)
	}
	return &Response{Items: items, Count: len(items)}, nil
}
