// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listmessages

import (
	"context"
	"errors"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	SessionID string `path:"id"`
}

type Response struct {
	Items []api.ChatMessage `json:"items"`
	Count int               `json:"count"`
}

// NewHandler returns a Handler.
func NewHandler(store chat.Store) *Handler {
	return &Handler{store: store}
}

// Handler lists a session's messages, oldest first.
type Handler struct {
	store chat.Store
}

func (h *Handler) ListMessages(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	if _, err := h.store.Session(ctx, userID, req.SessionID); err != nil {
		if errors.Is(err, maintdb.ErrNotFound) {
			return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Session not found"))
		}
		return nil, err
	}

	msgs, err := h.store.Messages(ctx, userID, req.SessionID)
	if err != nil {
		return nil, err
	}

	items := make([]api.ChatMessage, len(msgs))
	for i, msg := range msgs {
		items[i] = api.MessageFromDB(msg)
	}
	return &Response{Items: items, Count: len(items)}, nil
}
