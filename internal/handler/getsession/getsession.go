// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getsession

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
	ID string `path:"id"`
}

type Response = api.ChatSession

// NewHandler returns a Handler.
func NewHandler(sessions *chat.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Handler returns a single chat session owned by the caller.
type Handler struct {
	sessions *chat.Sessions
}

func (h *Handler) GetSession(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	session, err := h.sessions.Get(ctx, userID, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Session not found"))
	}
	if err != nil {
		return nil, err
	}

	res := api.SessionFromDB(session)
	return &res, nil
}
