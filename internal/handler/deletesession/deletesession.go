// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deletesession

import (
	"context"
	"errors"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/chat"
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
func NewHandler(sessions *chat.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Handler deletes a chat session and its message log.
type Handler struct {
	sessions *chat.Sessions
}

func (h *Handler) DeleteSession(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	err := h.sessions.Delete(ctx, userID, req.ID)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Session not found"))
	}
	if err != nil {
		return nil, err
	}

	return &Response{Message: "Session deleted successfully"}, nil
}
