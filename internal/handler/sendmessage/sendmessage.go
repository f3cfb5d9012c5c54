// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package sendmessage

import (
	"context"
	"errors"
	"strings"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/api"
	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/httpapi"
	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

type Request struct {
	SessionID string `path:"id"`
	Content   string `json:"content"`
	PDFKey    string `json:"pdfKey"`
}

type Response struct {
	UserMessage      api.ChatMessage   `json:"userMessage"`
	AssistantMessage api.ChatMessage   `json:"assistantMessage"`
	ExtractedInfo    llm.ExtractedInfo `json:"extractedInfo"`
}

// NewHandler returns a Handler.
func NewHandler(orchestrator *chat.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Handler executes one conversation turn on a session.
type Handler struct {
	orchestrator *chat.Orchestrator
}

func (h *Handler) SendMessage(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("メッセージは必須です"))
	}

	userID := firebaseauth.TokenFromContext(ctx).UID
	turn, err := h.orchestrator.SendTurn(ctx, userID, req.SessionID, req.Content, req.PDFKey)
	if errors.Is(err, maintdb.ErrNotFound) {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("Session not found"))
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		UserMessage:      api.MessageFromDB(turn.UserMessage),
		AssistantMessage: api.MessageFromDB(turn.AssistantMessage),
		ExtractedInfo:    turn.ExtractedInfo,
	}, nil
}
