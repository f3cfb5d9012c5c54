// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

// ErrEmptyMessage is returned when the user's message is empty after
// trimming.
var ErrEmptyMessage = errors.New("chat: empty message")

// NewOrchestrator returns an Orchestrator.
func NewOrchestrator(store Store, gateway Gateway, attachments AttachmentResolver) *Orchestrator {
	return &Orchestrator{
		store:       store,
		gateway:     gateway,
		attachments: attachments,
	}
}

// Orchestrator executes one conversation turn: load history, append the
// user turn, invoke the model, parse, persist both turns.
type Orchestrator struct {
	store       Store
	gateway     Gateway
	attachments AttachmentResolver
}

// Turn is the result of one executed conversation turn.
type Turn struct {
	// UserMessage is the persisted user turn, without any attachment
	// text.
	UserMessage maintdb.ChatMessage

	// AssistantMessage is the persisted assistant turn.
	AssistantMessage maintdb.ChatMessage

	// ExtractedInfo is the extraction state parsed from the assistant
	// turn.
	ExtractedInfo llm.ExtractedInfo
}

// SendTurn sends the user's message on the session and returns both new
// messages with the parsed extraction state. pdfKey optionally
// references an attached document whose text is shown to the model;
// resolution failures degrade to no attachment. Gateway failures
// propagate to the caller; the user turn stays persisted in that case.
func (o *Orchestrator) SendTurn(ctx context.Context, userID string, sessionID string, content string, pdfKey string) (*Turn, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := o.store.Session(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	msgs, err := o.store.Messages(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(msgs)+1)
	for _, msg := range msgs {
		history = append(history, llm.Message{
			Role:    llm.Role(msg.Role),
			Content: msg.Content,
		})
	}
	history = append(history, llm.Message{
		Role:    llm.RoleUser,
		Content: content,
	})

	// The attachment text is prefixed onto the last user turn so the
	// model sees the document context before the instruction. The
	// prefix is for the model call only and is never persisted.
	if pdfKey != "" {
		if text, err := o.attachments.Resolve(ctx, pdfKey); err != nil {
			slog.WarnContext(ctx, "chat: resolving attachment", "key", pdfKey, "error", err)
		} else {
			last := &history[len(history)-1]
			last.Content = "[添付PDFの内容]\n" + text + "\n\n[ユーザーメッセージ]\n" + last.Content
		}
	}

	userMsg := maintdb.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      maintdb.ChatRoleUser,
		Content:   content,
		PDFKey:    pdfKey,
		CreatedAt: time.Now(),
	}
	if err := o.store.AppendMessage(ctx, userID, sessionID, userMsg); err != nil {
		return nil, err
	}

	raw, err := o.gateway.Generate(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("chat: generating assistant turn: %w", err)
	}
	result := llm.Parse(raw)

	assistantMsg := maintdb.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      maintdb.ChatRoleAssistant,
		Content:   result.Message,
		CreatedAt: time.Now(),
	}
	if err := o.store.AppendMessage(ctx, userID, sessionID, assistantMsg); err != nil {
		return nil, err
	}

	return &Turn{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		ExtractedInfo:    result.ExtractedInfo,
	}, nil
}
