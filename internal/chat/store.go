// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package chat coordinates the record extraction conversation: session
// lifecycle, turn orchestration and the model gateway boundary.
package chat

import (
	"context"

	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

// Store persists sessions and their append-only message logs. Sessions
// are scoped to their owning user; a lookup for a session the user does
// not own reports maintdb.ErrNotFound.
type Store interface {
	Session(ctx context.Context, userID string, sessionID string) (maintdb.ChatSession, error)
	PutSession(ctx context.Context, session maintdb.ChatSession) error
	DeleteSession(ctx context.Context, userID string, sessionID string) error
	ListSessions(ctx context.Context, userID string) ([]maintdb.ChatSession, error)

	Messages(ctx context.Context, userID string, sessionID string) ([]maintdb.ChatMessage, error)
	AppendMessage(ctx context.Context, userID string, sessionID string, msg maintdb.ChatMessage) error
	DeleteMessages(ctx context.Context, userID string, sessionID string) error
}

// Gateway invokes the language model with an ordered conversation and
// returns its raw output.
type Gateway interface {
	Generate(ctx context.Context, msgs []llm.Message) (string, error)
}

// AttachmentResolver resolves an attachment key to document text.
type AttachmentResolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}
