// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

// DefaultTitle is the title of a session created without one.
const DefaultTitle = "新規チャット"

// NewSessions returns a Sessions manager.
func NewSessions(store Store) *Sessions {
	return &Sessions{store: store}
}

// Sessions manages the chat session lifecycle.
type Sessions struct {
	store Store
}

// Create creates an active session and seeds the assistant greeting
// into its message log. A failure after the session write leaves an
// orphaned session without a greeting; the error is returned and the
// state is not repaired.
func (s *Sessions) Create(ctx context.Context, userID string, equipmentID string, title string) (maintdb.ChatSession, error) {
	if title == "" {
		title = DefaultTitle
	}
	now := time.Now()

	session := maintdb.ChatSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		EquipmentID: equipmentID,
		Title:       title,
		Status:      maintdb.SessionStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutSession(ctx, session); err != nil {
		return maintdb.ChatSession{}, err
	}

	greeting := maintdb.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      maintdb.ChatRoleAssistant,
		Content:   llm.WelcomeMessage,
		CreatedAt: now,
	}
	if err := s.store.AppendMessage(ctx, userID, session.ID, greeting); err != nil {
		return maintdb.ChatSession{}, fmt.Errorf("chat: seeding greeting: %w", err)
	}

	return session, nil
}

// Get returns the session owned by the user.
func (s *Sessions) Get(ctx context.Context, userID string, sessionID string) (maintdb.ChatSession, error) {
	return s.store.Session(ctx, userID, sessionID)
}

// List returns the user's sessions, most recent first.
func (s *Sessions) List(ctx context.Context, userID string) ([]maintdb.ChatSession, error) {
	return s.store.ListSessions(ctx, userID)
}

// Complete marks the session completed and links the saved record.
// Completing an already-completed session with the same record is a
// no-op; there is no transition out of completed.
func (s *Sessions) Complete(ctx context.Context, userID string, sessionID string, recordID string) error {
	session, err := s.store.Session(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status == maintdb.SessionStatusCompleted && session.RecordID == recordID {
		return nil
	}

	session.Status = maintdb.SessionStatusCompleted
	session.RecordID = recordID
	session.UpdatedAt = time.Now()
	return s.store.PutSession(ctx, session)
}

// Delete removes the session and its message log. Messages are removed
// first: a log left behind without its session is harmless, while a
// session without a deletable log is not.
func (s *Sessions) Delete(ctx context.Context, userID string, sessionID string) error {
	if _, err := s.store.Session(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.store.DeleteMessages(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, userID, sessionID)
}
