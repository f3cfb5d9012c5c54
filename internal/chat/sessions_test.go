// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

func TestSessionsCreate(t *testing.T) {
	store := newFakeStore()
	sessions := chat.NewSessions(store)

	session, err := sessions.Create(t.Context(), "alice", "EQ-1", "")
	require.NoError(t, err)

	assert.Equal(t, maintdb.SessionStatusActive, session.Status)
	assert.Equal(t, "EQ-1", session.EquipmentID)
	assert.Equal(t, chat.DefaultTitle, session.Title)
	assert.Empty(t, session.RecordID)

	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, maintdb.ChatRoleAssistant, msgs[0].Role)
	assert.Equal(t, llm.WelcomeMessage, msgs[0].Content)
}

func TestSessionsCreateGreetingFailure(t *testing.T) {
	store := newFakeStore()
	store.appendErr = errors.New("firestore unavailable")
	sessions := chat.NewSessions(store)

	_, err := sessions.Create(t.Context(), "alice", "EQ-1", "")
	require.Error(t, err)

	// The orphaned session is an accepted degraded state, not rolled
	// back.
	assert.Len(t, store.sessions, 1)
}

func TestSessionsCompleteIdempotent(t *testing.T) {
	store := newFakeStore()
	sessions := chat.NewSessions(store)

	session, err := sessions.Create(t.Context(), "alice", "EQ-1", "点検メモ")
	require.NoError(t, err)

	require.NoError(t, sessions.Complete(t.Context(), "alice", session.ID, "rec-1"))
	first, err := sessions.Get(t.Context(), "alice", session.ID)
	require.NoError(t, err)

	require.NoError(t, sessions.Complete(t.Context(), "alice", session.ID, "rec-1"))
	second, err := sessions.Get(t.Context(), "alice", session.ID)
	require.NoError(t, err)

	assert.Equal(t, maintdb.SessionStatusCompleted, second.Status)
	assert.Equal(t, "rec-1", second.RecordID)
	assert.Equal(t, first, second)
}

func TestSessionsDeleteNotOwned(t *testing.T) {
	store := newFakeStore()
	sessions := chat.NewSessions(store)

	session, err := sessions.Create(t.Context(), "alice", "EQ-1", "")
	require.NoError(t, err)

	err = sessions.Delete(t.Context(), "bob", session.ID)
	require.ErrorIs(t, err, maintdb.ErrNotFound)

	// Nothing was deleted.
	_, err = sessions.Get(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestSessionsDeleteOrder(t *testing.T) {
	store := newFakeStore()
	sessions := chat.NewSessions(store)

	session, err := sessions.Create(t.Context(), "alice", "EQ-1", "")
	require.NoError(t, err)

	store.ops = nil
	require.NoError(t, sessions.Delete(t.Context(), "alice", session.ID))

	assert.Equal(t, []string{"delete-messages", "delete-session"}, store.ops)

	_, err = sessions.Get(t.Context(), "alice", session.ID)
	require.ErrorIs(t, err, maintdb.ErrNotFound)
}

func TestSessionsDeleteMissing(t *testing.T) {
	store := newFakeStore()
	sessions := chat.NewSessions(store)

	err := sessions.Delete(t.Context(), "alice", "no-such-session")
	require.ErrorIs(t, err, maintdb.ErrNotFound)
	assert.Empty(t, store.ops)
}
