// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[string]maintdb.ChatSession{},
		messages: map[string][]maintdb.ChatMessage{},
	}
}

// fakeStore is an in-memory chat.Store recording the order of write
// operations.
type fakeStore struct {
	sessions map[string]maintdb.ChatSession
	messages map[string][]maintdb.ChatMessage
	ops      []string

	appendErr error
}

func key(userID string, sessionID string) string {
	return userID + "/" + sessionID
}

func (s *fakeStore) Session(_ context.Context, userID string, sessionID string) (maintdb.ChatSession, error) {
	session, ok := s.sessions[key(userID, sessionID)]
	if !ok {
		return maintdb.ChatSession{}, maintdb.ErrNotFound
	}
	return session, nil
}

func (s *fakeStore) PutSession(_ context.Context, session maintdb.ChatSession) error {
	s.ops = append(s.ops, "put-session")
	s.sessions[key(session.UserID, session.ID)] = session
	return nil
}

func (s *fakeStore) DeleteSession(_ context.Context, userID string, sessionID string) error {
	s.ops = append(s.ops, "delete-session")
	delete(s.sessions, key(userID, sessionID))
	return nil
}

func (s *fakeStore) ListSessions(_ context.Context, userID string) ([]maintdb.ChatSession, error) {
	var sessions []maintdb.ChatSession
	for _, session := range s.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *fakeStore) Messages(_ context.Context, userID string, sessionID string) ([]maintdb.ChatMessage, error) {
	return s.messages[key(userID, sessionID)], nil
}

func (s *fakeStore) AppendMessage(_ context.Context, userID string, sessionID string, msg maintdb.ChatMessage) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.ops = append(s.ops, "append-message")
	k := key(userID, sessionID)
	s.messages[k] = append(s.messages[k], msg)
	return nil
}

func (s *fakeStore) DeleteMessages(_ context.Context, userID string, sessionID string) error {
	s.ops = append(s.ops, "delete-messages")
	delete(s.messages, key(userID, sessionID))
	return nil
}

// fakeGateway returns queued responses and records the conversations it
// was invoked with.
type fakeGateway struct {
	responses []string
	err       error
	calls     [][]llm.Message
}

func (g *fakeGateway) Generate(_ context.Context, msgs []llm.Message) (string, error) {
	g.calls = append(g.calls, msgs)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("fakeGateway: no response queued")
	}
	res := g.responses[0]
	g.responses = g.responses[1:]
	return res, nil
}

type fakeResolver struct {
	text string
	err  error
}

func (r *fakeResolver) Resolve(_ context.Context, _ string) (string, error) {
	return r.text, r.err
}

// extractionJSON builds a well-formed model response for tests.
func extractionJSON(message string, symptom string, cause string, solution string) string {
	info := llm.ExtractedInfo{}
	if symptom != "" {
		info.Symptom = &symptom
	} else {
		info.MissingFields = append(info.MissingFields, llm.FieldSymptom)
	}
	if cause != "" {
		info.Cause = &cause
	} else {
		info.MissingFields = append(info.MissingFields, llm.FieldCause)
	}
	if solution != "" {
		info.Solution = &solution
	} else {
		info.MissingFields = append(info.MissingFields, llm.FieldSolution)
	}
	info.IsComplete = len(info.MissingFields) == 0

	missing := "["
	for i, f := range info.MissingFields {
		if i > 0 {
			missing += ","
		}
		missing += fmt.Sprintf("%q", f)
	}
	missing += "]"

	fieldJSON := func(v *string) string {
		if v == nil {
			return "null"
		}
		return fmt.Sprintf("%q", *v)
	}

	return fmt.Sprintf(`{
		"message": %q,
		"extractedInfo": {
			"symptom": %s,
			"cause": %s,
			"solution": %s,
			"isComplete": %t,
			"missingFields": %s
		}
	}`, message, fieldJSON(info.Symptom), fieldJSON(info.Cause), fieldJSON(info.Solution), info.IsComplete, missing)
}
