// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mentenote/internal/chat"
	"github.com/curioswitch/mentenote/internal/llm"
	"github.com/curioswitch/mentenote/internal/maintdb"
)

func newTestConversation(t *testing.T, gateway *fakeGateway, resolver *fakeResolver) (*chat.Orchestrator, *fakeStore, maintdb.ChatSession) {
	t.Helper()

	store := newFakeStore()
	session, err := chat.NewSessions(store).Create(t.Context(), "alice", "EQ-1", "")
	require.NoError(t, err)

	return chat.NewOrchestrator(store, gateway, resolver), store, session
}

func TestSendTurnFirstSymptom(t *testing.T) {
	gateway := &fakeGateway{
		responses: []string{extractionJSON("原因について教えてください。", "ポンプから異音が発生する", "", "")},
	}
	orch, store, session := newTestConversation(t, gateway, &fakeResolver{})

	turn, err := orch.SendTurn(t.Context(), "alice", session.ID, "ポンプから変な音がする", "")
	require.NoError(t, err)

	assert.Equal(t, maintdb.ChatRoleUser, turn.UserMessage.Role)
	assert.Equal(t, "ポンプから変な音がする", turn.UserMessage.Content)
	assert.Equal(t, maintdb.ChatRoleAssistant, turn.AssistantMessage.Role)
	assert.Equal(t, "原因について教えてください。", turn.AssistantMessage.Content)

	assert.False(t, turn.ExtractedInfo.IsComplete)
	require.NotNil(t, turn.ExtractedInfo.Symptom)
	assert.Equal(t, []string{llm.FieldCause, llm.FieldSolution}, turn.ExtractedInfo.MissingFields)

	// Greeting plus the two new turns, user before assistant.
	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, maintdb.ChatRoleAssistant, msgs[0].Role)
	assert.Equal(t, maintdb.ChatRoleUser, msgs[1].Role)
	assert.Equal(t, maintdb.ChatRoleAssistant, msgs[2].Role)

	// The gateway saw the full history including the seeded greeting.
	require.Len(t, gateway.calls, 1)
	require.Len(t, gateway.calls[0], 2)
	assert.Equal(t, llm.RoleAssistant, gateway.calls[0][0].Role)
	assert.Equal(t, llm.RoleUser, gateway.calls[0][1].Role)
}

func TestSendTurnSequenceCompletes(t *testing.T) {
	gateway := &fakeGateway{
		responses: []string{
			extractionJSON("原因について教えてください。", "ポンプから異音が発生する", "", ""),
			extractionJSON("対策について教えてください。", "ポンプから異音が発生する", "ベアリングの摩耗", ""),
			extractionJSON("この内容で記録を保存してよろしいですか？", "ポンプから異音が発生する", "ベアリングの摩耗", "ベアリングを交換した"),
		},
	}
	orch, store, session := newTestConversation(t, gateway, &fakeResolver{})

	var last *chat.Turn
	for _, content := range []string{"ポンプから変な音がする", "ベアリングが摩耗していた", "ベアリングを交換して直した"} {
		turn, err := orch.SendTurn(t.Context(), "alice", session.ID, content, "")
		require.NoError(t, err)
		last = turn
	}

	assert.True(t, last.ExtractedInfo.IsComplete)
	assert.Empty(t, last.ExtractedInfo.MissingFields)
	require.NotNil(t, last.ExtractedInfo.Symptom)
	require.NotNil(t, last.ExtractedInfo.Cause)
	require.NotNil(t, last.ExtractedInfo.Solution)

	// Log stays strictly alternating in creation order.
	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 7)
	for i, msg := range msgs {
		if i%2 == 0 {
			assert.Equal(t, maintdb.ChatRoleAssistant, msg.Role)
		} else {
			assert.Equal(t, maintdb.ChatRoleUser, msg.Role)
		}
	}
}

func TestSendTurnGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("model unavailable")}
	orch, store, session := newTestConversation(t, gateway, &fakeResolver{})

	turn, err := orch.SendTurn(t.Context(), "alice", session.ID, "ポンプから変な音がする", "")
	require.Error(t, err)
	assert.Nil(t, turn)

	// The user turn stays persisted, no assistant turn is.
	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, maintdb.ChatRoleUser, msgs[1].Role)
}

func TestSendTurnFallbackOutput(t *testing.T) {
	gateway := &fakeGateway{responses: []string{"すみません、もう一度お願いします。"}}
	orch, _, session := newTestConversation(t, gateway, &fakeResolver{})

	turn, err := orch.SendTurn(t.Context(), "alice", session.ID, "ポンプから変な音がする", "")
	require.NoError(t, err)

	assert.Equal(t, "すみません、もう一度お願いします。", turn.AssistantMessage.Content)
	assert.False(t, turn.ExtractedInfo.IsComplete)
	assert.Equal(t, []string{llm.FieldSymptom, llm.FieldCause, llm.FieldSolution}, turn.ExtractedInfo.MissingFields)
}

func TestSendTurnAttachment(t *testing.T) {
	gateway := &fakeGateway{
		responses: []string{extractionJSON("確認しました。", "ポンプから異音が発生する", "", "")},
	}
	resolver := &fakeResolver{text: "点検報告書: モーター軸受の温度上昇を確認"}
	orch, store, session := newTestConversation(t, gateway, resolver)

	turn, err := orch.SendTurn(t.Context(), "alice", session.ID, "添付の報告書を確認してください", "uploads/alice/report.pdf")
	require.NoError(t, err)

	// The model sees the document text before the user's message.
	require.Len(t, gateway.calls, 1)
	sent := gateway.calls[0][len(gateway.calls[0])-1].Content
	assert.True(t, strings.HasPrefix(sent, "[添付PDFの内容]\n点検報告書: モーター軸受の温度上昇を確認"))
	assert.True(t, strings.HasSuffix(sent, "[ユーザーメッセージ]\n添付の報告書を確認してください"))

	// The persisted message keeps only the literal text and the key.
	assert.Equal(t, "添付の報告書を確認してください", turn.UserMessage.Content)
	assert.Equal(t, "uploads/alice/report.pdf", turn.UserMessage.PDFKey)
	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "添付の報告書を確認してください", msgs[1].Content)
}

func TestSendTurnAttachmentFailure(t *testing.T) {
	gateway := &fakeGateway{
		responses: []string{extractionJSON("教えてください。", "", "", "")},
	}
	resolver := &fakeResolver{err: errors.New("object not found")}
	orch, _, session := newTestConversation(t, gateway, resolver)

	// Resolution failure degrades to no attachment, not an error.
	_, err := orch.SendTurn(t.Context(), "alice", session.ID, "報告書を見てください", "uploads/alice/missing.pdf")
	require.NoError(t, err)

	sent := gateway.calls[0][len(gateway.calls[0])-1].Content
	assert.Equal(t, "報告書を見てください", sent)
}

func TestSendTurnEmptyMessage(t *testing.T) {
	orch, store, session := newTestConversation(t, &fakeGateway{}, &fakeResolver{})

	_, err := orch.SendTurn(t.Context(), "alice", session.ID, "   ", "")
	require.ErrorIs(t, err, chat.ErrEmptyMessage)

	msgs, err := store.Messages(t.Context(), "alice", session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestSendTurnUnknownSession(t *testing.T) {
	orch, _, _ := newTestConversation(t, &fakeGateway{}, &fakeResolver{})

	_, err := orch.SendTurn(t.Context(), "alice", "no-such-session", "こんにちは", "")
	require.ErrorIs(t, err, maintdb.ErrNotFound)
}
