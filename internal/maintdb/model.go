// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package maintdb defines the documents stored in Firestore and a store
// for accessing them.
package maintdb

import "time"

type ChatRole string

const (
	// ChatRoleUser represents a user message.
	ChatRoleUser ChatRole = "user"
	// ChatRoleAssistant represents an assistant message.
	ChatRoleAssistant ChatRole = "assistant"
)

type SessionStatus string

const (
	// SessionStatusActive is a session still collecting information.
	SessionStatusActive SessionStatus = "active"
	// SessionStatusCompleted is a session a record was saved from.
	SessionStatusCompleted SessionStatus = "completed"
)

// Equipment represents a piece of equipment in the master data.
type Equipment struct {
	// ID is the unique identifier of the equipment.
	ID string `firestore:"id"`

	// EquipmentID is the user-assigned management code of the equipment.
	EquipmentID string `firestore:"equipmentId"`

	// EquipmentName is the display name of the equipment.
	EquipmentName string `firestore:"equipmentName"`

	// CreatedAt is the timestamp when the equipment was registered.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the timestamp when the equipment was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// MaintenanceRecord represents a saved maintenance record.
type MaintenanceRecord struct {
	// ID is the unique identifier of the record.
	ID string `firestore:"id"`

	// EquipmentID is the ID of the equipment the record is for.
	EquipmentID string `firestore:"equipmentId"`

	// Symptom is the problem that occurred on the equipment.
	Symptom string `firestore:"symptom"`

	// Cause is why the problem occurred.
	Cause string `firestore:"cause"`

	// Solution is the action taken to resolve the problem.
	Solution string `firestore:"solution"`

	// PDFKey is the storage key of an attached PDF, if any.
	PDFKey string `firestore:"pdfKey"`

	// ChatSessionID is the chat session the record was saved from, if any.
	ChatSessionID string `firestore:"chatSessionId"`

	// CreatedBy is the ID of the user that created the record.
	CreatedBy string `firestore:"createdBy"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the timestamp when the record was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// ChatSession represents a chat session owned by a user.
type ChatSession struct {
	// ID is the unique identifier of the session.
	ID string `firestore:"id"`

	// UserID is the ID of the user that owns the session.
	UserID string `firestore:"userId"`

	// EquipmentID is the equipment the session is about.
	EquipmentID string `firestore:"equipmentId"`

	// Title is the display title of the session.
	Title string `firestore:"title"`

	// Status is the lifecycle status of the session.
	Status SessionStatus `firestore:"status"`

	// RecordID is the ID of the record saved from the session, set once
	// the session is completed.
	RecordID string `firestore:"recordId"`

	// CreatedAt is the timestamp when the session was created.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the timestamp when the session was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// ChatMessage represents a message in a chat session. Messages are
// append-only and never updated.
type ChatMessage struct {
	// ID is the unique identifier of the message.
	ID string `firestore:"id"`

	// SessionID is the session the message belongs to.
	SessionID string `firestore:"sessionId"`

	// Role is the role of the message sender.
	Role ChatRole `firestore:"role"`

	// Content is the text content of the message.
	Content string `firestore:"content"`

	// PDFKey is the storage key of a PDF attached to the message, if any.
	PDFKey string `firestore:"pdfKey"`

	// CreatedAt is the timestamp when the message was created.
	CreatedAt time.Time `firestore:"createdAt"`
}
