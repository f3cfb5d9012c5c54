// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package api defines the JSON types returned by the public API.
package api

import (
	"time"

	"github.com/curioswitch/mentenote/internal/maintdb"
)

// Equipment is a piece of equipment in the master data.
type Equipment struct {
	// ID is the unique identifier of the equipment.
	ID string `json:"id"`

	// EquipmentID is the user-assigned management code of the equipment.
	EquipmentID string `json:"equipmentId"`

	// EquipmentName is the display name of the equipment.
	EquipmentName string `json:"equipmentName"`

	// CreatedAt is when the equipment was registered.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the equipment was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// MaintenanceRecord is a saved maintenance record.
type MaintenanceRecord struct {
	// ID is the unique identifier of the record.
	ID string `json:"id"`

	// EquipmentID is the ID of the equipment the record is for.
	EquipmentID string `json:"equipmentId"`

	// EquipmentName is the name of the equipment, joined on read.
	EquipmentName string `json:"equipmentName,omitempty"`

	// Symptom describes the problem that occurred.
	Symptom string `json:"symptom"`

	// Cause describes why the problem occurred.
	Cause string `json:"cause"`

	// Solution describes the action taken to resolve the problem.
	Solution string `json:"solution"`

	// PDFKey is the storage key of an attached PDF, if any.
	PDFKey string `json:"pdfKey,omitempty"`

	// ChatSessionID is the chat session the record was saved from, if any.
	ChatSessionID string `json:"chatSessionId,omitempty"`

	// CreatedBy is the user that created the record.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatSession is a chat session between a user and the assistant.
type ChatSession struct {
	// ID is the unique identifier of the session.
	ID string `json:"id"`

	// EquipmentID is the equipment the session is about.
	EquipmentID string `json:"equipmentId"`

	// Title is the display title of the session.
	Title string `json:"title"`

	// Status is the lifecycle status of the session, active or completed.
	Status string `json:"status"`

	// RecordID is the record saved from the session, set once completed.
	RecordID string `json:"recordId,omitempty"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatMessage is a single turn in a chat session.
type ChatMessage struct {
	// ID is the unique identifier of the message.
	ID string `json:"id"`

	// SessionID is the session the message belongs to.
	SessionID string `json:"sessionId"`

	// Role is the sender of the message, user or assistant.
	Role string `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`

	// PDFKey is the storage key of a PDF attached to the message, if any.
	PDFKey string `json:"pdfKey,omitempty"`

	// CreatedAt is when the message was created.
	CreatedAt time.Time `json:"createdAt"`
}

// SessionFromDB converts a stored session to its API form.
func SessionFromDB(s maintdb.ChatSession) ChatSession {
	return ChatSession{
		ID:          s.ID,
		EquipmentID: s.EquipmentID,
		Title:       s.Title,
		Status:      string(s.Status),
		RecordID:    s.RecordID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// MessageFromDB converts a stored message to its API form.
func MessageFromDB(m maintdb.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
		PDFKey:    m.PDFKey,
		CreatedAt: m.CreatedAt,
	}
}

// EquipmentFromDB converts stored equipment to its API form.
func EquipmentFromDB(e maintdb.Equipment) Equipment {
	return Equipment{
		ID:            e.ID,
		EquipmentID:   e.EquipmentID,
		EquipmentName: e.EquipmentName,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// RecordFromDB converts a stored record to its API form. equipmentName may
// be empty when the equipment is no longer known.
func RecordFromDB(r maintdb.MaintenanceRecord, equipmentName string) MaintenanceRecord {
	return MaintenanceRecord{
		ID:            r.ID,
		EquipmentID:   r.EquipmentID,
		EquipmentName: equipmentName,
		Symptom:       r.Symptom,
		Cause:         r.Cause,
		Solution:      r.Solution,
		PDFKey:        r.PDFKey,
		ChatSessionID: r.ChatSessionID,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
