// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package maintdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("maintdb: not found")

// NewStore returns a Store backed by the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Store accesses the documents of the maintenance system in Firestore.
type Store struct {
	client *firestore.Client
}

func (s *Store) sessions(userID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(userID).Collection("sessions")
}

func (s *Store) messages(userID string, sessionID string) *firestore.CollectionRef {
	return s.sessions(userID).Doc(sessionID).Collection("messages")
}

// Session returns the session with the given ID owned by the user.
func (s *Store) Session(ctx context.Context, userID string, sessionID string) (ChatSession, error) {
	doc, err := s.sessions(userID).Doc(sessionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ChatSession{}, ErrNotFound
		}
		return ChatSession{}, fmt.Errorf("maintdb: getting session: %w", err)
	}
	var session ChatSession
	if err := doc.DataTo(&session); err != nil {
		return ChatSession{}, fmt.Errorf("maintdb: decoding session: %w", err)
	}
	return session, nil
}

// PutSession creates or replaces a session document.
func (s *Store) PutSession(ctx context.Context, session ChatSession) error {
	if _, err := s.sessions(session.UserID).Doc(session.ID).Set(ctx, session); err != nil {
		return fmt.Errorf("maintdb: saving session: %w", err)
	}
	return nil
}

// DeleteSession deletes a session document. Messages are expected to be
// deleted first via DeleteMessages.
func (s *Store) DeleteSession(ctx context.Context, userID string, sessionID string) error {
	if _, err := s.sessions(userID).Doc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("maintdb: deleting session: %w", err)
	}
	return nil
}

// ListSessions returns the user's sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, userID string) ([]ChatSession, error) {
	iter := s.sessions(userID).Query.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var sessions []ChatSession
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maintdb: fetching session: %w", err)
		}
		var session ChatSession
		if err := doc.DataTo(&session); err != nil {
			return nil, fmt.Errorf("maintdb: decoding session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// messageTimeLayout is fixed-width so document IDs sort
// lexicographically in timestamp order. RFC3339Nano drops trailing
// zeros and does not.
const messageTimeLayout = "2006-01-02T15:04:05.000000000Z"

// messageDocID returns the document ID for a message. IDs sort in
// creation order even when timestamps collide.
func messageDocID(msg ChatMessage) string {
	return msg.CreatedAt.UTC().Format(messageTimeLayout) + "-" + msg.ID
}

// AppendMessage appends a message to a session's log.
func (s *Store) AppendMessage(ctx context.Context, userID string, sessionID string, msg ChatMessage) error {
	doc := s.messages(userID, sessionID).Doc(messageDocID(msg))
	if _, err := doc.Set(ctx, msg); err != nil {
		return fmt.Errorf("maintdb: saving message: %w", err)
	}
	return nil
}

// Messages returns the session's messages, oldest first.
func (s *Store) Messages(ctx context.Context, userID string, sessionID string) ([]ChatMessage, error) {
	iter := s.messages(userID, sessionID).Query.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var msgs []ChatMessage
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maintdb: fetching message: %w", err)
		}
		var msg ChatMessage
		if err := doc.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("maintdb: decoding message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// DeleteMessages deletes all messages in a session's log.
func (s *Store) DeleteMessages(ctx context.Context, userID string, sessionID string) error {
	iter := s.messages(userID, sessionID).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("maintdb: fetching message for delete: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("maintdb: deleting message: %w", err)
		}
	}
	return nil
}

// Equipment returns the equipment with the given ID.
func (s *Store) Equipment(ctx context.Context, id string) (Equipment, error) {
	doc, err := s.client.Collection("equipment").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Equipment{}, ErrNotFound
		}
		return Equipment{}, fmt.Errorf("maintdb: getting equipment: %w", err)
	}
	var equipment Equipment
	if err := doc.DataTo(&equipment); err != nil {
		return Equipment{}, fmt.Errorf("maintdb: decoding equipment: %w", err)
	}
	return equipment, nil
}

// PutEquipment creates or replaces an equipment document.
func (s *Store) PutEquipment(ctx context.Context, equipment Equipment) error {
	if _, err := s.client.Collection("equipment").Doc(equipment.ID).Set(ctx, equipment); err != nil {
		return fmt.Errorf("maintdb: saving equipment: %w", err)
	}
	return nil
}

// DeleteEquipment deletes an equipment document.
func (s *Store) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := s.client.Collection("equipment").Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("maintdb: deleting equipment: %w", err)
	}
	return nil
}

// ListEquipment returns all equipment, most recently registered first.
func (s *Store) ListEquipment(ctx context.Context) ([]Equipment, error) {
	iter := s.client.Collection("equipment").Query.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var items []Equipment
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maintdb: fetching equipment: %w", err)
		}
		var equipment Equipment
		if err := doc.DataTo(&equipment); err != nil {
			return nil, fmt.Errorf("maintdb: decoding equipment: %w", err)
		}
		items = append(items, equipment)
	}
	return items, nil
}

// EquipmentNames returns a map from equipment ID to name for the given
// IDs. IDs that no longer resolve are omitted.
func (s *Store) EquipmentNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	var mu sync.Mutex

	grp, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		grp.Go(func() error {
			equipment, err := s.Equipment(ctx, id)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			names[id] = equipment.EquipmentName
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("maintdb: resolving equipment names: %w", err)
	}
	return names, nil
}

// Record returns the maintenance record with the given ID.
func (s *Store) Record(ctx context.Context, id string) (MaintenanceRecord, error) {
	doc, err := s.client.Collection("records").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return MaintenanceRecord{}, ErrNotFound
		}
		return MaintenanceRecord{}, fmt.Errorf("maintdb: getting record: %w", err)
	}
	var record MaintenanceRecord
	if err := doc.DataTo(&record); err != nil {
		return MaintenanceRecord{}, fmt.Errorf("maintdb: decoding record: %w", err)
	}
	return record, nil
}

// PutRecord creates or replaces a maintenance record document.
func (s *Store) PutRecord(ctx context.Context, record MaintenanceRecord) error {
	if _, err := s.client.Collection("records").Doc(record.ID).Set(ctx, record); err != nil {
		return fmt.Errorf("maintdb: saving record: %w", err)
	}
	return nil
}

// DeleteRecord deletes a maintenance record document.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.client.Collection("records").Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("maintdb: deleting record: %w", err)
	}
	return nil
}

// HasRecordsForEquipment reports whether any record references the
// equipment.
func (s *Store) HasRecordsForEquipment(ctx context.Context, equipmentID string) (bool, error) {
	iter := s.client.Collection("records").Query.
		Where("equipmentId", "==", equipmentID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("maintdb: checking records for equipment: %w", err)
	}
	return true, nil
}

// RecordFilter restricts the records returned by QueryRecords. Zero
// values leave the corresponding dimension unfiltered.
type RecordFilter struct {
	EquipmentID string
	Start       time.Time
	End         time.Time
	Keyword     string
	Limit       int
}

// ParseRecordFilter builds a RecordFilter from query-string values.
// Dates accept RFC 3339 or YYYY-MM-DD; a date-only end bound is
// inclusive of that day.
func ParseRecordFilter(equipmentID string, startDate string, endDate string, keyword string, limit int) (RecordFilter, error) {
	filter := RecordFilter{
		EquipmentID: equipmentID,
		Keyword:     keyword,
		Limit:       limit,
	}

	if startDate != "" {
		start, _, err := parseDate(startDate)
		if err != nil {
			return RecordFilter{}, fmt.Errorf("maintdb: parsing start date: %w", err)
		}
		filter.Start = start
	}
	if endDate != "" {
		end, dateOnly, err := parseDate(endDate)
		if err != nil {
			return RecordFilter{}, fmt.Errorf("maintdb: parsing end date: %w", err)
		}
		if dateOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.End = end
	}
	return filter, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// QueryRecords returns records matching the filter, newest first. The
// keyword is matched case-insensitively against symptom, cause and
// solution after the store query, mirroring the scan-side filtering the
// data layout requires.
func (s *Store) QueryRecords(ctx context.Context, filter RecordFilter) ([]MaintenanceRecord, error) {
	q := s.client.Collection("records").Query
	if filter.EquipmentID != "" {
		q = q.Where("equipmentId", "==", filter.EquipmentID)
	}
	if !filter.Start.IsZero() {
		q = q.Where("createdAt", ">=", filter.Start)
	}
	if !filter.End.IsZero() {
		q = q.Where("createdAt", "<=", filter.End)
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var records []MaintenanceRecord
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maintdb: fetching record: %w", err)
		}
		var record MaintenanceRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("maintdb: decoding record: %w", err)
		}
		if filter.Keyword != "" && !recordMatchesKeyword(record, filter.Keyword) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func recordMatchesKeyword(record MaintenanceRecord, keyword string) bool {
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(record.Symptom), kw) ||
		strings.Contains(strings.ToLower(record.Cause), kw) ||
		strings.Contains(strings.ToLower(record.Solution), kw)
}
