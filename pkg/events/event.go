package events

import "time"

// Event is the contract every domain event satisfies before it goes on
// the wire.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_SHARED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation for events built ad hoc.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes emitted by the document and review domains.
const (
	TypeDocumentCreated  = "DOCUMENT_CREATED"
	TypeDocumentShared   = "DOCUMENT_SHARED"
	TypeDocumentDeleted  = "DOCUMENT_DELETED"
	TypeRoadmapPromoted  = "ROADMAP_PROMOTED"
	TypeTemplateImported = "TEMPLATE_IMPORTED"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

// NewDocumentCreated fires when a document is first persisted.
func NewDocumentCreated(documentID, userID string) Event {
	return newBase(TypeDocumentCreated, map[string]interface{}{
		"document_id": documentID,
		"user_id":     userID,
	})
}

// NewDocumentShared fires when a document export is mailed to a recipient.
func NewDocumentShared(documentID, userID, recipient string) Event {
	return newBase(TypeDocumentShared, map[string]interface{}{
		"document_id": documentID,
		"user_id":     userID,
		"recipient":   recipient,
	})
}

// NewDocumentDeleted fires on soft delete.
func NewDocumentDeleted(documentID, userID string) Event {
	return newBase(TypeDocumentDeleted, map[string]interface{}{
		"document_id": documentID,
		"user_id":     userID,
	})
}

// NewRoadmapPromoted fires when reviewed items are promoted into a roadmap.
func NewRoadmapPromoted(roadmapID, documentID string, itemCount int) Event {
	return newBase(TypeRoadmapPromoted, map[string]interface{}{
		"roadmap_id":  roadmapID,
		"document_id": documentID,
		"item_count":  itemCount,
	})
}

// NewTemplateImported fires after a template bundle import completes.
func NewTemplateImported(userID string, imported, skipped int) Event {
	return newBase(TypeTemplateImported, map[string]interface{}{
		"user_id":  userID,
		"imported": imported,
		"skipped":  skipped,
	})
}
