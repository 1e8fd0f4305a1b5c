// Package events publishes issue lifecycle events so departments can pick up new work.
package events

import (
	"context"
	"time"

	"civiclens/models"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	IssueReported      = "issue.reported"
	IssueStatusUpdated = "issue.status_updated"
	IssueDeleted       = "issue.deleted"
)

// Event represents a domain event
type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	IssueID   string          `json:"issue_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// IssueReportedPayload is published when a citizen submits an issue
type IssueReportedPayload struct {
	IssueID            string               `json:"issue_id"`
	Title              string               `json:"title"`
	Category           models.IssueCategory `json:"category"`
	Severity           models.Severity      `json:"severity"`
	AssignedDepartment string               `json:"assigned_department"`
	District           string               `json:"district"`
	DateReported       time.Time            `json:"date_reported"`
}

// IssueStatusUpdatedPayload is published when an operator changes a status
type IssueStatusUpdatedPayload struct {
	IssueID   string        `json:"issue_id"`
	OldStatus models.Status `json:"old_status"`
	NewStatus models.Status `json:"new_status"`
	ChangedAt time.Time     `json:"changed_at"`
}

func NewEvent(eventType string, issueID string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		IssueID:   issueID,
		Payload:   payloadBytes,
		Timestamp: time.Now(),
	}, nil
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ParsePayload decodes the payload into v
func (e *Event) ParsePayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Publisher delivers events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }
