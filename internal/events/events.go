package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the service
const (
	UserRegistered      = "user.registered"
	UserDeactivated     = "user.deactivated"
	EventCreated        = "event.created"
	LocationDeactivated = "location.deactivated"
	ReviewsSynced       = "reviews.synced"
)

const eventVersion = "1.0"

// Event is the envelope written to the message broker
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType, source string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type UserRegisteredData struct {
	PrimaryID  string   `json:"primaryId"`
	AccountIDs []string `json:"accountIds"`
	Flow       string   `json:"flow"`
	ActorID    *string  `json:"actorId,omitempty"`
}

type UserDeactivatedData struct {
	UserID             string  `json:"userId"`
	DeactivatedMembers int64   `json:"deactivatedDependents"`
	ActorID            *string `json:"actorId,omitempty"`
}

type EventCreatedData struct {
	EventID    string `json:"eventId"`
	LocationID string `json:"locationId"`
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
}

type LocationDeactivatedData struct {
	LocationID string  `json:"locationId"`
	ActorID    *string `json:"actorId,omitempty"`
}

type ReviewsSyncedData struct {
	Count     int       `json:"count"`
	PlaceName string    `json:"placeName"`
	SyncedAt  time.Time `json:"syncedAt"`
}
