package profile

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventUpserted EventType = "profile.upserted"
	EventDeleted  EventType = "profile.deleted"
)

type Event struct {
	EventType      EventType `json:"event_type"`
	OwnerID        uuid.UUID `json:"owner_id"`
	GitHubUsername string    `json:"githubusername,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
