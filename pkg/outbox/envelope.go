package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Kind names an outbound event type.
type Kind string

const (
	KindFavoriteAdded   Kind = "favorite.added"
	KindFavoriteRemoved Kind = "favorite.removed"
)

// Event is the stable envelope queued for the push consumer.
type Event struct {
	EventID    string    `json:"eventId"`
	Kind       Kind      `json:"kind"`
	UserID     string    `json:"userId"`
	ProductID  string    `json:"productId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent stamps an envelope with identity and time.
func NewEvent(kind Kind, userID, productID string) Event {
	return Event{
		EventID:    uuid.NewString(),
		Kind:       kind,
		UserID:     userID,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
}
