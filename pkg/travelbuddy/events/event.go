// Package events fans listing and session changes out to subscribers,
// other server instances and an optional message broker.
package events

import (
	"context"
	"time"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

// Type names what happened
type Type string

const (
	ListingCreated Type = "listing.created"
	ListingDeleted Type = "listing.deleted"
	ListingClosed  Type = "listing.closed"
	JoinAccepted   Type = "join.accepted"
	JoinLeft       Type = "join.left"
	SignedIn       Type = "session.signed_in"
	SignedOut      Type = "session.signed_out"
)

// TopicListings is the public feed of listing and join activity.
const TopicListings = "listings"

// SessionTopic is the private topic carrying a user's session changes.
func SessionTopic(userID string) string {
	return "session:" + userID
}

// Event is a single notification
type Event struct {
	Type      Type               `json:"type"`
	Topic     string             `json:"topic"`
	Category  models.ListingType `json:"category,omitempty"`
	ListingID string             `json:"listing_id,omitempty"`
	UserID    string             `json:"user_id,omitempty"`
	SessionID string             `json:"session_id,omitempty"`
	At        time.Time          `json:"at"`
}

// ListingEvent builds an event on the listings topic.
func ListingEvent(t Type, ref models.ListingRef, userID string) Event {
	return Event{
		Type:      t,
		Topic:     TopicListings,
		Category:  ref.Type,
		ListingID: ref.ID,
		UserID:    userID,
	}
}

// SessionEvent builds an event on the user's session topic.
func SessionEvent(t Type, userID, sessionID string) Event {
	return Event{
		Type:      t,
		Topic:     SessionTopic(userID),
		UserID:    userID,
		SessionID: sessionID,
	}
}

// Publisher accepts events. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type discard struct{}

func (discard) Publish(context.Context, Event) {}

// Discard drops every event.
var Discard Publisher = discard{}

// Sink receives a copy of every event published on a hub
type Sink interface {
	Send(ctx context.Context, e Event) error
}
