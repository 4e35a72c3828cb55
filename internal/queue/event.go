// Package queue defines the reservation events exchanged over the message
// broker, the publisher that emits them and the consumer that records them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-reservations/internal/model"
)

// EventType names what happened to a reservation.
type EventType string

const (
	EventCreated   EventType = "reservation.created"
	EventUpdated   EventType = "reservation.updated"
	EventCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is published after every successful mutation of the
// registry.  It carries the reservation as it stands after the change (or,
// for a cancellation, as it was when removed) so that consumers never need
// to query the allocator.
type ReservationEvent struct {
	EventID       string              `json:"event_id"`
	Type          EventType           `json:"type"`
	Restaurant    string              `json:"restaurant"`
	ReservationID int                 `json:"reservation_id"`
	FullName      string              `json:"full_name"`
	Slot          int                 `json:"slot"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	OccurredAt    string              `json:"occurred_at"` // RFC 3339, UTC
}

// NewReservationEvent stamps r with a fresh event id and the current UTC
// time.
func NewReservationEvent(t EventType, restaurant string, r model.Reservation) ReservationEvent {
	return ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          t,
		Restaurant:    restaurant,
		ReservationID: r.ID,
		FullName:      r.FullName,
		Slot:          r.Slot,
		PaymentMethod: r.PaymentMethod,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
