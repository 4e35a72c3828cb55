// Package service sits between the front end and the allocator.  It logs
// every outcome and publishes a reservation event after each successful
// mutation.  Publishing is best effort: failures are logged and never
// change the result returned to the caller.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservations/internal/model"
	"github.com/iliyamo/restaurant-reservations/internal/queue"
	"github.com/iliyamo/restaurant-reservations/internal/reservation"
)

// ReservationService wraps one Allocator.  Like the allocator it is meant
// for a single caller at a time.
type ReservationService struct {
	alloc          *reservation.Allocator
	pub            queue.Publisher
	log            *zap.Logger
	publishTimeout time.Duration
}

// NewReservationService constructs a service.  The allocator is required;
// a nil publisher disables events and a nil logger disables logging.  A
// non-positive timeout means two seconds.
func NewReservationService(alloc *reservation.Allocator, pub queue.Publisher, logger *zap.Logger, publishTimeout time.Duration) *ReservationService {
	if alloc == nil {
		panic("nil allocator passed to NewReservationService")
	}
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if publishTimeout <= 0 {
		publishTimeout = 2 * time.Second
	}
	return &ReservationService{alloc: alloc, pub: pub, log: logger, publishTimeout: publishTimeout}
}

// Policy returns the slot policy of the underlying allocator.
func (s *ReservationService) Policy() reservation.Policy { return s.alloc.Policy() }

// Len returns the number of current reservations.
func (s *ReservationService) Len() int { return s.alloc.Len() }

// List returns all reservations in creation order.
func (s *ReservationService) List() []model.Reservation { return s.alloc.List() }

// Slots returns the valid slots in ascending order.
func (s *ReservationService) Slots() []int { return s.alloc.Slots() }

// Availability reports occupancy per slot.
func (s *ReservationService) Availability() []model.SlotAvailability { return s.alloc.Availability() }

// PaymentStats groups reservations by payment method.
func (s *ReservationService) PaymentStats() []model.PaymentCount { return s.alloc.PaymentStats() }

// Get looks a reservation up by id.
func (s *ReservationService) Get(id int) (model.Reservation, error) { return s.alloc.Get(id) }

// GetAt looks a reservation up by zero-based position.
func (s *ReservationService) GetAt(pos int) (model.Reservation, error) { return s.alloc.GetAt(pos) }

// Create books a new reservation.
func (s *ReservationService) Create(ctx context.Context, fullName string, slot int, method model.PaymentMethod) (model.Reservation, error) {
	r, err := s.alloc.Create(fullName, slot, method)
	if err != nil {
		s.rejected("create", err, zap.Int("slot", slot), zap.String("payment_method", string(method)))
		return r, err
	}
	s.log.Info("reservation created", reservationFields(r)...)
	s.emit(ctx, queue.EventCreated, r)
	return r, nil
}

// Update changes the reservation with the given id.  An empty change set
// succeeds without emitting an event.
func (s *ReservationService) Update(ctx context.Context, id int, c reservation.Changes) (model.Reservation, error) {
	r, err := s.alloc.Update(id, c)
	if err == nil && c.Empty() {
		return r, nil
	}
	return s.updated(ctx, r, err, zap.Int("id", id))
}

// UpdateAt changes the reservation at a zero-based position.
func (s *ReservationService) UpdateAt(ctx context.Context, pos int, c reservation.Changes) (model.Reservation, error) {
	r, err := s.alloc.UpdateAt(pos, c)
	if err == nil && c.Empty() {
		return r, nil
	}
	return s.updated(ctx, r, err, zap.Int("position", pos))
}

// Remove cancels the reservation with the given id.
func (s *ReservationService) Remove(ctx context.Context, id int) (model.Reservation, error) {
	r, err := s.alloc.Remove(id)
	return s.removed(ctx, r, err, zap.Int("id", id))
}

// RemoveAt cancels the reservation at a zero-based position.
func (s *ReservationService) RemoveAt(ctx context.Context, pos int) (model.Reservation, error) {
	r, err := s.alloc.RemoveAt(pos)
	return s.removed(ctx, r, err, zap.Int("position", pos))
}

func (s *ReservationService) updated(ctx context.Context, r model.Reservation, err error, key zap.Field) (model.Reservation, error) {
	if err != nil {
		s.rejected("update", err, key)
		return r, err
	}
	s.log.Info("reservation updated", reservationFields(r)...)
	s.emit(ctx, queue.EventUpdated, r)
	return r, nil
}

func (s *ReservationService) removed(ctx context.Context, r model.Reservation, err error, key zap.Field) (model.Reservation, error) {
	if err != nil {
		s.rejected("remove", err, key)
		return r, err
	}
	s.log.Info("reservation cancelled", reservationFields(r)...)
	s.emit(ctx, queue.EventCancelled, r)
	return r, nil
}

func (s *ReservationService) rejected(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.String("kind", Kind(err)), zap.Error(err))
	s.log.Info("reservation request rejected", fields...)
}

func (s *ReservationService) emit(ctx context.Context, t queue.EventType, r model.Reservation) {
	ev := queue.NewReservationEvent(t, s.alloc.Policy().Name, r)
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warn("publish reservation event failed",
			zap.Error(err), zap.String("event_id", ev.EventID), zap.String("type", string(t)))
	}
}

// Kind names the error class of err: invalid_input, slot_full, not_found
// or internal.
func Kind(err error) string {
	switch {
	case errors.Is(err, reservation.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, reservation.ErrSlotFull):
		return "slot_full"
	case errors.Is(err, reservation.ErrNotFound):
		return "not_found"
	}
	return "internal"
}

func reservationFields(r model.Reservation) []zap.Field {
	return []zap.Field{
		zap.Int("id", r.ID),
		zap.Int("slot", r.Slot),
		zap.String("payment_method", string(r.PaymentMethod)),
	}
}
