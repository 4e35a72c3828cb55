package reservation

import (
	"strings"

	"github.com/iliyamo/restaurant-reservations/internal/model"
)

// Default slot policy: hourly slots from 12:00 to 22:00, five reservations
// per slot.
const (
	DefaultFirstSlot = 12
	DefaultLastSlot  = 22
	DefaultCapacity  = 5
)

// Policy is the fixed admission policy of an Allocator.  Valid slots are
// the inclusive range [FirstSlot, LastSlot] and every slot shares the same
// Capacity.
type Policy struct {
	Name      string // restaurant name, display only
	FirstSlot int
	LastSlot  int
	Capacity  int
}

// DefaultPolicy returns the 12–22 / 5 policy under the given name.
func DefaultPolicy(name string) Policy {
	return Policy{Name: name, FirstSlot: DefaultFirstSlot, LastSlot: DefaultLastSlot, Capacity: DefaultCapacity}
}

// Changes carries the optional fields of an update.  A nil field keeps the
// current value.
type Changes struct {
	FullName      *string
	Slot          *int
	PaymentMethod *model.PaymentMethod
}

// Empty reports whether no field is set.
func (c Changes) Empty() bool {
	return c.FullName == nil && c.Slot == nil && c.PaymentMethod == nil
}

// Allocator owns the reservation registry of one restaurant.  It admits a
// reservation only while its slot is below the capacity ceiling and hands out
// ids from a counter that is never rewound, so ids of removed reservations
// are retired for good.
//
// An Allocator is not safe for concurrent use; callers that share one must
// serialise access themselves.
type Allocator struct {
	policy       Policy
	reservations []model.Reservation // creation order
	nextID       int
}

// New returns an empty Allocator for p.  It fails with ErrInvalidPolicy when
// the slot range is inverted or the capacity is below one.
func New(p Policy) (*Allocator, error) {
	if p.FirstSlot > p.LastSlot || p.Capacity < 1 {
		return nil, ErrInvalidPolicy
	}
	return &Allocator{policy: p, nextID: 1}, nil
}

// Policy returns the policy the allocator was built with.
func (a *Allocator) Policy() Policy { return a.policy }

// Len returns the number of current reservations.
func (a *Allocator) Len() int { return len(a.reservations) }

// NextID returns the id the next successful Create will assign.
func (a *Allocator) NextID() int { return a.nextID }

// ValidSlot reports whether slot lies inside the policy range.
func (a *Allocator) ValidSlot(slot int) bool {
	return slot >= a.policy.FirstSlot && slot <= a.policy.LastSlot
}

// Create validates the input, checks capacity and appends a new reservation.
// Validation runs in order name, slot, payment method.  A rejected call
// leaves the registry and the id counter untouched.
func (a *Allocator) Create(fullName string, slot int, method model.PaymentMethod) (model.Reservation, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return model.Reservation{}, ErrEmptyName
	}
	if !a.ValidSlot(slot) {
		return model.Reservation{}, ErrSlotOutOfRange
	}
	if !method.Valid() {
		return model.Reservation{}, ErrUnknownPaymentMethod
	}
	if a.Occupancy(slot) >= a.policy.Capacity {
		return model.Reservation{}, ErrSlotFull
	}
	r := model.Reservation{ID: a.nextID, FullName: name, Slot: slot, PaymentMethod: method}
	a.reservations = append(a.reservations, r)
	a.nextID++
	return r, nil
}

// List returns a copy of all reservations in creation order.  The result is
// empty, not nil, when there are none.
func (a *Allocator) List() []model.Reservation {
	out := make([]model.Reservation, len(a.reservations))
	copy(out, a.reservations)
	return out
}

// Get returns the reservation with the given id.
func (a *Allocator) Get(id int) (model.Reservation, error) {
	i := a.indexOf(id)
	if i < 0 {
		return model.Reservation{}, ErrNotFound
	}
	return a.reservations[i], nil
}

// GetAt returns the reservation at a zero-based position.
func (a *Allocator) GetAt(pos int) (model.Reservation, error) {
	if !a.validPosition(pos) {
		return model.Reservation{}, ErrInvalidPosition
	}
	return a.reservations[pos], nil
}

// Remove deletes the reservation with the given id and returns it.  The
// freed place becomes available to later creations; the id stays retired.
func (a *Allocator) Remove(id int) (model.Reservation, error) {
	i := a.indexOf(id)
	if i < 0 {
		return model.Reservation{}, ErrNotFound
	}
	return a.removeAt(i), nil
}

// RemoveAt deletes the reservation at a zero-based position.  Later
// reservations shift down by one position; their ids do not change.
func (a *Allocator) RemoveAt(pos int) (model.Reservation, error) {
	if !a.validPosition(pos) {
		return model.Reservation{}, ErrInvalidPosition
	}
	return a.removeAt(pos), nil
}

// Update applies c to the reservation with the given id.  Every supplied
// field is validated before any is applied, so a rejected update leaves the
// reservation exactly as it was.
func (a *Allocator) Update(id int, c Changes) (model.Reservation, error) {
	i := a.indexOf(id)
	if i < 0 {
		return model.Reservation{}, ErrNotFound
	}
	return a.updateAt(i, c)
}

// UpdateAt is Update addressed by zero-based position.
func (a *Allocator) UpdateAt(pos int, c Changes) (model.Reservation, error) {
	if !a.validPosition(pos) {
		return model.Reservation{}, ErrInvalidPosition
	}
	return a.updateAt(pos, c)
}

// Occupancy counts the reservations currently booked at slot.
func (a *Allocator) Occupancy(slot int) int {
	n := 0
	for _, r := range a.reservations {
		if r.Slot == slot {
			n++
		}
	}
	return n
}

func (a *Allocator) updateAt(i int, c Changes) (model.Reservation, error) {
	next := a.reservations[i]
	if c.FullName != nil {
		name := strings.TrimSpace(*c.FullName)
		if name == "" {
			return model.Reservation{}, ErrEmptyName
		}
		next.FullName = name
	}
	if c.Slot != nil {
		if !a.ValidSlot(*c.Slot) {
			return model.Reservation{}, ErrSlotOutOfRange
		}
	}
	if c.PaymentMethod != nil {
		if !c.PaymentMethod.Valid() {
			return model.Reservation{}, ErrUnknownPaymentMethod
		}
		next.PaymentMethod = *c.PaymentMethod
	}
	if c.Slot != nil && *c.Slot != next.Slot {
		// the reservation's own place is freed before counting the target
		if a.Occupancy(*c.Slot) >= a.policy.Capacity {
			return model.Reservation{}, ErrSlotFull
		}
		next.Slot = *c.Slot
	}
	a.reservations[i] = next
	return next, nil
}

func (a *Allocator) removeAt(i int) model.Reservation {
	r := a.reservations[i]
	a.reservations = append(a.reservations[:i], a.reservations[i+1:]...)
	return r
}

func (a *Allocator) indexOf(id int) int {
	for i, r := range a.reservations {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (a *Allocator) validPosition(pos int) bool {
	return pos >= 0 && pos < len(a.reservations)
}
