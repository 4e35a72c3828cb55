package reservation

import "github.com/iliyamo/restaurant-reservations/internal/model"

// Slots returns every valid slot in ascending order.
func (a *Allocator) Slots() []int {
	out := make([]int, 0, a.policy.LastSlot-a.policy.FirstSlot+1)
	for s := a.policy.FirstSlot; s <= a.policy.LastSlot; s++ {
		out = append(out, s)
	}
	return out
}

// Remaining returns how many more reservations slot can take.  It returns 0
// for slots outside the policy range.
func (a *Allocator) Remaining(slot int) int {
	if !a.ValidSlot(slot) {
		return 0
	}
	return a.policy.Capacity - a.Occupancy(slot)
}

// Availability reports occupancy and remaining capacity for every valid
// slot, in slot order.
func (a *Allocator) Availability() []model.SlotAvailability {
	counts := make(map[int]int, len(a.reservations))
	for _, r := range a.reservations {
		counts[r.Slot]++
	}
	out := make([]model.SlotAvailability, 0, a.policy.LastSlot-a.policy.FirstSlot+1)
	for _, s := range a.Slots() {
		n := counts[s]
		out = append(out, model.SlotAvailability{
			Slot:      s,
			Occupancy: n,
			Remaining: a.policy.Capacity - n,
			Full:      n >= a.policy.Capacity,
		})
	}
	return out
}

// PaymentStats groups the current reservations by payment method.  Methods
// appear in the order they are first used in the registry; unused methods
// are omitted.
func (a *Allocator) PaymentStats() []model.PaymentCount {
	var out []model.PaymentCount
	index := make(map[model.PaymentMethod]int)
	for _, r := range a.reservations {
		i, ok := index[r.PaymentMethod]
		if !ok {
			i = len(out)
			index[r.PaymentMethod] = i
			out = append(out, model.PaymentCount{Method: r.PaymentMethod})
		}
		out[i].Count++
	}
	return out
}
