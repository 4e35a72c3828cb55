package model

// PaymentMethod is how a guest settles a reservation.  Values are matched
// exactly (case-sensitive); anything outside PaymentMethods is rejected.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "efectivo"
	PaymentTransfer   PaymentMethod = "transferencia"
	PaymentCreditCard PaymentMethod = "tarjeta credito"
)

// PaymentMethods lists the accepted methods in menu order (1, 2, 3).
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentTransfer, PaymentCreditCard}

// Valid reports whether m is one of PaymentMethods.
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Reservation records a guest's booking for one hourly slot.
//
// Fields:
//
//	ID            – identifier assigned by the allocator, never reused.
//	FullName      – guest name, stored trimmed.
//	Slot          – hour of the booking (e.g. 18 for 18:00).
//	PaymentMethod – how the guest will pay.
type Reservation struct {
	ID            int           `json:"id"`
	FullName      string        `json:"full_name"`
	Slot          int           `json:"slot"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// SlotAvailability summarises one slot: how many reservations it holds and
// how many more it can take before it is full.
type SlotAvailability struct {
	Slot      int  `json:"slot"`
	Occupancy int  `json:"occupancy"`
	Remaining int  `json:"remaining"`
	Full      bool `json:"full"`
}

// PaymentCount is the number of current reservations using Method.
type PaymentCount struct {
	Method PaymentMethod `json:"method"`
	Count  int           `json:"count"`
}
