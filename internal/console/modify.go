package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iliyamo/restaurant-reservations/internal/model"
	"github.com/iliyamo/restaurant-reservations/internal/reservation"
)

// modify asks for a reservation (by id or by position) and then for each
// field, where an empty answer keeps the current value.  Every answer is
// collected before the update is sent, so a rejected update changes
// nothing.
func (c *Console) modify(ctx context.Context, byPosition bool) {
	c.println("\n--- MODIFICAR RESERVA ---")
	if !c.printReservations() {
		return
	}

	var (
		key     int
		current model.Reservation
		err     error
		ok      bool
	)
	if byPosition {
		key, ok = c.askInt("\nIngrese la posición de la reserva a modificar: ", "la posición")
		if !ok {
			return
		}
		current, err = c.svc.GetAt(key)
	} else {
		key, ok = c.askInt("\nIngrese el ID de la reserva a modificar: ", "el ID")
		if !ok {
			return
		}
		current, err = c.svc.Get(key)
	}
	if err != nil {
		c.println(c.red(c.describe(err, "No se pudo modificar la reserva")))
		return
	}
	c.println("\nModificando reserva: " + Format(current))

	changes, ok := c.askChanges()
	if !ok {
		return
	}
	if changes.Empty() {
		c.println("No se realizaron cambios.")
		return
	}

	var updated model.Reservation
	if byPosition {
		updated, err = c.svc.UpdateAt(ctx, key, changes)
	} else {
		updated, err = c.svc.Update(ctx, key, changes)
	}
	if err != nil {
		c.println(c.red(c.describe(err, "No se pudo modificar la reserva")))
		return
	}
	c.println(c.green("Reserva modificada exitosamente."))
	c.println(Format(updated))
}

func (c *Console) askChanges() (reservation.Changes, bool) {
	var changes reservation.Changes

	name, ok := c.ask("Nuevo nombre completo (Enter para mantener el actual): ")
	if !ok {
		return changes, false
	}
	if name != "" {
		changes.FullName = &name
	}

	p := c.svc.Policy()
	raw, ok := c.ask(fmt.Sprintf("Nueva hora (%d-%d, Enter para mantener la actual): ", p.FirstSlot, p.LastSlot))
	if !ok {
		return changes, false
	}
	if raw != "" {
		slot, err := strconv.Atoi(raw)
		if err != nil {
			c.println("Por favor ingrese un número válido para la hora.")
			return changes, false
		}
		changes.Slot = &slot
	}

	method, ok := c.askPaymentMethod(true)
	if !ok {
		return changes, false
	}
	if method != "" {
		changes.PaymentMethod = &method
	}
	return changes, true
}

// describe turns an allocator error into the message shown to the user.
func (c *Console) describe(err error, prefix string) string {
	p := c.svc.Policy()
	switch {
	case errors.Is(err, reservation.ErrEmptyName):
		return "El nombre no puede estar vacío."
	case errors.Is(err, reservation.ErrSlotOutOfRange):
		return fmt.Sprintf("La hora debe estar entre %d y %d.", p.FirstSlot, p.LastSlot)
	case errors.Is(err, reservation.ErrUnknownPaymentMethod):
		return "Método de pago no válido."
	case errors.Is(err, reservation.ErrSlotFull):
		return prefix + " por falta de espacio en el horario seleccionado."
	case errors.Is(err, reservation.ErrInvalidPosition):
		return "Posición inválida."
	case errors.Is(err, reservation.ErrNotFound):
		return "No se encontró la reserva."
	}
	return prefix + ": " + err.Error()
}
