// Package console is the interactive, menu-driven front end of the
// reservation system.  It turns raw text lines into typed calls on the
// reservation service and renders the results; all validation of the
// reservation itself is left to the allocator.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/iliyamo/restaurant-reservations/internal/model"
	"github.com/iliyamo/restaurant-reservations/internal/service"
)

// Console reads one answer per line from in and writes prompts and results
// to out.
type Console struct {
	svc *service.ReservationService
	in  *bufio.Scanner
	out io.Writer

	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New returns a Console bound to svc.
func New(svc *service.ReservationService, in io.Reader, out io.Writer) *Console {
	if svc == nil {
		panic("nil service passed to console.New")
	}
	return &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
	}
}

// Run shows the main menu until the user picks 0 or the input ends.  ctx is
// checked before each menu is shown, so a cancellation takes effect at the
// next prompt; a read already blocked on the input is not interrupted.  It
// returns an error only when reading the input fails.
func (c *Console) Run(ctx context.Context) error {
	c.println("¡Bienvenido al Sistema de Reservas!")
	for ctx.Err() == nil {
		c.menu()
		opt, ok := c.ask("\nSeleccione una opción: ")
		if !ok {
			break
		}
		switch opt {
		case "1":
			c.create(ctx)
		case "2":
			c.list()
		case "3":
			c.removeByID(ctx)
		case "4":
			c.removeByPosition(ctx)
		case "5":
			c.modify(ctx, false)
		case "6":
			c.modify(ctx, true)
		case "7":
			c.slots()
		case "8":
			c.availability()
		case "9":
			c.stats()
		case "0":
			c.println("\n¡Gracias por usar el Sistema de Reservas!")
			return nil
		default:
			c.println("Opción no válida. Por favor seleccione una opción del menú.")
		}
	}
	return c.in.Err()
}

func (c *Console) menu() {
	line := strings.Repeat("=", 50)
	c.println("\n" + line)
	c.println("    SISTEMA DE RESERVAS - " + strings.ToUpper(c.svc.Policy().Name))
	c.println(line)
	c.println("1. Realizar Reserva")
	c.println("2. Ver Reservas")
	c.println("3. Eliminar Reserva por ID")
	c.println("4. Eliminar Reserva por Posición")
	c.println("5. Modificar Reserva por ID")
	c.println("6. Modificar Reserva por Posición")
	c.println("7. Mostrar Horarios Disponibles")
	c.println("8. Ver Disponibilidad por Hora")
	c.println("9. Ver Estadísticas de Reservas")
	c.println("0. Salir")
	c.println(line)
}

func (c *Console) create(ctx context.Context) {
	c.println("\n--- REALIZAR RESERVA ---")
	name, ok := c.ask("Ingrese el nombre completo: ")
	if !ok {
		return
	}
	p := c.svc.Policy()
	raw, ok := c.ask(fmt.Sprintf("Ingrese la hora (%d-%d): ", p.FirstSlot, p.LastSlot))
	if !ok {
		return
	}
	slot, err := strconv.Atoi(raw)
	if err != nil {
		c.println("Por favor ingrese un número válido para la hora.")
		return
	}
	method, ok := c.askPaymentMethod(false)
	if !ok {
		return
	}

	r, err := c.svc.Create(ctx, name, slot, method)
	if err != nil {
		c.println(c.red(c.describe(err, "No se pudo crear la reserva")))
		return
	}
	c.println(c.green("\n¡Reserva creada exitosamente!"))
	c.printf("ID de reserva: %d\n", r.ID)
}

func (c *Console) list() {
	c.println("\n--- RESERVAS ---")
	c.printReservations()
}

// printReservations lists the registry and reports whether it was
// non-empty.
func (c *Console) printReservations() bool {
	all := c.svc.List()
	if len(all) == 0 {
		c.println("No hay reservas registradas.")
		return false
	}
	c.printf("\n=== RESERVAS EXISTENTES EN %s ===\n", strings.ToUpper(c.svc.Policy().Name))
	c.printf("Total de reservas: %d\n", len(all))
	for i, r := range all {
		c.printf("Posición %d: %s\n", i, Format(r))
	}
	return true
}

func (c *Console) removeByID(ctx context.Context) {
	c.println("\n--- ELIMINAR RESERVA ---")
	if !c.printReservations() {
		return
	}
	id, ok := c.askInt("\nIngrese el ID de la reserva a eliminar: ", "el ID")
	if !ok {
		return
	}
	r, err := c.svc.Remove(ctx, id)
	if err != nil {
		c.println(c.red(fmt.Sprintf("No se encontró una reserva con ID %d.", id)))
		return
	}
	c.println("Reserva eliminada: " + Format(r))
}

func (c *Console) removeByPosition(ctx context.Context) {
	c.println("\n--- ELIMINAR RESERVA ---")
	if !c.printReservations() {
		return
	}
	pos, ok := c.askInt("\nIngrese la posición de la reserva a eliminar: ", "la posición")
	if !ok {
		return
	}
	r, err := c.svc.RemoveAt(ctx, pos)
	if err != nil {
		c.println(c.red("Posición inválida. No se pudo eliminar la reserva."))
		return
	}
	c.println("Reserva eliminada: " + Format(r))
}

func (c *Console) slots() {
	parts := make([]string, 0)
	for _, s := range c.svc.Slots() {
		parts = append(parts, fmt.Sprintf("%d:00", s))
	}
	c.printf("Horarios disponibles: %s\n", strings.Join(parts, ", "))
	c.printf("Capacidad por hora: %d reservas\n", c.svc.Policy().Capacity)
}

func (c *Console) availability() {
	c.println("\n=== DISPONIBILIDAD POR HORA ===")
	capacity := c.svc.Policy().Capacity
	for _, a := range c.svc.Availability() {
		var state string
		switch {
		case a.Full:
			state = c.red("COMPLETO")
		case a.Remaining < capacity:
			state = c.yellow(fmt.Sprintf("%d espacios", a.Remaining))
		default:
			state = c.green(fmt.Sprintf("%d espacios", a.Remaining))
		}
		c.printf("Hora %d:00 - %s\n", a.Slot, state)
	}
}

func (c *Console) stats() {
	n := c.svc.Len()
	if n == 0 {
		c.println("No hay reservas para mostrar estadísticas.")
		return
	}
	c.println("\n=== ESTADÍSTICAS DE RESERVAS ===")
	c.printf("Total de reservas: %d\n", n)
	c.println("Métodos de pago utilizados:")
	for _, pc := range c.svc.PaymentStats() {
		c.printf("  %s: %d reservas\n", pc.Method, pc.Count)
	}
}

// Format renders r the way every listing shows a reservation.
func Format(r model.Reservation) string {
	return fmt.Sprintf("ID: %d | Nombre: %s | Hora: %d | Método de pago: %s", r.ID, r.FullName, r.Slot, r.PaymentMethod)
}

// ask prints prompt and returns the next trimmed input line.  It reports
// false when the input is exhausted.
func (c *Console) ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) askInt(prompt, what string) (int, bool) {
	raw, ok := c.ask(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.printf("Por favor ingrese un número válido para %s.\n", what)
		return 0, false
	}
	return n, true
}

// askPaymentMethod maps the numbered choices 1..3 to payment methods.  With
// optional set, an empty answer returns ("", true) meaning "keep".
func (c *Console) askPaymentMethod(optional bool) (model.PaymentMethod, bool) {
	c.println("\nMétodos de pago disponibles:")
	for i, m := range model.PaymentMethods {
		c.printf("%d. %s\n", i+1, m)
	}
	prompt := "Ingrese el número del método de pago (1, 2 o 3): "
	if optional {
		prompt = "Ingrese el número del nuevo método de pago (1, 2 o 3, Enter para mantener el actual): "
	}
	raw, ok := c.ask(prompt)
	if !ok {
		return "", false
	}
	if raw == "" && optional {
		return "", true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(model.PaymentMethods) {
		c.println("Número de método de pago no válido. Debe ser 1, 2 o 3.")
		return "", false
	}
	return model.PaymentMethods[n-1], true
}

func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, a ...interface{}) { fmt.Fprintf(c.out, format, a...) }
