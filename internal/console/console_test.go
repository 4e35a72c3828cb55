package console

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservations/internal/model"
	"github.com/iliyamo/restaurant-reservations/internal/queue"
	"github.com/iliyamo/restaurant-reservations/internal/reservation"
	"github.com/iliyamo/restaurant-reservations/internal/service"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, policy reservation.Policy, lines ...string) (string, *service.ReservationService) {
	t.Helper()
	alloc, err := reservation.New(policy)
	require.NoError(t, err)
	svc := service.NewReservationService(alloc, nil, nil, 0)
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(svc, in, &out).Run(context.Background()))
	return out.String(), svc
}

func defaultPolicy() reservation.Policy { return reservation.DefaultPolicy("Mi Restaurante") }

func TestConsole_CreateListAndStats(t *testing.T) {
	out, svc := run(t, defaultPolicy(),
		"1", "Ana", "18", "1",
		"1", "  Luis  ", "18", "2",
		"2",
		"9",
		"0",
	)
	assert.Contains(t, out, "SISTEMA DE RESERVAS - MI RESTAURANTE")
	assert.Contains(t, out, "ID de reserva: 1")
	assert.Contains(t, out, "ID de reserva: 2")
	assert.Contains(t, out, "=== RESERVAS EXISTENTES EN MI RESTAURANTE ===")
	assert.Contains(t, out, "Posición 0: ID: 1 | Nombre: Ana | Hora: 18 | Método de pago: efectivo")
	assert.Contains(t, out, "Posición 1: ID: 2 | Nombre: Luis | Hora: 18 | Método de pago: transferencia")
	assert.Contains(t, out, "  efectivo: 1 reservas")
	assert.Contains(t, out, "  transferencia: 1 reservas")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "¡Gracias por usar el Sistema de Reservas!"))
	assert.Equal(t, 2, svc.Len())
}

func TestConsole_CreateRejections(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "empty name", lines: []string{"1", "   ", "18", "1"}, want: "El nombre no puede estar vacío."},
		{name: "hour not a number", lines: []string{"1", "Ana", "tarde"}, want: "Por favor ingrese un número válido para la hora."},
		{name: "hour out of range", lines: []string{"1", "Ana", "23", "1"}, want: "La hora debe estar entre 12 y 22."},
		{name: "bad payment choice", lines: []string{"1", "Ana", "18", "4"}, want: "Número de método de pago no válido. Debe ser 1, 2 o 3."},
		{name: "unknown option", lines: []string{"x"}, want: "Opción no válida. Por favor seleccione una opción del menú."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, svc := run(t, defaultPolicy(), append(tt.lines, "0")...)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, 0, svc.Len())
		})
	}
}

func TestConsole_SlotFull(t *testing.T) {
	policy := reservation.Policy{Name: "Chico", FirstSlot: 12, LastSlot: 13, Capacity: 1}
	out, svc := run(t, policy,
		"1", "Ana", "12", "1",
		"1", "Luis", "12", "1",
		"8",
		"0",
	)
	assert.Contains(t, out, "No se pudo crear la reserva por falta de espacio en el horario seleccionado.")
	assert.Contains(t, out, "Hora 12:00 - COMPLETO")
	assert.Contains(t, out, "Hora 13:00 - 1 espacios")
	assert.Equal(t, 1, svc.Len())
}

func TestConsole_Remove(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		out, svc := run(t, defaultPolicy(),
			"1", "Ana", "18", "1",
			"1", "Luis", "19", "2",
			"3", "9",
			"3", "1",
			"3", "abc",
			"0",
		)
		assert.Contains(t, out, "No se encontró una reserva con ID 9.")
		assert.Contains(t, out, "Reserva eliminada: ID: 1 | Nombre: Ana | Hora: 18 | Método de pago: efectivo")
		assert.Contains(t, out, "Por favor ingrese un número válido para el ID.")
		require.Equal(t, 1, svc.Len())
		assert.Equal(t, "Luis", svc.List()[0].FullName)
	})

	t.Run("by position", func(t *testing.T) {
		out, svc := run(t, defaultPolicy(),
			"1", "Ana", "18", "1",
			"1", "Luis", "19", "2",
			"4", "5",
			"4", "0",
			"0",
		)
		assert.Contains(t, out, "Posición inválida. No se pudo eliminar la reserva.")
		assert.Contains(t, out, "Reserva eliminada: ID: 1")
		got, err := svc.GetAt(0)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("empty registry", func(t *testing.T) {
		out, _ := run(t, defaultPolicy(), "3", "0")
		assert.Contains(t, out, "No hay reservas registradas.")
	})
}

func TestConsole_Modify(t *testing.T) {
	t.Run("by id keeps unanswered fields", func(t *testing.T) {
		out, svc := run(t, defaultPolicy(),
			"1", "Ana", "18", "1",
			"5", "1", "Ana María", "", "3",
			"0",
		)
		assert.Contains(t, out, "Modificando reserva: ID: 1 | Nombre: Ana | Hora: 18 | Método de pago: efectivo")
		assert.Contains(t, out, "Reserva modificada exitosamente.")
		got, err := svc.Get(1)
		require.NoError(t, err)
		assert.Equal(t, model.Reservation{ID: 1, FullName: "Ana María", Slot: 18, PaymentMethod: model.PaymentCreditCard}, got)
	})

	t.Run("no changes", func(t *testing.T) {
		out, _ := run(t, defaultPolicy(),
			"1", "Ana", "18", "1",
			"5", "1", "", "", "",
			"0",
		)
		assert.Contains(t, out, "No se realizaron cambios.")
	})

	t.Run("unknown id", func(t *testing.T) {
		out, _ := run(t, defaultPolicy(),
			"1", "Ana", "18", "1",
			"5", "7",
			"0",
		)
		assert.Contains(t, out, "No se encontró la reserva.")
	})

	t.Run("by position into full slot", func(t *testing.T) {
		policy := reservation.Policy{Name: "Chico", FirstSlot: 12, LastSlot: 13, Capacity: 1}
		out, svc := run(t, policy,
			"1", "Ana", "12", "1",
			"1", "Luis", "13", "1",
			"6", "1", "Luisa", "12", "",
			"0",
		)
		assert.Contains(t, out, "No se pudo modificar la reserva por falta de espacio en el horario seleccionado.")
		got, err := svc.Get(2)
		require.NoError(t, err)
		assert.Equal(t, "Luis", got.FullName, "rejected update must not rename")
		assert.Equal(t, 13, got.Slot)
	})

	t.Run("own slot when full", func(t *testing.T) {
		policy := reservation.Policy{Name: "Chico", FirstSlot: 12, LastSlot: 13, Capacity: 1}
		out, _ := run(t, policy,
			"1", "Ana", "12", "1",
			"6", "0", "", "12", "2",
			"0",
		)
		assert.Contains(t, out, "Reserva modificada exitosamente.")
		assert.Contains(t, out, "ID: 1 | Nombre: Ana | Hora: 12 | Método de pago: transferencia")
	})
}

func TestConsole_SlotsAndEmptyStats(t *testing.T) {
	policy := reservation.Policy{Name: "Chico", FirstSlot: 20, LastSlot: 22, Capacity: 4}
	out, _ := run(t, policy, "7", "9", "0")
	assert.Contains(t, out, "Horarios disponibles: 20:00, 21:00, 22:00")
	assert.Contains(t, out, "Capacidad por hora: 4 reservas")
	assert.Contains(t, out, "No hay reservas para mostrar estadísticas.")
}

func TestConsole_EndOfInput(t *testing.T) {
	out, svc := run(t, defaultPolicy(), "1", "Ana", "18")
	assert.NotContains(t, out, "¡Gracias")
	assert.Equal(t, 0, svc.Len())
}

func TestConsole_CancelledContext(t *testing.T) {
	alloc, err := reservation.New(defaultPolicy())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err = New(service.NewReservationService(alloc, nil, nil, 0), strings.NewReader("1\n"), &out).Run(ctx)
	assert.NoError(t, err)
	assert.NotContains(t, out.String(), "Seleccione una opción")
}

type cancelOnPublish struct{ cancel context.CancelFunc }

func (p cancelOnPublish) Publish(context.Context, queue.ReservationEvent) error {
	p.cancel()
	return nil
}

func TestConsole_CancelTakesEffectAtNextPrompt(t *testing.T) {
	alloc, err := reservation.New(defaultPolicy())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := service.NewReservationService(alloc, cancelOnPublish{cancel: cancel}, nil, 0)

	var out bytes.Buffer
	in := strings.NewReader("1\nAna\n18\n1\n2\n0\n")
	require.NoError(t, New(svc, in, &out).Run(ctx))

	assert.Contains(t, out.String(), "¡Reserva creada exitosamente!")
	assert.NotContains(t, out.String(), "RESERVAS EXISTENTES")
	assert.Equal(t, 1, svc.Len())
}
