package till_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/dromeroc/beneficios/internal/importer/till"
	"github.com/dromeroc/beneficios/internal/treatment"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Agenda(t *testing.T) {
	csv := `Clínica Estética - Exportación agenda
Periodo;01/03/2025 a 31/03/2025

Fecha;Concepto;Unidades;Precio;Coste;Forma de pago
10/03/2025;Limpieza facial;1;80,00;15,00;Efectivo
12/03/2025;Depilación láser;2;120,00;25,00;Tarjeta
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, date(2025, 3, 10), lines[0].Date)
	assert.Equal(t, "Limpieza facial", lines[0].Treatment)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(8000), lines[0].UnitPrice)
	assert.True(t, lines[0].HasCost)
	assert.Equal(t, int64(1500), lines[0].UnitCost)
	assert.Equal(t, treatment.PaymentCash, lines[0].Payment)

	assert.Equal(t, date(2025, 3, 12), lines[1].Date)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, int64(12000), lines[1].UnitPrice)
	assert.Equal(t, int64(2500), lines[1].UnitCost)
	assert.Equal(t, treatment.PaymentCard, lines[1].Payment)
}

func TestParser_TPV(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Mesoterapia;1;150,00;Transferencia
11/03/2025;Peeling químico;;95,50;Bizum
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Mesoterapia", lines[0].Treatment)
	assert.Equal(t, int64(15000), lines[0].UnitPrice)
	assert.False(t, lines[0].HasCost)
	assert.Equal(t, treatment.PaymentTransfer, lines[0].Payment)

	// Empty quantity cell means a single treatment.
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, int64(9550), lines[1].UnitPrice)
	assert.Equal(t, treatment.PaymentTransfer, lines[1].Payment)
}

func TestParser_Windows1252Encoding(t *testing.T) {
	utf8CSV := "Fecha;Tratamiento;Cantidad;Importe;Pago\n10/03/2025;Depilación;1;60,00;Tarjeta\n"

	encoder := charmap.Windows1252.NewEncoder()
	raw, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := till.NewParser()
	lines, err := p.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Depilación", lines[0].Treatment)
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Limpieza facial;1;80,00;Efectivo
Total;;;80,00;
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestParser_SkipsUnknownPayment(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Limpieza facial;1;80,00;Vale regalo
11/03/2025;Limpieza facial;1;80,00;Efectivo
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, date(2025, 3, 11), lines[0].Date)
}

func TestParser_MissingTreatmentName(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;;1;80,00;Efectivo
`

	p := till.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "treatment name")
}

func TestParser_EmptyFile(t *testing.T) {
	p := till.NewParser()
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching till format")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParser_DashSeparatedDates(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10-03-2025;Limpieza facial;1;80,00;Efectivo
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, date(2025, 3, 10), lines[0].Date)
}

func TestParser_LargeAmounts(t *testing.T) {
	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Tratamiento completo;1;1.234,56;Tarjeta
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, int64(123456), lines[0].UnitPrice)
}

func TestParser_EmptyCostCell(t *testing.T) {
	csv := `Fecha;Concepto;Unidades;Precio;Coste;Forma de pago
10/03/2025;Limpieza facial;1;80,00;;Efectivo
`

	p := till.NewParser()
	lines, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.False(t, lines[0].HasCost)
	assert.Equal(t, int64(0), lines[0].UnitCost)
}
