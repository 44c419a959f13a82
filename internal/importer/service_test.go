package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dromeroc/beneficios/internal/catalog"
	"github.com/dromeroc/beneficios/internal/importer"
	"github.com/dromeroc/beneficios/internal/treatment"
)

func TestService_Import_MatchedAgainstCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Limpieza facial;1;80,00;Efectivo
`

	entry := &catalog.Entry{
		ID:        uuid.New(),
		Name:      "Limpieza facial",
		SalePrice: 8_000,
		CostPrice: 1_500,
		Active:    true,
	}

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().
		FindEntryByName(gomock.Any(), "Limpieza facial").
		Return(entry, nil)

	svc := importer.NewService(catalog.NewService(repo))

	result, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)
	assert.Empty(t, result.Unmatched)

	p := result.Params[0]
	assert.Equal(t, entry.ID, *p.CatalogID)
	assert.Equal(t, "Limpieza facial", p.CatalogName)
	assert.Equal(t, int64(8_000), p.SalePrice)
	// The catalog supplies the cost when the file carries none.
	assert.Equal(t, int64(1_500), p.CostPrice)
	assert.Equal(t, treatment.PaymentCash, p.PaymentMethod)
}

func TestService_Import_FileCostWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `Fecha;Concepto;Unidades;Precio;Coste;Forma de pago
10/03/2025;Limpieza facial;1;80,00;20,00;Tarjeta
`

	entry := &catalog.Entry{
		ID:        uuid.New(),
		Name:      "Limpieza facial",
		SalePrice: 8_000,
		CostPrice: 1_500,
		Active:    true,
	}

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().
		FindEntryByName(gomock.Any(), "Limpieza facial").
		Return(entry, nil)

	svc := importer.NewService(catalog.NewService(repo))

	result, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)

	assert.Equal(t, int64(2_000), result.Params[0].CostPrice)
}

func TestService_Import_UnknownWithCostStandsAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `Fecha;Concepto;Unidades;Precio;Coste;Forma de pago
10/03/2025;Tratamiento nuevo;1;80,00;20,00;Efectivo
`

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().
		FindEntryByName(gomock.Any(), "Tratamiento nuevo").
		Return(nil, catalog.ErrNotFound)

	svc := importer.NewService(catalog.NewService(repo))

	result, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)
	assert.Empty(t, result.Unmatched)

	p := result.Params[0]
	assert.Nil(t, p.CatalogID)
	assert.Equal(t, "Tratamiento nuevo", p.CatalogName)
	assert.Equal(t, int64(2_000), p.CostPrice)
}

func TestService_Import_UnknownWithoutCostIsUnmatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `Fecha;Tratamiento;Cantidad;Importe;Pago
10/03/2025;Tratamiento nuevo;1;80,00;Efectivo
`

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().
		FindEntryByName(gomock.Any(), "Tratamiento nuevo").
		Return(nil, catalog.ErrNotFound)

	svc := importer.NewService(catalog.NewService(repo))

	result, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	// A line without a known cost is never coerced into a zero-cost
	// record.
	assert.Empty(t, result.Params)
	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "Tratamiento nuevo", result.Unmatched[0].Treatment)
}

func TestService_Import_BadFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	svc := importer.NewService(catalog.NewService(repo))

	_, err := svc.Import(context.Background(), strings.NewReader("not a till export"))
	assert.Error(t, err)
}
