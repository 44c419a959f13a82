package treatment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dromeroc/beneficios/internal/treatment"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params treatment.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *treatment.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: treatment.CreateParams{
					Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
					CatalogName:   "Limpieza facial",
					Quantity:      1,
					SalePrice:     8_000,
					CostPrice:     1_500,
					PaymentMethod: treatment.PaymentCash,
				},
			},
			setupMock: func(m *treatment.MockRepository) {
				m.EXPECT().
					CreateRecord(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *treatment.Record) error {
						rec.ID = uuid.New()
						rec.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "ZeroQuantity",
			args: args{
				params: treatment.CreateParams{
					CatalogName:   "Limpieza facial",
					Quantity:      0,
					SalePrice:     8_000,
					PaymentMethod: treatment.PaymentCash,
				},
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{
				params: treatment.CreateParams{
					CatalogName:   "Limpieza facial",
					Quantity:      1,
					SalePrice:     8_000,
					PaymentMethod: treatment.PaymentCard,
				},
			},
			setupMock: func(m *treatment.MockRepository) {
				m.EXPECT().
					CreateRecord(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := treatment.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := treatment.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	type args struct {
		filter treatment.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *treatment.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: treatment.ListFilter{}},
			setupMock: func(m *treatment.MockRepository) {
				m.EXPECT().
					ListRecords(gomock.Any(), treatment.ListFilter{}).
					Return([]*treatment.Record{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name: "Error",
			args: args{filter: treatment.ListFilter{}},
			setupMock: func(m *treatment.MockRepository) {
				m.EXPECT().
					ListRecords(gomock.Any(), treatment.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantLen: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := treatment.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := treatment.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := treatment.NewMockRepository(ctrl)
	itx := treatment.NewMockImportTx(ctrl)
	svc := treatment.NewService(repo)

	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	params := []treatment.CreateParams{
		{
			Date:          date,
			CatalogName:   "Depilación láser",
			Quantity:      1,
			SalePrice:     12_000,
			CostPrice:     2_500,
			PaymentMethod: treatment.PaymentCard,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateRecords(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := treatment.NewMockRepository(ctrl)
	itx := treatment.NewMockImportTx(ctrl)
	svc := treatment.NewService(repo)

	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	params := []treatment.CreateParams{
		{
			Date:          date,
			CatalogName:   "Depilación láser",
			Quantity:      1,
			SalePrice:     12_000,
			CostPrice:     2_500,
			PaymentMethod: treatment.PaymentCard,
		},
		{
			Date:          date,
			CatalogName:   "Limpieza facial",
			Quantity:      1,
			SalePrice:     8_000,
			CostPrice:     1_500,
			PaymentMethod: treatment.PaymentCash,
		},
	}

	existing := &treatment.Record{
		ID:            uuid.New(),
		Date:          date,
		CatalogName:   "Depilación láser",
		Quantity:      1,
		SalePrice:     12_000,
		CostPrice:     2_500,
		PaymentMethod: treatment.PaymentCard,
	}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*treatment.Record{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := treatment.NewMockRepository(ctrl)
	svc := treatment.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), []treatment.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := treatment.NewMockRepository(ctrl)
	itx := treatment.NewMockImportTx(ctrl)
	svc := treatment.NewService(repo)

	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	params := []treatment.CreateParams{
		{
			Date:          date,
			CatalogName:   "Limpieza facial",
			Quantity:      2,
			SalePrice:     8_000,
			CostPrice:     1_500,
			PaymentMethod: treatment.PaymentTransfer,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().CreateRecords(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	recs, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(16_000), recs[0].TotalRevenue())
	assert.Equal(t, treatment.PaymentTransfer, recs[0].PaymentMethod)
}
