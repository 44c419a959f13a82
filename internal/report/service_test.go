package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
)

func TestService_Daily_MissingConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(nil, company.ErrConfigMissing)

	svc := report.NewService(repo, report.DefaultSettings())

	_, err := svc.Daily(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, company.ErrConfigMissing)
}

func TestService_Daily_NoActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := report.NewService(repo, report.DefaultSettings())

	s, err := svc.Daily(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestService_Daily_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := date.AddDate(0, 0, 1).Add(-time.Nanosecond)

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), date, dayEnd).
		Return([]*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentCash),
		}, nil)
	repo.EXPECT().ActiveFixedExpenses(gomock.Any()).Return(nil, nil)

	svc := report.NewService(repo, report.DefaultSettings())

	s, err := svc.Daily(context.Background(), date)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(10_000), s.GrossRevenue)
	assert.Equal(t, int64(8_000), s.DailyNetProfit)
}

func TestService_Monthly_UsesActiveTaxRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), start, end).
		Return([]*treatment.Record{
			record(start, 121_000, 0, 1, treatment.PaymentCard),
		}, nil)
	repo.EXPECT().ProductCostsInRange(gomock.Any(), start, end).Return(nil, nil)
	repo.EXPECT().VariableExpensesInRange(gomock.Any(), start, end).Return(nil, nil)
	repo.EXPECT().ActiveFixedExpenses(gomock.Any()).Return(nil, nil)
	repo.EXPECT().
		ActiveTaxRate(gomock.Any(), company.TaxTypeCorporate).
		Return(&company.TaxRate{TaxType: company.TaxTypeCorporate, RatePct: 23}, nil)

	svc := report.NewService(repo, report.DefaultSettings())

	s, err := svc.Monthly(context.Background(), 2025, time.March)
	require.NoError(t, err)

	// 1210.00 gross nets to 1000.00 ex VAT, taxed at the active 23%.
	assert.Equal(t, int64(100_000), s.GrossProfit)
	assert.Equal(t, int64(23_000), s.CorporateTax)
}

func TestService_Monthly_TaxRateFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), start, end).
		Return([]*treatment.Record{
			record(start, 121_000, 0, 1, treatment.PaymentCard),
		}, nil)
	repo.EXPECT().ProductCostsInRange(gomock.Any(), start, end).Return(nil, nil)
	repo.EXPECT().VariableExpensesInRange(gomock.Any(), start, end).Return(nil, nil)
	repo.EXPECT().ActiveFixedExpenses(gomock.Any()).Return(nil, nil)
	repo.EXPECT().
		ActiveTaxRate(gomock.Any(), company.TaxTypeCorporate).
		Return(nil, company.ErrNotFound)

	svc := report.NewService(repo, report.DefaultSettings())

	s, err := svcMonthly(svc)
	require.NoError(t, err)

	assert.Equal(t, int64(25_000), s.CorporateTax) // default 25%
}

func svcMonthly(svc *report.Service) (*report.MonthlySummary, error) {
	return svc.Monthly(context.Background(), 2025, time.March)
}

func TestService_Trend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)

	// Three independent month windows, each computed from scratch.
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil).Times(3)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).Times(3)
	repo.EXPECT().ProductCostsInRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	repo.EXPECT().VariableExpensesInRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	repo.EXPECT().ActiveFixedExpenses(gomock.Any()).Return(nil, nil).Times(3)
	repo.EXPECT().
		ActiveTaxRate(gomock.Any(), company.TaxTypeCorporate).
		Return(nil, company.ErrNotFound).Times(3)

	svc := report.NewService(repo, report.DefaultSettings())

	summaries, err := svc.Trend(context.Background(), 2025, time.March, 3)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Oldest first.
	assert.Equal(t, "2025-01", summaries[0].YearMonth())
	assert.Equal(t, "2025-02", summaries[1].YearMonth())
	assert.Equal(t, "2025-03", summaries[2].YearMonth())
}

func TestService_Trend_InvalidLength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	svc := report.NewService(repo, report.DefaultSettings())

	_, err := svc.Trend(context.Background(), 2025, time.March, 0)
	assert.Error(t, err)
}

func TestService_Monthly_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().CompanyConfig(gomock.Any()).Return(soloConfig(), nil)
	repo.EXPECT().
		TreatmentsInRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db error"))

	svc := report.NewService(repo, report.DefaultSettings())

	_, err := svc.Monthly(context.Background(), 2025, time.March)
	assert.Error(t, err)
}
