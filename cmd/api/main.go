package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dromeroc/beneficios/internal/catalog"
	catalogStore "github.com/dromeroc/beneficios/internal/catalog/store"
	"github.com/dromeroc/beneficios/internal/company"
	companyStore "github.com/dromeroc/beneficios/internal/company/store"
	"github.com/dromeroc/beneficios/internal/config"
	"github.com/dromeroc/beneficios/internal/database"
	"github.com/dromeroc/beneficios/internal/expense"
	expenseStore "github.com/dromeroc/beneficios/internal/expense/store"
	"github.com/dromeroc/beneficios/internal/export"
	appHttp "github.com/dromeroc/beneficios/internal/http"
	catalogHandler "github.com/dromeroc/beneficios/internal/http/catalog"
	companyHandler "github.com/dromeroc/beneficios/internal/http/company"
	expenseHandler "github.com/dromeroc/beneficios/internal/http/expense"
	exportHandler "github.com/dromeroc/beneficios/internal/http/export"
	importHandler "github.com/dromeroc/beneficios/internal/http/importcsv"
	reportHandler "github.com/dromeroc/beneficios/internal/http/report"
	treatmentHandler "github.com/dromeroc/beneficios/internal/http/treatment"
	"github.com/dromeroc/beneficios/internal/importer"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
	treatmentStore "github.com/dromeroc/beneficios/internal/treatment/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		companyService   = company.NewService(companyStore.New(db))
		catalogService   = catalog.NewService(catalogStore.New(db))
		treatmentService = treatment.NewService(treatmentStore.New(db))
		expenseService   = expense.NewService(expenseStore.New(db))
		importService    = importer.NewService(catalogService)
		reportService    = report.NewService(
			report.NewGateway(treatmentService, expenseService, companyService),
			report.Settings{
				WorkingDaysPerMonth: cfg.Report.WorkingDaysPerMonth,
				DaysPerMonth:        cfg.Report.DaysPerMonth,
				EmployerOverheadPct: cfg.Report.EmployerOverheadPct,
				CorporateTaxPct:     cfg.Report.CorporateTaxPct,
			},
		)
		exportService = export.NewService(treatmentService, reportService)
	)

	var (
		companyH   = companyHandler.NewHandler(companyService)
		catalogH   = catalogHandler.NewHandler(catalogService)
		treatmentH = treatmentHandler.NewHandler(treatmentService)
		expenseH   = expenseHandler.NewHandler(expenseService)
		reportH    = reportHandler.NewHandler(reportService)
		importH    = importHandler.NewHandler(importService, treatmentService)
		exportH    = exportHandler.NewHandler(exportService, cfg.Export.Dir)
	)

	router := appHttp.New(companyH, catalogH, treatmentH, expenseH, reportH, importH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
