package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dromeroc/beneficios/cmd/tui/internal/view"
	"github.com/dromeroc/beneficios/internal/catalog"
	catalogStore "github.com/dromeroc/beneficios/internal/catalog/store"
	"github.com/dromeroc/beneficios/internal/company"
	companyStore "github.com/dromeroc/beneficios/internal/company/store"
	"github.com/dromeroc/beneficios/internal/config"
	"github.com/dromeroc/beneficios/internal/database"
	"github.com/dromeroc/beneficios/internal/expense"
	expenseStore "github.com/dromeroc/beneficios/internal/expense/store"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
	treatmentStore "github.com/dromeroc/beneficios/internal/treatment/store"
)

type model struct {
	treatmentService *treatment.Service
	catalogService   *catalog.Service
	reportService    *report.Service

	currentView View

	recordView    view.RecordModel
	dashboardView view.DashboardModel
	reportView    view.ReportModel
	catalogView   view.CatalogModel
}

type View int

const (
	ViewMenu      View = 0
	ViewRecord    View = 1
	ViewDashboard View = 2
	ViewReport    View = 3
	ViewCatalog   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

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

	companySvc := company.NewService(companyStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db))
	treatmentSvc := treatment.NewService(treatmentStore.New(db))
	expenseSvc := expense.NewService(expenseStore.New(db))
	reportSvc := report.NewService(
		report.NewGateway(treatmentSvc, expenseSvc, companySvc),
		report.Settings{
			WorkingDaysPerMonth: cfg.Report.WorkingDaysPerMonth,
			DaysPerMonth:        cfg.Report.DaysPerMonth,
			EmployerOverheadPct: cfg.Report.EmployerOverheadPct,
			CorporateTaxPct:     cfg.Report.CorporateTaxPct,
		},
	)

	return model{
		treatmentService: treatmentSvc,
		catalogService:   catalogSvc,
		reportService:    reportSvc,
		currentView:      ViewMenu,
		recordView:       view.NewRecordModel(treatmentSvc, catalogSvc),
		dashboardView:    view.NewDashboardModel(treatmentSvc, reportSvc),
		reportView:       view.NewReportModel(reportSvc),
		catalogView:      view.NewCatalogModel(catalogSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRecord
				m.recordView = view.NewRecordModel(m.treatmentService, m.catalogService)

				return m, m.recordView.Init()
			case "2":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.treatmentService, m.reportService)

				return m, m.dashboardView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reportService)

				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewCatalog
				m.catalogView = view.NewCatalogModel(m.catalogService)

				return m, m.catalogView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRecord:
		var newModel tea.Model
		newModel, cmd = m.recordView.Update(msg)
		m.recordView = newModel.(view.RecordModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewCatalog:
		var newModel tea.Model
		newModel, cmd = m.catalogView.Update(msg)
		m.catalogView = newModel.(view.CatalogModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Beneficios TUI\n\n" +
				"1. Record Treatment\n" +
				"2. Day Dashboard\n" +
				"3. Monthly Report\n" +
				"4. Treatment Catalog\n\n" +
				"q. Quit",
		)
	case ViewRecord:
		return m.recordView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewCatalog:
		return m.catalogView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
