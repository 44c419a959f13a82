package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// DashboardModel is the daily dashboard: the day's treatment table next to
// the computed profit breakdown. Left/right arrows move between days.
type DashboardModel struct {
	CommonModel
	treatmentService *treatment.Service
	reportService    *report.Service

	date    time.Time
	table   table.Model
	records []*treatment.Record
	summary *report.DailySummary

	loading bool
	err     error
}

func NewDashboardModel(treatmentSvc *treatment.Service, reportSvc *report.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Treatment", Width: 32},
		{Title: "Qty", Width: 4},
		{Title: "Price", Width: 10},
		{Title: "Cost", Width: 10},
		{Title: "Profit", Width: 10},
		{Title: "Payment", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	now := time.Now()

	return DashboardModel{
		treatmentService: treatmentSvc,
		reportService:    reportSvc,
		date:             time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		table:            t,
		loading:          true,
	}
}

func (m DashboardModel) Title() string { return "Day Dashboard" }
func (m DashboardModel) ShortHelp() string {
	return "Esc: back | left/right: change day | t: today | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadDayCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDayMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.date = m.date.AddDate(0, 0, -1)
			m.loading = true

			return m, m.loadDayCmd()
		case "right", "l":
			m.date = m.date.AddDate(0, 0, 1)
			m.loading = true

			return m, m.loadDayCmd()
		case "t":
			now := time.Now()
			m.date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			m.loading = true

			return m, m.loadDayCmd()
		case "r":
			m.loading = true
			return m, m.loadDayCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		rows = append(rows, table.Row{
			rec.CatalogName,
			fmt.Sprintf("%d", rec.Quantity),
			FormatAmount(rec.TotalRevenue()),
			FormatAmount(rec.TotalCost()),
			FormatAmount(rec.GrossProfit()),
			string(rec.PaymentMethod),
		})
	}
	m.table.SetRows(rows)
}

func (m DashboardModel) View() string {
	header := fmt.Sprintf("Day Dashboard - %s", FormatDate(m.date))

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(header + "\n\nLoading...")
	}

	if m.err != nil {
		if errors.Is(m.err, company.ErrConfigMissing) {
			return lipgloss.NewStyle().Padding(2).Render(header + "\n\nCompany config is not set. Configure it through the API first.")
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("%s\n\nError: %v", header, m.err))
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render(header + "\n\nNo treatments recorded on this date.")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	breakdown := fmt.Sprintf(
		"Treatments:       %d\n"+
			"Gross revenue:    %s €\n"+
			"Net (ex VAT):     %s €\n"+
			"Product costs:    %s €\n"+
			"Gross profit:     %s €\n"+
			"Daily fixed:      %s €\n"+
			"Daily labor:      %s €\n"+
			"Net profit:       %s €\n"+
			"Margin:           %.0f%%\n\n"+
			"Cash: %s €  Card: %s €  Transfer: %s €",
		m.summary.NumTreatments,
		FormatAmount(m.summary.GrossRevenue),
		FormatAmount(m.summary.NetRevenueExVAT),
		FormatAmount(m.summary.ProductCosts),
		FormatAmount(m.summary.GrossProfitBeforeOverhead),
		FormatAmount(m.summary.DailyFixedCost),
		FormatAmount(m.summary.DailyLaborCost),
		FormatAmount(m.summary.DailyNetProfit),
		m.summary.ProfitMarginPct,
		FormatAmount(m.summary.CashAmount),
		FormatAmount(m.summary.CardAmount),
		FormatAmount(m.summary.TransferAmount),
	)

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(breakdown)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, tableView, panel),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadDayMsg struct {
	records []*treatment.Record
	summary *report.DailySummary
	err     error
}

func (m DashboardModel) loadDayCmd() tea.Cmd {
	date := m.date

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Daily(ctx, date)
		if err != nil {
			return loadDayMsg{err: err}
		}

		start := date
		end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

		records, err := m.treatmentService.List(ctx, treatment.ListFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			return loadDayMsg{err: err}
		}

		return loadDayMsg{records: records, summary: summary}
	}
}
