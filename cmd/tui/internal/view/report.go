package view

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/report"
)

// ReportModel shows one month's summary. Left/right arrows move between
// months.
type ReportModel struct {
	CommonModel
	reportService *report.Service

	anchor  time.Time // first day of the shown month
	summary *report.MonthlySummary

	loading bool
	err     error
}

func NewReportModel(reportSvc *report.Service) ReportModel {
	now := time.Now()

	return ReportModel{
		reportService: reportSvc,
		anchor:        time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		loading:       true,
	}
}

func (m ReportModel) Title() string     { return "Monthly Report" }
func (m ReportModel) ShortHelp() string { return "Esc: back | left/right: change month | r: refresh" }

func (m ReportModel) Init() tea.Cmd {
	return m.loadMonthCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMonthMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.anchor = m.anchor.AddDate(0, -1, 0)
			m.loading = true

			return m, m.loadMonthCmd()
		case "right", "l":
			m.anchor = m.anchor.AddDate(0, 1, 0)
			m.loading = true

			return m, m.loadMonthCmd()
		case "r":
			m.loading = true
			return m, m.loadMonthCmd()
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	header := fmt.Sprintf("Monthly Report - %04d-%02d", m.anchor.Year(), int(m.anchor.Month()))

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(header + "\n\nLoading...")
	}

	if m.err != nil {
		if errors.Is(m.err, company.ErrConfigMissing) {
			return lipgloss.NewStyle().Padding(2).Render(header + "\n\nCompany config is not set. Configure it through the API first.")
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("%s\n\nError: %v", header, m.err))
	}

	s := m.summary

	body := fmt.Sprintf(
		"Gross revenue:      %s €\n"+
			"Net (ex VAT):       %s €\n\n"+
			"Product costs:      %s €\n"+
			"Product purchases:  %s €\n"+
			"Variable expenses:  %s €\n"+
			"Fixed expenses:     %s €\n"+
			"Labor costs:        %s €\n"+
			"Total expenses:     %s €\n\n"+
			"Gross profit:       %s €\n"+
			"Corporate tax:      %s €\n"+
			"Net profit:         %s €\n"+
			"Margin:             %.2f%%",
		FormatAmount(s.GrossRevenue),
		FormatAmount(s.NetRevenueExVAT),
		FormatAmount(s.ProductCosts),
		FormatAmount(s.ProductPurchases),
		FormatAmount(s.VariableExpenses),
		FormatAmount(s.FixedExpenses),
		FormatAmount(s.LaborCosts),
		FormatAmount(s.TotalExpenses),
		FormatAmount(s.GrossProfit),
		FormatAmount(s.CorporateTax),
		FormatAmount(s.NetProfit),
		s.ProfitMarginPct,
	)

	if s.ProductCosts != s.ProductPurchases {
		body += "\n\n" + lipgloss.NewStyle().Faint(true).Render(
			"Note: consumed cost and recorded purchases differ this month.")
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		panel,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadMonthMsg struct {
	summary *report.MonthlySummary
	err     error
}

func (m ReportModel) loadMonthCmd() tea.Cmd {
	year, month := m.anchor.Year(), m.anchor.Month()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Monthly(ctx, year, month)
		return loadMonthMsg{summary: summary, err: err}
	}
}
