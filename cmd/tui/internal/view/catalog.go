package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dromeroc/beneficios/internal/catalog"
)

type catalogState int

const (
	catalogStateBrowse catalogState = iota
	catalogStateAdd
)

// CatalogModel manages the treatment catalog: browse everything, add new
// entries, deactivate old ones.
type CatalogModel struct {
	CommonModel
	catalogService *catalog.Service

	state   catalogState
	table   table.Model
	entries []*catalog.Entry
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formCategory string
	formSale     string
	formCost     string
	formDuration string
}

func NewCatalogModel(catalogSvc *catalog.Service) CatalogModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Category", Width: 10},
		{Title: "Price", Width: 10},
		{Title: "Cost", Width: 10},
		{Title: "Mins", Width: 5},
		{Title: "Active", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return CatalogModel{
		catalogService: catalogSvc,
		table:          t,
		loading:        true,
	}
}

func (m CatalogModel) Title() string { return "Treatment Catalog" }
func (m CatalogModel) ShortHelp() string {
	if m.state == catalogStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: deactivate | r: refresh"
}

func (m CatalogModel) Init() tea.Cmd {
	return m.loadEntriesCmd()
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case catalogSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = catalogStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadEntriesCmd()
	}

	switch m.state {
	case catalogStateBrowse:
		return m.updateBrowse(msg)
	case catalogStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m CatalogModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			return m, m.deactivateCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CatalogModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCategory = string(catalog.CategoryAesthetic)
	m.formSale = ""
	m.formCost = ""
	m.formDuration = "30"

	amount := func(s string) error {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64); err != nil {
			return fmt.Errorf("expected an amount like 80.00")
		}
		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(
					huh.NewOption("Medical", string(catalog.CategoryMedical)),
					huh.NewOption("Aesthetic", string(catalog.CategoryAesthetic)),
					huh.NewOption("Cosmetic", string(catalog.CategoryCosmetic)),
				).
				Value(&m.formCategory),

			huh.NewInput().
				Key("sale_price").
				Title("Sale price (EUR, VAT incl.)").
				Value(&m.formSale).
				Validate(amount),

			huh.NewInput().
				Key("cost_price").
				Title("Product cost (EUR)").
				Value(&m.formCost).
				Validate(amount),

			huh.NewInput().
				Key("duration").
				Title("Duration (minutes)").
				Value(&m.formDuration),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = catalogStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m CatalogModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = catalogStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m *CatalogModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		active := "yes"
		if !e.Active {
			active = "no"
		}

		rows = append(rows, table.Row{
			e.Name,
			string(e.Category),
			FormatAmount(e.SalePrice),
			FormatAmount(e.CostPrice),
			fmt.Sprintf("%d", e.DurationMins),
			active,
		})
	}
	m.table.SetRows(rows)
}

func (m CatalogModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading catalog...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render("Treatment Catalog"),
		tableView,
	)

	if m.state == catalogStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Treatment\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadEntriesMsg struct {
	entries []*catalog.Entry
	err     error
}

func (m CatalogModel) loadEntriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.catalogService.List(ctx, false)
		return loadEntriesMsg{entries: entries, err: err}
	}
}

type catalogSavedMsg struct {
	err error
}

func (m CatalogModel) saveCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	category := catalog.Category(m.formCategory)
	sale := parseEuros(m.formSale)
	cost := parseEuros(m.formCost)

	duration, err := strconv.Atoi(strings.TrimSpace(m.formDuration))
	if err != nil {
		duration = 0
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.catalogService.Create(ctx, catalog.CreateParams{
			Name:         name,
			Category:     category,
			SalePrice:    sale,
			CostPrice:    cost,
			DurationMins: duration,
		})

		return catalogSavedMsg{err: err}
	}
}

func (m CatalogModel) deactivateCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	id := m.entries[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return catalogSavedMsg{err: m.catalogService.Deactivate(ctx, id)}
	}
}

// parseEuros converts a user-typed euro amount into cents. Validation
// already ran in the form, so failures collapse to zero.
func parseEuros(s string) int64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0
	}

	return int64(f*100 + 0.5)
}
