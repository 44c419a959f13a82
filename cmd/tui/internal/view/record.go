package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dromeroc/beneficios/internal/catalog"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// RecordModel is the "record a treatment" screen. It loads the active
// catalog and walks the user through a form; prices are captured from the
// selected entry so a later catalog change never rewrites this record.
type RecordModel struct {
	CommonModel
	treatmentService *treatment.Service
	catalogService   *catalog.Service

	entries []*catalog.Entry
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formEntryIdx int
	formDate     string
	formQuantity string
	formPayment  string
	formNotes    string
}

func NewRecordModel(treatmentSvc *treatment.Service, catalogSvc *catalog.Service) RecordModel {
	return RecordModel{
		treatmentService: treatmentSvc,
		catalogService:   catalogSvc,
		loading:          true,
	}
}

func (m RecordModel) Title() string     { return "Record Treatment" }
func (m RecordModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m RecordModel) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCatalogMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.buildForm()

		return m, m.form.Init()

	case recordSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Saved %s for %s €", msg.name, FormatAmount(msg.total))
		m.buildForm()

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
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

func (m *RecordModel) buildForm() {
	options := make([]huh.Option[int], 0, len(m.entries))
	for i, e := range m.entries {
		label := fmt.Sprintf("%s (%s €)", e.Name, FormatAmount(e.SalePrice))
		options = append(options, huh.NewOption(label, i))
	}

	m.formEntryIdx = 0
	m.formDate = FormatDate(time.Now())
	m.formQuantity = "1"
	m.formPayment = string(treatment.PaymentCash)
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("treatment").
				Title("Treatment").
				Options(options...).
				Value(&m.formEntryIdx),

			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("expected a positive number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("payment").
				Title("Payment").
				Options(
					huh.NewOption("Efectivo", string(treatment.PaymentCash)),
					huh.NewOption("Tarjeta", string(treatment.PaymentCard)),
					huh.NewOption("Transferencia", string(treatment.PaymentTransfer)),
				).
				Value(&m.formPayment),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RecordModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading catalog...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.entries) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("The catalog is empty. Add treatments first (menu option 4).")
	}

	content := m.form.View()

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render("Record Treatment\n\n" + content)
}

// Messages

type loadCatalogMsg struct {
	entries []*catalog.Entry
	err     error
}

func (m RecordModel) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.catalogService.List(ctx, true)
		return loadCatalogMsg{entries: entries, err: err}
	}
}

type recordSavedMsg struct {
	name  string
	total int64
	err   error
}

func (m RecordModel) saveCmd() tea.Cmd {
	if m.formEntryIdx < 0 || m.formEntryIdx >= len(m.entries) {
		return nil
	}

	entry := m.entries[m.formEntryIdx]
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))
	quantity, _ := strconv.Atoi(strings.TrimSpace(m.formQuantity))
	payment := treatment.PaymentMethod(m.formPayment)
	notes := m.formNotes

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		id := entry.ID

		rec, err := m.treatmentService.Create(ctx, treatment.CreateParams{
			Date:          date,
			CatalogID:     &id,
			CatalogName:   entry.Name,
			Quantity:      quantity,
			SalePrice:     entry.SalePrice,
			CostPrice:     entry.CostPrice,
			PaymentMethod: payment,
			Notes:         notes,
		})
		if err != nil {
			return recordSavedMsg{err: err}
		}

		return recordSavedMsg{name: rec.CatalogName, total: rec.TotalRevenue()}
	}
}
