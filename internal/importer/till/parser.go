package till

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/dromeroc/beneficios/internal/encoding"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// Line is one parsed row of a till export, before catalog resolution.
// Prices are cents; UnitPrice includes VAT. HasCost reports whether the
// export carried its own cost column.
type Line struct {
	Date      time.Time
	Treatment string
	Quantity  int
	UnitPrice int64
	UnitCost  int64
	HasCost   bool
	Payment   treatment.PaymentMethod
}

// Parser reads till export CSVs and produces import lines. It auto-detects
// which format (agenda, tpv) is being used by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Line, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching till format found: expected columns for agenda or tpv")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts import lines from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Line, error) {
	var lines []Line

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, cols[p.DateCol])
		if !ok {
			// Footer and total rows have no date.
			continue
		}

		concept := cellValue(row, cols[p.ConceptCol])
		if concept == "" {
			return nil, fmt.Errorf("row %d: missing treatment name", rowNum)
		}

		price, err := parseEuropeanAmount(cellValue(row, cols[p.PriceCol]))
		if err != nil {
			continue
		}

		payment, ok := parsePayment(cellValue(row, cols[p.PaymentCol]))
		if !ok {
			continue
		}

		line := Line{
			Date:      date,
			Treatment: concept,
			Quantity:  parseQuantity(row, cols, p.QtyCol),
			UnitPrice: price,
			Payment:   payment,
		}

		if costIdx, ok := cols[p.CostCol]; ok && p.CostCol != "" {
			if s := cellValue(row, costIdx); s != "" {
				cost, err := parseEuropeanAmount(s)
				if err != nil {
					return nil, fmt.Errorf("row %d: bad cost %q", rowNum, s)
				}

				line.UnitCost = cost
				line.HasCost = true
			}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// parseDate tries both separators Spanish tills use.
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseQuantity reads the quantity column; an absent column or empty cell
// means a single treatment.
func parseQuantity(row []string, cols colIndex, qtyCol string) int {
	idx, ok := cols[qtyCol]
	if !ok {
		return 1
	}

	s := cellValue(row, idx)
	if s == "" {
		return 1
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}

	return n
}

func parsePayment(s string) (treatment.PaymentMethod, bool) {
	switch strings.ToLower(s) {
	case "efectivo", "metálico", "cash":
		return treatment.PaymentCash, true
	case "tarjeta", "tarjeta crédito", "tarjeta débito", "card":
		return treatment.PaymentCard, true
	case "transferencia", "transf.", "bizum", "transfer":
		return treatment.PaymentTransfer, true
	}

	return "", false
}

// parseEuropeanAmount parses a European-formatted amount string into cents.
// Format examples: "1.234,56" -> 123456, "-588,74" -> -58874, "10,00" -> 1000.
func parseEuropeanAmount(s string) (int64, error) {
	clean := strings.TrimSuffix(strings.TrimSpace(s), "€")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
