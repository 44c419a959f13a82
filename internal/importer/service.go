package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dromeroc/beneficios/internal/catalog"
	"github.com/dromeroc/beneficios/internal/importer/till"
	"github.com/dromeroc/beneficios/internal/treatment"
)

type Service struct {
	parser  Parser
	catalog *catalog.Service
}

func NewService(catalogSvc *catalog.Service) *Service {
	return &Service{
		parser:  till.NewParser(),
		catalog: catalogSvc,
	}
}

// Result splits parsed lines into resolvable treatment params and lines
// whose treatment the catalog does not know. Unmatched lines without a
// cost column are never coerced to zero-cost records; staff resolve them
// by hand.
type Result struct {
	Params    []treatment.CreateParams
	Unmatched []Line
}

// Import parses a till export and resolves each line against the catalog.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	lines, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing till export: %w", err)
	}

	result := &Result{}

	for _, line := range lines {
		entry, err := s.catalog.FindByName(ctx, line.Treatment)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				if line.HasCost {
					// Cost came with the file; the record stands on its
					// own without a catalog link.
					result.Params = append(result.Params, lineToParams(line, nil, line.UnitCost))
					continue
				}

				result.Unmatched = append(result.Unmatched, line)

				continue
			}

			return nil, fmt.Errorf("resolving %q: %w", line.Treatment, err)
		}

		cost := entry.CostPrice
		if line.HasCost {
			cost = line.UnitCost
		}

		result.Params = append(result.Params, lineToParams(line, entry, cost))
	}

	return result, nil
}

func lineToParams(line Line, entry *catalog.Entry, cost int64) treatment.CreateParams {
	params := treatment.CreateParams{
		Date:          line.Date,
		CatalogName:   line.Treatment,
		Quantity:      line.Quantity,
		SalePrice:     line.UnitPrice,
		CostPrice:     cost,
		PaymentMethod: line.Payment,
	}

	if entry != nil {
		id := entry.ID
		params.CatalogID = &id
		params.CatalogName = entry.Name
	}

	return params
}
