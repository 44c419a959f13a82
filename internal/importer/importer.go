package importer

import (
	"io"

	"github.com/dromeroc/beneficios/internal/importer/till"
)

// Line is one parsed row of a till export, before catalog resolution.
// Prices are cents; UnitPrice includes VAT. HasCost reports whether the
// export carried its own cost column.
type Line = till.Line

// Parser turns a till export stream into lines.
type Parser interface {
	Parse(r io.Reader) ([]Line, error)
}
