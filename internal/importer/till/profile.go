package till

// Profile describes the column layout of one till export format.
// Supporting a new till is just adding a Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	ConceptCol string
	QtyCol     string // optional; missing or empty cell means quantity 1
	PriceCol   string
	CostCol    string // optional; "" when the format carries no cost
	PaymentCol string
}

// requiredCols returns the column names that must be present for this
// profile to match. Optional columns are not required.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.ConceptCol, p.PriceCol, p.PaymentCol}
}

// profiles is the ordered list of known till export formats. More specific
// profiles come first to avoid false matches.
var profiles = []Profile{
	{
		// Agenda exports carry the clinic's own cost column.
		Name:       "agenda",
		DateCol:    "Fecha",
		ConceptCol: "Concepto",
		QtyCol:     "Unidades",
		PriceCol:   "Precio",
		CostCol:    "Coste",
		PaymentCol: "Forma de pago",
	},
	{
		Name:       "tpv",
		DateCol:    "Fecha",
		ConceptCol: "Tratamiento",
		QtyCol:     "Cantidad",
		PriceCol:   "Importe",
		PaymentCol: "Pago",
	},
}
