package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/importer"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// Till exports are small, a month of lines at most.
const maxUploadBytes = 10 << 20

var validate = validator.New()

type Handler struct {
	importer   *importer.Service
	treatments *treatment.Service
}

func NewHandler(importerSvc *importer.Service, treatmentSvc *treatment.Service) *Handler {
	return &Handler{
		importer:   importerSvc,
		treatments: treatmentSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Post("/confirm", h.confirm)
}

type lineDTO struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	TreatmentName string `json:"treatment_name" validate:"required"`
	Quantity      int    `json:"quantity" validate:"gte=1"`
	SalePrice     int64  `json:"sale_price" validate:"gte=0"`
	CostPrice     int64  `json:"cost_price" validate:"gte=0"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card transfer"`
}

type unmatchedDTO struct {
	Date          string `json:"date"`
	TreatmentName string `json:"treatment_name"`
	Quantity      int    `json:"quantity"`
	SalePrice     int64  `json:"sale_price"`
	PaymentMethod string `json:"payment_method"`
}

type conflictDTO struct {
	Incoming   lineDTO   `json:"incoming"`
	ExistingID uuid.UUID `json:"existing_id"`
}

type uploadResponse struct {
	Imported  int            `json:"imported"`
	New       []lineDTO      `json:"new,omitempty"`
	Conflicts []conflictDTO  `json:"conflicts,omitempty"`
	Unmatched []unmatchedDTO `json:"unmatched,omitempty"`
}

func paramsToDTO(p treatment.CreateParams) lineDTO {
	return lineDTO{
		Date:          p.Date.Format(time.DateOnly),
		TreatmentName: p.CatalogName,
		Quantity:      p.Quantity,
		SalePrice:     p.SalePrice,
		CostPrice:     p.CostPrice,
		PaymentMethod: string(p.PaymentMethod),
	}
}

// upload accepts a multipart till export, parses it and imports the lines
// it can resolve. When any line collides with an existing record nothing is
// written: the split comes back as 409 and the client re-submits the
// confirmed subset through /confirm.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importer.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := uploadResponse{}

	for _, line := range result.Unmatched {
		resp.Unmatched = append(resp.Unmatched, unmatchedDTO{
			Date:          line.Date.Format(time.DateOnly),
			TreatmentName: line.Treatment,
			Quantity:      line.Quantity,
			SalePrice:     line.UnitPrice,
			PaymentMethod: string(line.Payment),
		})
	}

	batch, err := h.treatments.ImportBatch(r.Context(), result.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.Imported = len(batch.Imported)

	for _, p := range batch.New {
		resp.New = append(resp.New, paramsToDTO(p))
	}

	for _, c := range batch.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictDTO{
			Incoming:   paramsToDTO(c.Incoming),
			ExistingID: c.Existing.ID,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if len(resp.Conflicts) > 0 {
		w.WriteHeader(http.StatusConflict)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	Lines []lineDTO `json:"lines" validate:"required,min=1,dive"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

// confirm inserts lines the user already reviewed, skipping duplicate
// checks.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]treatment.CreateParams, 0, len(req.Lines))

	for _, line := range req.Lines {
		date, err := time.Parse(time.DateOnly, line.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params = append(params, treatment.CreateParams{
			Date:          date,
			CatalogName:   line.TreatmentName,
			Quantity:      line.Quantity,
			SalePrice:     line.SalePrice,
			CostPrice:     line.CostPrice,
			PaymentMethod: treatment.PaymentMethod(line.PaymentMethod),
		})
	}

	recs, err := h.treatments.CreateBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(confirmResponse{Imported: len(recs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
