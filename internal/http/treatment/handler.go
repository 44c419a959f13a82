package treatment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/treatment"
)

var validate = validator.New()

type Handler struct {
	svc *treatment.Service
}

func NewHandler(svc *treatment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type recordRequest struct {
	Date          string     `json:"date" validate:"required,datetime=2006-01-02"`
	CatalogID     *uuid.UUID `json:"catalog_id,omitempty"`
	TreatmentName string     `json:"treatment_name" validate:"required"`
	Quantity      int        `json:"quantity" validate:"gte=1"`
	SalePrice     int64      `json:"sale_price" validate:"gte=0"`
	CostPrice     int64      `json:"cost_price" validate:"gte=0"`
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Notes         string     `json:"notes"`
}

type recordResponse struct {
	ID            uuid.UUID  `json:"id"`
	Date          string     `json:"date"`
	CatalogID     *uuid.UUID `json:"catalog_id,omitempty"`
	TreatmentName string     `json:"treatment_name"`
	Quantity      int        `json:"quantity"`
	SalePrice     int64      `json:"sale_price"`
	CostPrice     int64      `json:"cost_price"`
	TotalRevenue  int64      `json:"total_revenue"`
	GrossProfit   int64      `json:"gross_profit"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toRecordResponse(rec *treatment.Record) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		Date:          rec.Date.Format(time.DateOnly),
		CatalogID:     rec.CatalogID,
		TreatmentName: rec.CatalogName,
		Quantity:      rec.Quantity,
		SalePrice:     rec.SalePrice,
		CostPrice:     rec.CostPrice,
		TotalRevenue:  rec.TotalRevenue(),
		GrossProfit:   rec.GrossProfit(),
		PaymentMethod: string(rec.PaymentMethod),
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRecordResponse(rec))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseListFilter(r *http.Request) (treatment.ListFilter, error) {
	var filter treatment.ListFilter

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid start_date, expected YYYY-MM-DD")
		}

		filter.StartDate = &t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid end_date, expected YYYY-MM-DD")
		}

		// Make the end date inclusive.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndDate = &end
	}

	if s := r.URL.Query().Get("payment_method"); s != "" {
		switch pm := treatment.PaymentMethod(s); pm {
		case treatment.PaymentCash, treatment.PaymentCard, treatment.PaymentTransfer:
			filter.PaymentMethod = &pm
		default:
			return filter, errors.New("invalid payment_method")
		}
	}

	return filter, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), treatment.CreateParams{
		Date:          date,
		CatalogID:     req.CatalogID,
		CatalogName:   req.TreatmentName,
		Quantity:      req.Quantity,
		SalePrice:     req.SalePrice,
		CostPrice:     req.CostPrice,
		PaymentMethod: treatment.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toRecordResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, treatment.ErrNotFound) {
			http.Error(w, "treatment record not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRecordResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, treatment.ErrNotFound) {
			http.Error(w, "treatment record not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	rec.Date = date
	rec.CatalogID = req.CatalogID
	rec.CatalogName = req.TreatmentName
	rec.Quantity = req.Quantity
	rec.SalePrice = req.SalePrice
	rec.CostPrice = req.CostPrice
	rec.PaymentMethod = treatment.PaymentMethod(req.PaymentMethod)
	rec.Notes = req.Notes

	if err := h.svc.Update(r.Context(), rec); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRecordResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, treatment.ErrNotFound) {
			http.Error(w, "treatment record not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
