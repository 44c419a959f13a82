package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/expense"
)

var validate = validator.New()

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/fixed", func(r chi.Router) {
		r.Get("/", h.listFixed)
		r.Post("/", h.createFixed)
		r.Put("/{id}", h.updateFixed)
		r.Delete("/{id}", h.deactivateFixed)
	})

	r.Route("/variable", func(r chi.Router) {
		r.Get("/", h.listVariable)
		r.Post("/", h.createVariable)
		r.Delete("/{id}", h.deleteVariable)
	})

	r.Route("/product-costs", func(r chi.Router) {
		r.Get("/", h.listProductCosts)
		r.Post("/", h.createProductCost)
		r.Delete("/{id}", h.deleteProductCost)
	})
}

// monthWindow reads ?year=&month= and returns the inclusive range for that
// calendar month. Both parameters are required for ledger listings.
func monthWindow(r *http.Request) (time.Time, time.Time, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, errors.New("invalid year")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, errors.New("invalid month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
}

type fixedRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      int64   `json:"amount" validate:"gte=0"`
	Frequency   string  `json:"frequency" validate:"required,oneof=monthly quarterly annual"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes"`
}

type fixedResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Frequency   string     `json:"frequency"`
	StartDate   string     `json:"start_date"`
	EndDate     *string    `json:"end_date,omitempty"`
	Active      bool       `json:"is_active"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toFixedResponse(e *expense.FixedExpense) fixedResponse {
	resp := fixedResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Frequency:   string(e.Frequency),
		StartDate:   e.StartDate.Format(time.DateOnly),
		Active:      e.Active,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.EndDate != nil {
		resp.EndDate = new(e.EndDate.Format(time.DateOnly))
	}

	return resp
}

func (h *Handler) listFixed(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListActiveFixed(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]fixedResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toFixedResponse(e))
	}

	writeJSON(w, resp)
}

func (h *Handler) createFixed(w http.ResponseWriter, r *http.Request) {
	var req fixedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	params := expense.FixedParams{
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   expense.Frequency(req.Frequency),
		StartDate:   startDate,
		Notes:       req.Notes,
	}

	if req.EndDate != nil {
		endDate, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		params.EndDate = &endDate
	}

	e, err := h.svc.CreateFixed(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toFixedResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) updateFixed(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req fixedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	e := &expense.FixedExpense{
		ID:          id,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   expense.Frequency(req.Frequency),
		StartDate:   startDate,
		Active:      true,
		Notes:       req.Notes,
	}

	if req.EndDate != nil {
		endDate, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		e.EndDate = &endDate
	}

	if err := h.svc.UpdateFixed(r.Context(), e); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, toFixedResponse(e))
}

func (h *Handler) deactivateFixed(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeactivateFixed(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type variableRequest struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Description   string `json:"description" validate:"required"`
	Amount        int64  `json:"amount" validate:"gte=0"`
	HasVAT        bool   `json:"has_vat"`
	VATAmount     *int64 `json:"vat_amount,omitempty" validate:"omitempty,gte=0"`
	InvoiceNumber string `json:"invoice_number"`
	Supplier      string `json:"supplier"`
	Notes         string `json:"notes"`
}

type variableResponse struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Amount        int64     `json:"amount"`
	HasVAT        bool      `json:"has_vat"`
	VATAmount     *int64    `json:"vat_amount,omitempty"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	Supplier      string    `json:"supplier,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toVariableResponse(e *expense.VariableExpense) variableResponse {
	return variableResponse{
		ID:            e.ID,
		Date:          e.Date.Format(time.DateOnly),
		Description:   e.Description,
		Amount:        e.Amount,
		HasVAT:        e.HasVAT,
		VATAmount:     e.VATAmount,
		InvoiceNumber: e.InvoiceNumber,
		Supplier:      e.Supplier,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

func (h *Handler) listVariable(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.svc.ListVariable(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]variableResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toVariableResponse(e))
	}

	writeJSON(w, resp)
}

func (h *Handler) createVariable(w http.ResponseWriter, r *http.Request) {
	var req variableRequest
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
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	e, err := h.svc.CreateVariable(r.Context(), expense.VariableParams{
		Date:          date,
		Description:   req.Description,
		Amount:        req.Amount,
		HasVAT:        req.HasVAT,
		VATAmount:     req.VATAmount,
		InvoiceNumber: req.InvoiceNumber,
		Supplier:      req.Supplier,
		Notes:         req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toVariableResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteVariable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteVariable(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type productCostRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	ProductName string `json:"product_name" validate:"required"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
	UnitCost    int64  `json:"unit_cost" validate:"gte=0"`
	Notes       string `json:"notes"`
}

type productCostResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	ProductName string    `json:"product_name"`
	Supplier    string    `json:"supplier,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitCost    int64     `json:"unit_cost"`
	TotalCost   int64     `json:"total_cost"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProductCostResponse(p *expense.ProductCost) productCostResponse {
	return productCostResponse{
		ID:          p.ID,
		Date:        p.Date.Format(time.DateOnly),
		ProductName: p.ProductName,
		Supplier:    p.Supplier,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		TotalCost:   p.TotalCost(),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) listProductCosts(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	costs, err := h.svc.ListProductCosts(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]productCostResponse, 0, len(costs))
	for _, p := range costs {
		resp = append(resp, toProductCostResponse(p))
	}

	writeJSON(w, resp)
}

func (h *Handler) createProductCost(w http.ResponseWriter, r *http.Request) {
	var req productCostRequest
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
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreateProductCost(r.Context(), expense.ProductCostParams{
		Date:        date,
		ProductName: req.ProductName,
		Supplier:    req.Supplier,
		Quantity:    req.Quantity,
		UnitCost:    req.UnitCost,
		Notes:       req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toProductCostResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteProductCost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteProductCost(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "product cost not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
