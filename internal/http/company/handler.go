package company

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/company"
)

var validate = validator.New()

type Handler struct {
	svc *company.Service
}

func NewHandler(svc *company.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.save)
	r.Get("/tax-rates", h.listTaxRates)
	r.Post("/tax-rates", h.createTaxRate)
	r.Delete("/tax-rates/{id}", h.deactivateTaxRate)
}

type configRequest struct {
	CompanyName         string  `json:"company_name" validate:"required"`
	CIF                 string  `json:"cif"`
	NumEmployees        int     `json:"num_employees" validate:"gte=0"`
	EmployeeNetSalary   int64   `json:"employee_net_salary" validate:"gte=0"`
	EmployeeGrossSalary int64   `json:"employee_gross_salary" validate:"gte=0,gtefield=EmployeeNetSalary"`
	OwnerNetSalary      int64   `json:"owner_net_salary" validate:"gte=0"`
	OwnerGrossSalary    int64   `json:"owner_gross_salary" validate:"gte=0,gtefield=OwnerNetSalary"`
	OwnerSSAutonomo     int64   `json:"owner_ss_autonomo" validate:"gte=0"`
	VATRatePct          float64 `json:"vat_rate" validate:"gte=0,lte=100"`
}

type configResponse struct {
	ID                  uuid.UUID  `json:"id"`
	CompanyName         string     `json:"company_name"`
	CIF                 string     `json:"cif,omitempty"`
	NumEmployees        int        `json:"num_employees"`
	EmployeeNetSalary   int64      `json:"employee_net_salary"`
	EmployeeGrossSalary int64      `json:"employee_gross_salary"`
	OwnerNetSalary      int64      `json:"owner_net_salary"`
	OwnerGrossSalary    int64      `json:"owner_gross_salary"`
	OwnerSSAutonomo     int64      `json:"owner_ss_autonomo"`
	VATRatePct          float64    `json:"vat_rate"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

func toConfigResponse(cfg *company.Config) configResponse {
	return configResponse{
		ID:                  cfg.ID,
		CompanyName:         cfg.CompanyName,
		CIF:                 cfg.CIF,
		NumEmployees:        cfg.NumEmployees,
		EmployeeNetSalary:   cfg.EmployeeNetSalary,
		EmployeeGrossSalary: cfg.EmployeeGrossSalary,
		OwnerNetSalary:      cfg.OwnerNetSalary,
		OwnerGrossSalary:    cfg.OwnerGrossSalary,
		OwnerSSAutonomo:     cfg.OwnerSSAutonomo,
		VATRatePct:          cfg.VATRatePct,
		CreatedAt:           cfg.CreatedAt,
		UpdatedAt:           cfg.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		if errors.Is(err, company.ErrConfigMissing) {
			http.Error(w, "company config not set", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toConfigResponse(cfg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.svc.Save(r.Context(), company.ConfigParams{
		CompanyName:         req.CompanyName,
		CIF:                 req.CIF,
		NumEmployees:        req.NumEmployees,
		EmployeeNetSalary:   req.EmployeeNetSalary,
		EmployeeGrossSalary: req.EmployeeGrossSalary,
		OwnerNetSalary:      req.OwnerNetSalary,
		OwnerGrossSalary:    req.OwnerGrossSalary,
		OwnerSSAutonomo:     req.OwnerSSAutonomo,
		VATRatePct:          req.VATRatePct,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toConfigResponse(cfg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type taxRateRequest struct {
	TaxType       string     `json:"tax_type" validate:"required"`
	Description   string     `json:"description"`
	RatePct       float64    `json:"rate_percentage" validate:"gte=0,lte=100"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
}

type taxRateResponse struct {
	ID            uuid.UUID  `json:"id"`
	TaxType       string     `json:"tax_type"`
	Description   string     `json:"description,omitempty"`
	RatePct       float64    `json:"rate_percentage"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	Active        bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toTaxRateResponse(rate *company.TaxRate) taxRateResponse {
	return taxRateResponse{
		ID:            rate.ID,
		TaxType:       rate.TaxType,
		Description:   rate.Description,
		RatePct:       rate.RatePct,
		EffectiveFrom: rate.EffectiveFrom,
		EffectiveTo:   rate.EffectiveTo,
		Active:        rate.Active,
		CreatedAt:     rate.CreatedAt,
	}
}

func (h *Handler) listTaxRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.ListTaxRates(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]taxRateResponse, 0, len(rates))
	for _, rate := range rates {
		resp = append(resp, toTaxRateResponse(rate))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) createTaxRate(w http.ResponseWriter, r *http.Request) {
	var req taxRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rate := &company.TaxRate{
		TaxType:       req.TaxType,
		Description:   req.Description,
		RatePct:       req.RatePct,
		EffectiveFrom: req.EffectiveFrom,
		EffectiveTo:   req.EffectiveTo,
		Active:        true,
	}

	if err := h.svc.CreateTaxRate(r.Context(), rate); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTaxRateResponse(rate)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivateTaxRate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeactivateTaxRate(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
