package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/daily", h.daily)
	r.Get("/monthly", h.monthly)
	r.Get("/trend", h.trend)
}

type dailyResponse struct {
	Date                      string  `json:"date"`
	GrossRevenue              int64   `json:"gross_revenue"`
	NetRevenueExVAT           int64   `json:"net_revenue_ex_vat"`
	ProductCosts              int64   `json:"product_costs"`
	GrossProfitBeforeOverhead int64   `json:"gross_profit_before_overhead"`
	DailyFixedCost            int64   `json:"daily_fixed_cost"`
	DailyLaborCost            int64   `json:"daily_labor_cost"`
	DailyNetProfit            int64   `json:"daily_net_profit"`
	ProfitMarginPct           float64 `json:"profit_margin_pct"`
	CashAmount                int64   `json:"cash_amount"`
	CardAmount                int64   `json:"card_amount"`
	TransferAmount            int64   `json:"transfer_amount"`
	NumTreatments             int     `json:"num_treatments"`
}

func toDailyResponse(s *report.DailySummary) dailyResponse {
	return dailyResponse{
		Date:                      s.Date.Format(time.DateOnly),
		GrossRevenue:              s.GrossRevenue,
		NetRevenueExVAT:           s.NetRevenueExVAT,
		ProductCosts:              s.ProductCosts,
		GrossProfitBeforeOverhead: s.GrossProfitBeforeOverhead,
		DailyFixedCost:            s.DailyFixedCost,
		DailyLaborCost:            s.DailyLaborCost,
		DailyNetProfit:            s.DailyNetProfit,
		ProfitMarginPct:           s.ProfitMarginPct,
		CashAmount:                s.CashAmount,
		CardAmount:                s.CardAmount,
		TransferAmount:            s.TransferAmount,
		NumTreatments:             s.NumTreatments,
	}
}

type monthlyResponse struct {
	Period           string  `json:"period"`
	GrossRevenue     int64   `json:"gross_revenue"`
	NetRevenueExVAT  int64   `json:"net_revenue_ex_vat"`
	ProductCosts     int64   `json:"product_costs"`
	ProductPurchases int64   `json:"product_purchases"`
	VariableExpenses int64   `json:"variable_expenses"`
	FixedExpenses    int64   `json:"fixed_expenses"`
	LaborCosts       int64   `json:"labor_costs"`
	TotalExpenses    int64   `json:"total_expenses"`
	GrossProfit      int64   `json:"gross_profit"`
	CorporateTax     int64   `json:"corporate_tax"`
	NetProfit        int64   `json:"net_profit"`
	ProfitMarginPct  float64 `json:"profit_margin_pct"`
}

func toMonthlyResponse(s *report.MonthlySummary) monthlyResponse {
	return monthlyResponse{
		Period:           s.YearMonth(),
		GrossRevenue:     s.GrossRevenue,
		NetRevenueExVAT:  s.NetRevenueExVAT,
		ProductCosts:     s.ProductCosts,
		ProductPurchases: s.ProductPurchases,
		VariableExpenses: s.VariableExpenses,
		FixedExpenses:    s.FixedExpenses,
		LaborCosts:       s.LaborCosts,
		TotalExpenses:    s.TotalExpenses,
		GrossProfit:      s.GrossProfit,
		CorporateTax:     s.CorporateTax,
		NetProfit:        s.NetProfit,
		ProfitMarginPct:  s.ProfitMarginPct,
	}
}

// daily serves GET /daily?date=YYYY-MM-DD. A date without any recorded
// treatments returns 204, distinguishing "no activity" from a zero-profit
// day.
func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(time.DateOnly, r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Daily(r.Context(), date)
	if err != nil {
		writeReportError(w, err)
		return
	}

	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, toDailyResponse(summary))
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Monthly(r.Context(), year, month)
	if err != nil {
		writeReportError(w, err)
		return
	}

	writeJSON(w, toMonthlyResponse(summary))
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	months := 6
	if s := r.URL.Query().Get("months"); s != "" {
		months, err = strconv.Atoi(s)
		if err != nil || months < 1 || months > 36 {
			http.Error(w, "invalid months, expected 1-36", http.StatusBadRequest)
			return
		}
	}

	summaries, err := h.svc.Trend(r.Context(), year, month, months)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp := make([]monthlyResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, toMonthlyResponse(s))
	}

	writeJSON(w, resp)
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, errors.New("invalid year")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}

	return year, time.Month(month), nil
}

// writeReportError maps a missing company configuration to 409: the client
// must complete setup before any summary can be computed.
func writeReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, company.ErrConfigMissing) {
		http.Error(w, "company config not set", http.StatusConflict)
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
