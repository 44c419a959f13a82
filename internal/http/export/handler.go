package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dromeroc/beneficios/internal/export"
)

var validate = validator.New()

type Handler struct {
	svc *export.Service
	dir string
}

// NewHandler builds the export endpoints. dir is where the monthly books
// are written for the accountant to pick up.
func NewHandler(svc *export.Service, dir string) *Handler {
	return &Handler{svc: svc, dir: dir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Year  int `json:"year" validate:"required,gte=2000,lte=2100"`
	Month int `json:"month" validate:"required,gte=1,lte=12"`
}

type exportResponse struct {
	Period     string `json:"period"`
	Records    int    `json:"records"`
	LedgerPath string `json:"ledger_path"`
	ReportPath string `json:"report_path"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.svc.Export(r.Context(), req.Year, time.Month(req.Month), h.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := exportResponse{
		Period:     book.Summary.YearMonth(),
		Records:    len(book.Records),
		LedgerPath: book.LedgerPath,
		ReportPath: book.ReportPath,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// download streams the month's book as a zip without leaving files behind.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "beneficios-export-*")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	book, err := h.svc.Export(r.Context(), req.Year, time.Month(req.Month), tmpDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("cierre_%s.zip", book.Summary.YearMonth())))

	zw := zip.NewWriter(w)

	for _, path := range []string{book.LedgerPath, book.ReportPath} {
		if err := addFileToZip(zw, path); err != nil {
			slog.Error("failed to write zip entry", "path", path, "error", err)
			return
		}
	}

	if err := zw.Close(); err != nil {
		slog.Error("failed to finish zip", "error", err)
	}
}

func addFileToZip(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, f)

	return err
}
