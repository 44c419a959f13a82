package treatment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=treatment
type Repository interface {
	CreateRecord(ctx context.Context, rec *Record) error
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)
	UpdateRecord(ctx context.Context, rec *Record) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

// ImportTx wraps a till-import batch in one database transaction so
// duplicate detection and insertion see the same snapshot.
type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Record, error)
	CreateRecords(ctx context.Context, recs []*Record) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date          time.Time
	CatalogID     *uuid.UUID
	CatalogName   string
	Quantity      int
	SalePrice     int64
	CostPrice     int64
	PaymentMethod PaymentMethod
	Notes         string
}

type ListFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentMethod *PaymentMethod
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if params.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	rec := paramsToRecord(params)
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

func (s *Service) Update(ctx context.Context, rec *Record) error {
	if rec.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	return s.repo.UpdateRecord(ctx, rec)
}

// Delete removes a record permanently. Daily records are transactional
// data, not reference data, so hard deletion is allowed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRecord(ctx, id)
}

type ImportResult struct {
	Imported  []*Record
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Record
}

// ImportBatch inserts till lines that are not already recorded. When any
// line collides with an existing record (same date, treatment, quantity
// and prices) nothing is written and the split is returned for the caller
// to confirm.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for _, p := range params {
		if p.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1 (%s on %s)", p.CatalogName, p.Date.Format(time.DateOnly))
		}
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Record, len(duplicates))
	for _, d := range duplicates {
		lookup[recordKey(d)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[paramsKey(p)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	recs := paramsToRecords(newParams)
	if err := itx.CreateRecords(ctx, recs); err != nil {
		return nil, fmt.Errorf("create records: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: recs}, nil
}

// CreateBatch inserts already-confirmed lines without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	recs := paramsToRecords(params)
	if err := itx.CreateRecords(ctx, recs); err != nil {
		return nil, fmt.Errorf("create records: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return recs, nil
}

type dupKey struct {
	Date        string
	CatalogName string
	Quantity    int
	SalePrice   int64
	CostPrice   int64
}

func recordKey(r *Record) dupKey {
	return dupKey{
		Date:        r.Date.Format(time.DateOnly),
		CatalogName: r.CatalogName,
		Quantity:    r.Quantity,
		SalePrice:   r.SalePrice,
		CostPrice:   r.CostPrice,
	}
}

func paramsKey(p CreateParams) dupKey {
	return dupKey{
		Date:        p.Date.Format(time.DateOnly),
		CatalogName: p.CatalogName,
		Quantity:    p.Quantity,
		SalePrice:   p.SalePrice,
		CostPrice:   p.CostPrice,
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToRecord(p CreateParams) *Record {
	return &Record{
		Date:          p.Date,
		CatalogID:     p.CatalogID,
		CatalogName:   p.CatalogName,
		Quantity:      p.Quantity,
		SalePrice:     p.SalePrice,
		CostPrice:     p.CostPrice,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
}

func paramsToRecords(params []CreateParams) []*Record {
	recs := make([]*Record, len(params))
	for i, p := range params {
		recs[i] = paramsToRecord(p)
	}

	return recs
}
