package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/treatment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, treatment_date, treatment_id, treatment_name,
// catalog_name, quantity, sale_price, cost_price, payment_method, notes, created_at
const selectRecordColumns = `
	t.id, t.treatment_date, t.treatment_id, t.treatment_name, c.name AS catalog_name,
	t.quantity, t.sale_price, t.cost_price, t.payment_method, t.notes, t.created_at
`

func scanRecord(s scanner) (*treatment.Record, error) {
	var rec treatment.Record

	var catalogID *uuid.UUID

	var capturedName, paymentStr string

	var catalogName, notes sql.NullString

	if err := s.Scan(
		&rec.ID, &rec.Date, &catalogID, &capturedName, &catalogName,
		&rec.Quantity, &rec.SalePrice, &rec.CostPrice, &paymentStr, &notes, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	rec.CatalogID = catalogID
	rec.PaymentMethod = treatment.PaymentMethod(paymentStr)
	rec.Notes = notes.String

	// Prefer the live catalog name; fall back to the name captured at
	// recording time when the catalog entry is gone.
	rec.CatalogName = catalogName.String
	if rec.CatalogName == "" {
		rec.CatalogName = capturedName
	}

	return &rec, nil
}

func (s *Store) CreateRecord(ctx context.Context, rec *treatment.Record) error {
	query := `
		INSERT INTO daily_treatments (treatment_date, treatment_id, treatment_name, quantity, sale_price, cost_price, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.Date,
		rec.CatalogID,
		rec.CatalogName,
		rec.Quantity,
		rec.SalePrice,
		rec.CostPrice,
		rec.PaymentMethod,
		rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating treatment record: %w", err)
	}

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*treatment.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM daily_treatments t
		LEFT JOIN treatments_catalog c ON t.treatment_id = c.id
		WHERE t.id = $1`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, treatment.ErrNotFound
		}

		return nil, fmt.Errorf("getting treatment record: %w", err)
	}

	return rec, nil
}

func (s *Store) ListRecords(ctx context.Context, filter treatment.ListFilter) ([]*treatment.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM daily_treatments t
		LEFT JOIN treatments_catalog c ON t.treatment_id = c.id
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.treatment_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.treatment_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.PaymentMethod != nil {
		query += fmt.Sprintf(" AND t.payment_method = $%d", argIdx)

		args = append(args, *filter.PaymentMethod)
		argIdx++
	}

	query += " ORDER BY t.treatment_date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing treatment records: %w", err)
	}
	defer rows.Close()

	var recs []*treatment.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning treatment record: %w", err)
		}

		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (s *Store) UpdateRecord(ctx context.Context, rec *treatment.Record) error {
	query := `
		UPDATE daily_treatments
		SET treatment_date = $1, treatment_id = $2, treatment_name = $3, quantity = $4,
			sale_price = $5, cost_price = $6, payment_method = $7, notes = $8
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.Date,
		rec.CatalogID,
		rec.CatalogName,
		rec.Quantity,
		rec.SalePrice,
		rec.CostPrice,
		rec.PaymentMethod,
		rec.Notes,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating treatment record: %w", err)
	}

	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM daily_treatments WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting treatment record: %w", err)
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction guarded by an advisory lock on the date
// window, so two concurrent imports of the same till export cannot both
// pass duplicate detection.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (treatment.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []treatment.CreateParams) ([]*treatment.Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date      string
		Name      string
		Quantity  int
		SalePrice int64
		CostPrice int64
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:      p.Date.Format("2006-01-02"),
			Name:      p.CatalogName,
			Quantity:  p.Quantity,
			SalePrice: p.SalePrice,
			CostPrice: p.CostPrice,
		}] = struct{}{}
	}

	query := `SELECT ` + selectRecordColumns + `
		FROM daily_treatments t
		LEFT JOIN treatments_catalog c ON t.treatment_id = c.id
		WHERE t.treatment_date >= $1 AND t.treatment_date <= $2
		ORDER BY t.treatment_date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*treatment.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning treatment record: %w", err)
		}

		k := lookupKey{
			Date:      rec.Date.Format("2006-01-02"),
			Name:      rec.CatalogName,
			Quantity:  rec.Quantity,
			SalePrice: rec.SalePrice,
			CostPrice: rec.CostPrice,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateRecords(ctx context.Context, recs []*treatment.Record) error {
	query := `
		INSERT INTO daily_treatments (treatment_date, treatment_id, treatment_name, quantity, sale_price, cost_price, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	for _, rec := range recs {
		err := itx.tx.QueryRowContext(ctx, query,
			rec.Date,
			rec.CatalogID,
			rec.CatalogName,
			rec.Quantity,
			rec.SalePrice,
			rec.CostPrice,
			rec.PaymentMethod,
			rec.Notes,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating treatment record: %w", err)
		}
	}

	return nil
}
