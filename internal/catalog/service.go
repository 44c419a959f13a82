package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateEntry(ctx context.Context, entry *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindEntryByName(ctx context.Context, name string) (*Entry, error)
	ListEntries(ctx context.Context, activeOnly bool) ([]*Entry, error)
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeactivateEntry(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Category     Category
	SalePrice    int64
	CostPrice    int64
	DurationMins int
	Description  string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.SalePrice < 0 || params.CostPrice < 0 {
		return nil, fmt.Errorf("prices must not be negative")
	}

	entry := &Entry{
		Name:         params.Name,
		Category:     params.Category,
		SalePrice:    params.SalePrice,
		CostPrice:    params.CostPrice,
		DurationMins: params.DurationMins,
		Description:  params.Description,
		Active:       true,
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// FindByName resolves a treatment by its exact name. Used by the till
// import to link lines back to the catalog.
func (s *Service) FindByName(ctx context.Context, name string) (*Entry, error) {
	return s.repo.FindEntryByName(ctx, name)
}

// List returns catalog entries. With activeOnly set, deactivated entries
// are excluded (new-treatment selection); without it, everything is
// returned for historical views.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, entry *Entry) error {
	if entry.SalePrice < 0 || entry.CostPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}

	return s.repo.UpdateEntry(ctx, entry)
}

// Deactivate soft-deletes an entry. Past daily records keep their captured
// prices, so this never affects historical summaries.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateEntry(ctx, id)
}
