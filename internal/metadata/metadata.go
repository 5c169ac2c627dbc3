package metadata

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
)

//go:generate mockery --name Storage --filename storage.go

// Storage is Google product records storage.
type Storage interface {
	// GetByID returns record with provided ID or nil if there is no such record.
	GetByID(ctx context.Context, id int) (*models.GoogleProductRecord, error)
	// GetByProductID returns record of provided product or nil if product has no record.
	GetByProductID(ctx context.Context, productID int) (*models.GoogleProductRecord, error)
	// GetAll returns all records ordered by ID.
	GetAll(ctx context.Context) ([]models.GoogleProductRecord, error)
	// Insert inserts new record and sets its ID.
	Insert(ctx context.Context, record *models.GoogleProductRecord) error
	// Update updates existing record.
	Update(ctx context.Context, record *models.GoogleProductRecord) error
	// Delete deletes existing record.
	Delete(ctx context.Context, record *models.GoogleProductRecord) error
	// Upsert updates record of record's product or inserts new one.
	Upsert(ctx context.Context, record *models.GoogleProductRecord) error
}

// Option is custom configuration of Service.
type Option func(s *Service)

// Service manages per-product Google Shopping metadata.
type Service struct {
	storage      Storage
	taxonomy     fs.FS
	taxonomyFile string
}

// NewService returns new Service.
func NewService(storage Storage, ops ...Option) *Service {
	srv := &Service{
		storage:      storage,
		taxonomy:     bundledTaxonomy,
		taxonomyFile: taxonomyFileName,
	}

	for _, op := range ops {
		op(srv)
	}

	return srv
}

// GetByID returns record with provided ID or nil if there is no such record.
// Zero ID is never stored, so it returns nil without querying the storage.
func (s *Service) GetByID(ctx context.Context, id int) (*models.GoogleProductRecord, error) {
	if id == 0 {
		return nil, nil
	}

	record, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't get google product: %w", err)
	}

	return record, nil
}

// GetByProductID returns record of provided product or nil if product has no record.
// Zero product ID returns nil without querying the storage.
func (s *Service) GetByProductID(ctx context.Context, productID int) (*models.GoogleProductRecord, error) {
	if productID == 0 {
		return nil, nil
	}

	record, err := s.storage.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("can't get google product: %w", err)
	}

	return record, nil
}

// GetAll returns all records ordered by ID.
func (s *Service) GetAll(ctx context.Context) ([]models.GoogleProductRecord, error) {
	records, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't get google products: %w", err)
	}

	return records, nil
}

// Insert inserts new record.
func (s *Service) Insert(ctx context.Context, record *models.GoogleProductRecord) error {
	if record == nil {
		return fmt.Errorf("can't insert google product: %w", &ValidationError{Argument: "record"})
	}

	if err := s.storage.Insert(ctx, record); err != nil {
		return fmt.Errorf("can't insert google product: %w", err)
	}

	return nil
}

// Update updates existing record.
func (s *Service) Update(ctx context.Context, record *models.GoogleProductRecord) error {
	if record == nil {
		return fmt.Errorf("can't update google product: %w", &ValidationError{Argument: "record"})
	}

	if err := s.storage.Update(ctx, record); err != nil {
		return fmt.Errorf("can't update google product: %w", err)
	}

	return nil
}

// Delete deletes existing record.
func (s *Service) Delete(ctx context.Context, record *models.GoogleProductRecord) error {
	if record == nil {
		return fmt.Errorf("can't delete google product: %w", &ValidationError{Argument: "record"})
	}

	if err := s.storage.Delete(ctx, record); err != nil {
		return fmt.Errorf("can't delete google product: %w", err)
	}

	return nil
}

// Upsert stores record as the only record of its product.
func (s *Service) Upsert(ctx context.Context, record *models.GoogleProductRecord) error {
	if record == nil {
		return fmt.Errorf("can't save google product: %w", &ValidationError{Argument: "record"})
	}

	if record.ProductID == 0 {
		return fmt.Errorf("can't save google product: %w", &ValidationError{Argument: "productId"})
	}

	if err := s.storage.Upsert(ctx, record); err != nil {
		return fmt.Errorf("can't save google product: %w", err)
	}

	return nil
}

// WithTaxonomy sets custom taxonomy file.
func WithTaxonomy(fsys fs.FS, name string) Option {
	return func(s *Service) {
		s.taxonomy = fsys
		s.taxonomyFile = name
	}
}
