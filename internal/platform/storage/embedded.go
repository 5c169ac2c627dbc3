package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Embedded is single node storage for Google product records backed by SQLite.
type Embedded struct {
	db *gorm.DB
}

// OpenEmbedded opens SQLite database under path and migrates its schema.
// Path ":memory:" opens in-memory database.
func OpenEmbedded(path string) (*Embedded, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("can't open sqlite database: %w", err)
	}

	// sqlite serializes writes and every in-memory connection is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("can't get sqlite connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return NewEmbedded(db)
}

// NewEmbedded returns new Embedded using provided connection. It migrates records table.
func NewEmbedded(db *gorm.DB) (*Embedded, error) {
	if err := db.AutoMigrate(&embeddedRecord{}); err != nil {
		return nil, fmt.Errorf("can't migrate records table: %w", err)
	}

	return &Embedded{db: db}, nil
}

// GetByID returns record with provided ID or nil if there is no such record.
func (e *Embedded) GetByID(ctx context.Context, id int) (*models.GoogleProductRecord, error) {
	record, err := e.first(ctx, e.db, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("can't get record by id: %w", err)
	}

	return record, nil
}

// GetByProductID returns record of provided product or nil if product has no record.
func (e *Embedded) GetByProductID(ctx context.Context, productID int) (*models.GoogleProductRecord, error) {
	record, err := e.first(ctx, e.db, "product_id = ?", productID)
	if err != nil {
		return nil, fmt.Errorf("can't get record by product id: %w", err)
	}

	return record, nil
}

// GetAll returns all records ordered by ID.
func (e *Embedded) GetAll(ctx context.Context) ([]models.GoogleProductRecord, error) {
	var records []embeddedRecord
	if err := e.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("can't get records: %w", err)
	}

	return lo.Map(records, func(_ embeddedRecord, ix int) models.GoogleProductRecord {
		return *fromEmbeddedRecord(&records[ix])
	}), nil
}

// Insert inserts new record and sets its ID.
func (e *Embedded) Insert(ctx context.Context, record *models.GoogleProductRecord) error {
	if err := insertEmbedded(ctx, e.db, record); err != nil {
		return fmt.Errorf("can't insert record: %w", err)
	}

	return nil
}

// Update updates existing record.
// It returns platform.ErrNotFound if there is no record with record's ID.
func (e *Embedded) Update(ctx context.Context, record *models.GoogleProductRecord) error {
	if err := updateEmbedded(ctx, e.db, record); err != nil {
		return fmt.Errorf("can't update record: %w", err)
	}

	return nil
}

// Delete deletes record with record's ID.
// It returns platform.ErrNotFound if there is no such record.
func (e *Embedded) Delete(ctx context.Context, record *models.GoogleProductRecord) error {
	result := e.db.WithContext(ctx).Delete(&embeddedRecord{}, record.ID)
	if result.Error != nil {
		return fmt.Errorf("can't delete record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("can't delete record: %w", platform.ErrNotFound)
	}

	return nil
}

// Upsert updates record of record's product or inserts new one if product has no record yet.
// Record's ID is set to ID of the stored record.
func (e *Embedded) Upsert(ctx context.Context, record *models.GoogleProductRecord) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := e.first(ctx, tx, "product_id = ?", record.ProductID)
		if err != nil {
			return fmt.Errorf("can't get stored record: %w", err)
		}

		if stored == nil {
			return insertEmbedded(ctx, tx, record)
		}

		record.ID = stored.ID
		return updateEmbedded(ctx, tx, record)
	})
	if err != nil {
		return fmt.Errorf("can't upsert record: %w", err)
	}

	return nil
}

// Close closes underlying database connection.
func (e *Embedded) Close() error {
	db, err := e.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (e *Embedded) first(ctx context.Context, db *gorm.DB, query string, args ...any) (*models.GoogleProductRecord, error) {
	var record embeddedRecord
	err := db.WithContext(ctx).Where(query, args...).Order("id ASC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return fromEmbeddedRecord(&record), nil
}

func insertEmbedded(ctx context.Context, db *gorm.DB, record *models.GoogleProductRecord) error {
	dbRecord := toEmbeddedRecord(record)
	dbRecord.ID = 0
	if err := db.WithContext(ctx).Create(dbRecord).Error; err != nil {
		return err
	}

	record.ID = dbRecord.ID

	return nil
}

func updateEmbedded(ctx context.Context, db *gorm.DB, record *models.GoogleProductRecord) error {
	result := db.WithContext(ctx).
		Model(&embeddedRecord{}).
		Where("id = ?", record.ID).
		Select("*").
		Omit("id").
		Updates(toEmbeddedRecord(record))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return platform.ErrNotFound
	}

	return nil
}
