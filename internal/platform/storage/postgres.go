package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/MichalMitros/google-feed-generator/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/google-feed-generator/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Postgres is storage for Google product records.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// GetByID returns record with provided ID or nil if there is no such record.
func (p Postgres) GetByID(ctx context.Context, id int) (*models.GoogleProductRecord, error) {
	record, err := getRecord(ctx, p.db, table.GoogleProductRecord.ID.EQ(pg.Int32(int32(id))))
	if err != nil {
		return nil, fmt.Errorf("can't get record by id: %w", err)
	}

	return record, nil
}

// GetByProductID returns record of provided product or nil if product has no record.
func (p Postgres) GetByProductID(ctx context.Context, productID int) (*models.GoogleProductRecord, error) {
	record, err := getRecord(ctx, p.db, table.GoogleProductRecord.ProductID.EQ(pg.Int32(int32(productID))))
	if err != nil {
		return nil, fmt.Errorf("can't get record by product id: %w", err)
	}

	return record, nil
}

// GetAll returns all records ordered by ID.
func (p Postgres) GetAll(ctx context.Context) ([]models.GoogleProductRecord, error) {
	var dbRecords []pgmodels.GoogleProductRecord
	err := table.GoogleProductRecord.SELECT(table.GoogleProductRecord.AllColumns).
		ORDER_BY(table.GoogleProductRecord.ID.ASC()).
		QueryContext(ctx, p.db, &dbRecords)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get records: %w", err)
	}

	return lo.Map(dbRecords, func(_ pgmodels.GoogleProductRecord, ix int) models.GoogleProductRecord {
		return *fromDBRecord(&dbRecords[ix])
	}), nil
}

// Insert inserts new record and sets its ID.
func (p Postgres) Insert(ctx context.Context, record *models.GoogleProductRecord) error {
	if err := insertRecord(ctx, p.db, record); err != nil {
		return fmt.Errorf("can't insert record: %w", err)
	}

	return nil
}

// Update updates existing record.
// It returns platform.ErrNotFound if there is no record with record's ID.
func (p Postgres) Update(ctx context.Context, record *models.GoogleProductRecord) error {
	if err := updateRecord(ctx, p.db, record); err != nil {
		return fmt.Errorf("can't update record: %w", err)
	}

	return nil
}

// Delete deletes record with record's ID.
// It returns platform.ErrNotFound if there is no such record.
func (p Postgres) Delete(ctx context.Context, record *models.GoogleProductRecord) error {
	result, err := table.GoogleProductRecord.DELETE().
		WHERE(table.GoogleProductRecord.ID.EQ(pg.Int32(int32(record.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't delete record: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); err != nil || rowsAffected == 0 {
		return fmt.Errorf("can't delete record: %w", lo.Ternary(err != nil, err, platform.ErrNotFound))
	}

	return nil
}

// Upsert updates record of record's product or inserts new one if product has no record yet.
// Record's ID is set to ID of the stored record. Concurrent upserts of the same product end with single record.
func (p Postgres) Upsert(ctx context.Context, record *models.GoogleProductRecord) error {
	columnList := table.GoogleProductRecord.MutableColumns

	excludedExpressions := make([]pg.Expression, 0, len(columnList))
	for _, col := range table.GoogleProductRecord.EXCLUDED.MutableColumns {
		excludedExpressions = append(excludedExpressions, col)
	}

	dbRecord := toDBRecord(record)
	err := table.GoogleProductRecord.INSERT(columnList).
		MODEL(dbRecord).
		ON_CONFLICT(table.GoogleProductRecord.ProductID).
		DO_UPDATE(
			pg.SET(
				columnList.SET(pg.ROW(excludedExpressions...)),
			),
		).
		RETURNING(table.GoogleProductRecord.ID).
		QueryContext(ctx, p.db, dbRecord)
	if err != nil {
		return fmt.Errorf("can't upsert record: %w", err)
	}

	record.ID = int(dbRecord.ID)

	return nil
}

func getRecord(ctx context.Context, db qrm.DB, condition pg.BoolExpression) (*models.GoogleProductRecord, error) {
	var dbRecord pgmodels.GoogleProductRecord
	err := table.GoogleProductRecord.SELECT(table.GoogleProductRecord.AllColumns).
		WHERE(condition).
		ORDER_BY(table.GoogleProductRecord.ID.ASC()).
		LIMIT(1).
		QueryContext(ctx, db, &dbRecord)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return fromDBRecord(&dbRecord), nil
}

func insertRecord(ctx context.Context, db qrm.DB, record *models.GoogleProductRecord) error {
	dbRecord := toDBRecord(record)
	err := table.GoogleProductRecord.INSERT(table.GoogleProductRecord.MutableColumns).
		MODEL(dbRecord).
		RETURNING(table.GoogleProductRecord.ID).
		QueryContext(ctx, db, dbRecord)
	if err != nil {
		return err
	}

	record.ID = int(dbRecord.ID)

	return nil
}

func updateRecord(ctx context.Context, db qrm.DB, record *models.GoogleProductRecord) error {
	result, err := table.GoogleProductRecord.UPDATE(table.GoogleProductRecord.MutableColumns).
		MODEL(toDBRecord(record)).
		WHERE(table.GoogleProductRecord.ID.EQ(pg.Int32(int32(record.ID)))).
		ExecContext(ctx, db)
	if err != nil {
		return err
	}

	if rowsAffected, err := result.RowsAffected(); err != nil || rowsAffected == 0 {
		return lo.Ternary(err != nil, err, platform.ErrNotFound)
	}

	return nil
}
