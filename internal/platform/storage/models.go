package storage

import (
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"

	pgmodels "github.com/MichalMitros/google-feed-generator/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRecord(record *models.GoogleProductRecord) *pgmodels.GoogleProductRecord {
	return &pgmodels.GoogleProductRecord{
		ID:          int32(record.ID),
		ProductID:   int32(record.ProductID),
		Taxonomy:    record.Taxonomy,
		Gender:      record.Gender,
		AgeGroup:    record.AgeGroup,
		Color:       record.Color,
		Size:        record.Size,
		CustomGoods: record.CustomGoods,
	}
}

func fromDBRecord(record *pgmodels.GoogleProductRecord) *models.GoogleProductRecord {
	return &models.GoogleProductRecord{
		ID:          int(record.ID),
		ProductID:   int(record.ProductID),
		Taxonomy:    record.Taxonomy,
		Gender:      record.Gender,
		AgeGroup:    record.AgeGroup,
		Color:       record.Color,
		Size:        record.Size,
		CustomGoods: record.CustomGoods,
	}
}

// embeddedRecord is GORM model of google_product_record table.
type embeddedRecord struct {
	ID          int `gorm:"primaryKey;autoIncrement"`
	ProductID   int `gorm:"uniqueIndex:google_product_record_product_id_key;not null"`
	Taxonomy    string
	Gender      string
	AgeGroup    string
	Color       string
	Size        string
	CustomGoods bool
}

// TableName returns table name shared with Postgres schema.
func (embeddedRecord) TableName() string {
	return "google_product_record"
}

func toEmbeddedRecord(record *models.GoogleProductRecord) *embeddedRecord {
	return &embeddedRecord{
		ID:          record.ID,
		ProductID:   record.ProductID,
		Taxonomy:    record.Taxonomy,
		Gender:      record.Gender,
		AgeGroup:    record.AgeGroup,
		Color:       record.Color,
		Size:        record.Size,
		CustomGoods: record.CustomGoods,
	}
}

func fromEmbeddedRecord(record *embeddedRecord) *models.GoogleProductRecord {
	return &models.GoogleProductRecord{
		ID:          record.ID,
		ProductID:   record.ProductID,
		Taxonomy:    record.Taxonomy,
		Gender:      record.Gender,
		AgeGroup:    record.AgeGroup,
		Color:       record.Color,
		Size:        record.Size,
		CustomGoods: record.CustomGoods,
	}
}
