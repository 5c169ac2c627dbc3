package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/google-feed-generator/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/google-feed-generator/internal/platform/storage/gen/postgres/public/table"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertRecords is a helper test function to insert Google product records. It sets IDs of inserted records.
func InsertRecords(t *testing.T, db qrm.Queryable, records ...*pgmodels.GoogleProductRecord) {
	t.Helper()

	for _, record := range records {
		err := table.GoogleProductRecord.INSERT(table.GoogleProductRecord.MutableColumns).
			MODEL(record).
			RETURNING(table.GoogleProductRecord.ID).
			Query(db, record)
		if err != nil {
			t.Fatal("can't insert records", err)
		}
	}
}

// GetRecords is a helper test function to get all Google product records ordered by ID.
func GetRecords(t *testing.T, queryable qrm.Queryable) []pgmodels.GoogleProductRecord {
	t.Helper()

	var records []pgmodels.GoogleProductRecord
	err := table.GoogleProductRecord.SELECT(table.GoogleProductRecord.AllColumns).
		ORDER_BY(table.GoogleProductRecord.ID.ASC()).
		Query(queryable, &records)
	if err != nil {
		t.Fatal("can't get records", err)
	}

	return records
}

// CleanupData is a helper test function to delete all Google product records.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.GoogleProductRecord.DELETE().WHERE(table.GoogleProductRecord.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete records data", err)
	}
}
