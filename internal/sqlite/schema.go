package sqlite

// All pages share one records table. The body column holds the record as
// written to its JSONL file; the other columns are extracted for indexing.
const (
	createRecords = `CREATE TABLE records (
    table_name TEXT NOT NULL,
    record_id TEXT NOT NULL,
    hotel_id TEXT,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (table_name, record_id)
);`

	idxRecordsHotel   = `CREATE INDEX idx_records_hotel ON records(table_name, hotel_id);`
	idxRecordsCreated = `CREATE INDEX idx_records_created ON records(table_name, created_at);`
)

// schemaDDL lists the statements run on a fresh database, in order.
var schemaDDL = []string{
	createRecords,
	idxRecordsHotel,
	idxRecordsCreated,
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"
