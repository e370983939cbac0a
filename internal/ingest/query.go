package ingest

import (
	"database/sql"
	"fmt"

	"github.com/demandlab/demandcast/internal/sink"
	"github.com/demandlab/demandcast/schema"
)

// ReadQuery reads raw records from a SQL query against the configured
// backend. The query must return the same logical columns as a CSV input;
// header aliases apply to the result set's column names.
func ReadQuery(backend schema.DatabaseBackend, connStr, query string) ([]schema.RawRecord, error) {
	var driverName string
	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		// Same default the result sink uses, so query ingestion and the
		// sink read the same database when no connection string is given.
		if connStr == "" {
			connStr = sink.DefaultDBFilePath()
		}
	case schema.MySQLBackend:
		driverName = "mysql"
	case schema.PostgreSQLBackend:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("query ingestion is not supported for the %s backend", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("open ingestion database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("run ingestion query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read query columns: %w", err)
	}
	index, err := resolveHeader(columns)
	if err != nil {
		return nil, err
	}

	var records []schema.RawRecord
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan query row: %w", err)
		}
		records = append(records, schema.RawRecord{
			OrderID:    values[index["order_id"]].String,
			CustomerID: values[index["customer_id"]].String,
			OrderDate:  values[index["order_date"]].String,
			Quantity:   values[index["quantity"]].String,
			Price:      values[index["unit_price"]].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query rows: %w", err)
	}
	return records, nil
}
