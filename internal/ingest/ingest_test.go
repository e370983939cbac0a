package ingest

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/demandlab/demandcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// TestReadCSVCanonicalHeader reads a file with canonical column names.
func TestReadCSVCanonicalHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	content := "order_id,customer_id,order_date,quantity,unit_price\n" +
		"o-1,alice,2024-03-01,2,10.50\n" +
		"o-2,bob,2024-03-02,1,3.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, schema.RawRecord{
		OrderID:    "o-1",
		CustomerID: "alice",
		OrderDate:  "2024-03-01",
		Quantity:   "2",
		Price:      "10.50",
	}, records[0])
}

// TestReadCSVAliasedHeader accepts common retail export spellings, including
// a UTF-8 byte order mark on the first column.
func TestReadCSVAliasedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.csv")
	content := "\ufeffInvoiceNo,Customer,InvoiceDate,Qty,Price\n" +
		"536365,carol,2024-03-05,6,2.55\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "536365", records[0].OrderID)
	assert.Equal(t, "carol", records[0].CustomerID)
	assert.Equal(t, "2.55", records[0].Price)
}

// TestReadCSVMissingColumn rejects inputs without a required column.
func TestReadCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	content := "order_id,customer_id,order_date,quantity\n" +
		"o-1,alice,2024-03-01,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_price")
}

// TestReadCSVMissingFile surfaces the open error.
func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

// TestReadQuerySQLite reads raw records from a query against SQLite.
func TestReadQuerySQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "source.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE sales (
		invoice TEXT, customer TEXT, invoice_date TEXT, qty INTEGER, price REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sales VALUES
		('o-1', 'alice', '2024-03-01', 2, 10.5),
		('o-2', 'bob', '2024-03-02', 1, 3.0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	records, err := ReadQuery(schema.SQLiteBackend, dbPath, "SELECT * FROM sales ORDER BY invoice")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "o-1", records[0].OrderID)
	assert.Equal(t, "alice", records[0].CustomerID)
	assert.Equal(t, "2", records[0].Quantity)
	assert.Equal(t, "o-2", records[1].OrderID)
}

// TestReadQuerySQLiteDefaultPath falls back to the same default database
// file the result sink uses when no connection string is given.
func TestReadQuerySQLiteDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	db, err := sql.Open("sqlite", filepath.Join(home, ".demandcast.db"))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE sales (
		order_id TEXT, customer_id TEXT, order_date TEXT, quantity INTEGER, unit_price REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sales VALUES ('o-9', 'dave', '2024-03-09', 3, 7.5)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	records, err := ReadQuery(schema.SQLiteBackend, "", "SELECT * FROM sales")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "dave", records[0].CustomerID)
}

// TestReadQueryNoneBackend rejects the none backend.
func TestReadQueryNoneBackend(t *testing.T) {
	_, err := ReadQuery(schema.NoneBackend, "", "SELECT 1")
	require.Error(t, err)
}
