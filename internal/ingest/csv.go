// Package ingest reads raw transaction records from the supported input
// boundaries: CSV files and SQL queries. No validation happens here beyond
// locating the expected columns; the cleaner owns field-level trust.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/demandlab/demandcast/schema"
	"github.com/schollz/progressbar/v3"
)

// columnAliases maps accepted header spellings to canonical column keys.
// Retail exports disagree wildly on naming, so common variants are accepted.
var columnAliases = map[string]string{
	"order_id":     "order_id",
	"orderid":      "order_id",
	"invoice":      "order_id",
	"invoice_no":   "order_id",
	"invoiceno":    "order_id",
	"customer_id":  "customer_id",
	"customerid":   "customer_id",
	"customer":     "customer_id",
	"order_date":   "order_date",
	"orderdate":    "order_date",
	"date":         "order_date",
	"invoice_date": "order_date",
	"invoicedate":  "order_date",
	"quantity":     "quantity",
	"qty":          "quantity",
	"unit_price":   "unit_price",
	"unitprice":    "unit_price",
	"price":        "unit_price",
}

var requiredColumns = []string{"order_id", "customer_id", "order_date", "quantity", "unit_price"}

// ReadCSV reads raw records from a headered CSV file, showing byte-level
// progress on stderr for large exports.
func ReadCSV(path string) ([]schema.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	bar := progressbar.DefaultBytes(info.Size(), "Reading transactions")
	defer func() { _ = bar.Close() }()

	reader := csv.NewReader(io.TeeReader(f, bar))

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var records []schema.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, schema.RawRecord{
			OrderID:    row[index["order_id"]],
			CustomerID: row[index["customer_id"]],
			OrderDate:  row[index["order_date"]],
			Quantity:   row[index["quantity"]],
			Price:      row[index["unit_price"]],
		})
	}
	return records, nil
}

// resolveHeader maps canonical column keys to positions in the header row.
func resolveHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, dup := index[canonical]; !dup {
				index[canonical] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("input is missing required column %q", col)
		}
	}
	return index, nil
}
