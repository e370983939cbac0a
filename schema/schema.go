// Package schema has configs, models and shared constants for all parts of demandcast.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is a transaction record as it arrives from the input boundary
// (CSV file or SQL query). All fields are untrusted strings; the cleaner
// is the trust boundary that coerces and validates them.
type RawRecord struct {
	OrderID    string // Order identifier, may be empty
	CustomerID string // Customer identifier, may be empty
	OrderDate  string // Timestamp in RFC3339 or YYYY-MM-DD form
	Quantity   string // Integer quantity, unparsed
	Price      string // Decimal unit price, unparsed
}

// TransactionRecord is a cleaned, canonical transaction line.
// Quantity is always >= 1 and UnitPrice >= 0; LineTotal = Quantity * UnitPrice.
type TransactionRecord struct {
	OrderID    string          // Order identifier
	CustomerID string          // Customer identifier
	Timestamp  time.Time       // Transaction time (UTC)
	Quantity   int             // Units sold
	UnitPrice  decimal.Decimal // Price per unit
	LineTotal  decimal.Decimal // Quantity * UnitPrice
}

// CleanStats summarizes what the cleaner did with its input. Dropped counts
// records removed for missing or uncoercible fields; Duplicates counts exact
// duplicate records removed. Emitted on every run for audit purposes.
type CleanStats struct {
	Input      int // Raw records received
	Dropped    int // Records dropped for missing/invalid fields
	Duplicates int // Exact duplicates removed
	Output     int // Canonical records produced
}

// DailySalesPoint is one day of aggregated revenue. The aggregated series is
// dense: every calendar day between the first and last observed day has
// exactly one point, with Value 0 for days without transactions.
type DailySalesPoint struct {
	Date  time.Time // Day boundary (UTC midnight)
	Value float64   // Total revenue for the day
}

// ForecastPoint is a single forecasted day. Lower and Upper are populated by
// the seasonal model only; the autoregressive model emits point estimates
// with HasBounds false.
type ForecastPoint struct {
	Date      time.Time // Forecasted day (UTC midnight)
	Value     float64   // Point estimate
	Lower     float64   // Lower uncertainty bound (seasonal model)
	Upper     float64   // Upper uncertainty bound (seasonal model)
	HasBounds bool      // Whether Lower/Upper are meaningful
}

// ForecastOutput holds the two independent forecasts produced per run.
// They are deliberately kept as separate sequences: the two models disagree
// on uncertainty-band semantics, so merging would hide their disagreement.
type ForecastOutput struct {
	Seasonal       []ForecastPoint // Trend + seasonality model, with bounds
	Autoregressive []ForecastPoint // Auto-order SARIMA model, point-only
}

// RFMFeatures holds the recency/frequency/monetary features for one customer.
// Monetary is floored at MonetaryEpsilon so the downstream log transform is
// always defined.
type RFMFeatures struct {
	CustomerID  string  // Customer identifier (unique per run)
	RecencyDays int     // Days between snapshot and most recent transaction
	Frequency   int     // Count of distinct orders
	Monetary    float64 // Total revenue, >= MonetaryEpsilon
}

// SegmentAssignment maps one customer to a cluster index in [0, k).
// Cluster indices carry no intrinsic ranking; consumers wanting an ordering
// should derive it from SegmentProfile.
type SegmentAssignment struct {
	CustomerID string // Customer identifier
	Segment    int    // Cluster index in [0, k)
}

// SegmentProfile describes one cluster by the mean of its members' features.
type SegmentProfile struct {
	Segment      int     // Cluster index
	Customers    int     // Number of customers assigned
	MeanRecency  float64 // Mean recency in days
	MeanFreq     float64 // Mean order frequency
	MeanMonetary float64 // Mean revenue
}

// TopCustomer is one row of the revenue leaderboard persisted for BI use.
type TopCustomer struct {
	CustomerID string  // Customer identifier
	Revenue    float64 // Total revenue across the run's records
}

// SegmentOutput bundles everything the segmentation branch produces.
type SegmentOutput struct {
	Features    []RFMFeatures       // Per-customer RFM features
	Assignments []SegmentAssignment // Per-customer cluster labels
	Profiles    []SegmentProfile    // Per-cluster mean features
	Top         []TopCustomer       // Customers ranked by revenue
}

// RunResult is the outcome of a full pipeline run. The forecast and segment
// branches are independent: either side may carry an error while the other
// carries results.
type RunResult struct {
	Stats       CleanStats        // Cleaner audit counters
	Series      []DailySalesPoint // Aggregated daily revenue
	Forecast    *ForecastOutput   // nil when ForecastErr != nil
	Segments    *SegmentOutput    // nil when SegmentErr != nil
	ForecastErr error             // Failure of the forecasting branch, if any
	SegmentErr  error             // Failure of the segmentation branch, if any
}
