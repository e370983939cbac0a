package schema

import (
	"fmt"
	"time"
)

// DataIntegrityError indicates that the input contained zero usable records
// after cleaning. A pipeline run cannot proceed without records.
type DataIntegrityError struct {
	Stats CleanStats
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("cleaner: no usable records (input=%d dropped=%d duplicates=%d)",
		e.Stats.Input, e.Stats.Dropped, e.Stats.Duplicates)
}

// InsufficientHistoryError indicates that the aggregated series is too short
// for seasonal decomposition.
type InsufficientHistoryError struct {
	HistoryDays int
	MinDays     int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("seasonal forecast: history=%d days < minimum %d", e.HistoryDays, e.MinDays)
}

// InvalidSnapshotError indicates that the RFM snapshot date precedes a
// customer's most recent transaction, which would produce negative recency.
type InvalidSnapshotError struct {
	CustomerID string
	Snapshot   time.Time
	LastOrder  time.Time
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("rfm: snapshot %s precedes last transaction %s of customer %s",
		e.Snapshot.Format(time.DateOnly), e.LastOrder.Format(time.DateOnly), e.CustomerID)
}

// InsufficientEntitiesError indicates that fewer distinct customers exist
// than the requested number of clusters.
type InsufficientEntitiesError struct {
	Entities int
	Clusters int
}

func (e *InsufficientEntitiesError) Error() string {
	return fmt.Sprintf("segmenter: entities=%d < clusters=%d", e.Entities, e.Clusters)
}

// ModelFitError indicates that a numerical model fit failed to converge.
// It is surfaced rather than retried: refitting a deterministic model on
// identical input cannot produce a different outcome.
type ModelFitError struct {
	Model  ModelName
	Reason string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("%s forecast: model fit failed: %s", e.Model, e.Reason)
}
