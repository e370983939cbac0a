package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// DefaultDBFilePath returns the path to the SQLite DB file for result storage.
func DefaultDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".demandcast.db"
	}
	return filepath.Join(homeDir, ".demandcast.db")
}

// BeginRun registers a new pipeline run and returns its ID. Run IDs are
// millisecond start timestamps, which keeps them unique per host and
// sortable without backend-specific autoincrement.
func (s *Store) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	runID := startTime.UnixMilli()
	query := fmt.Sprintf(`INSERT INTO %s (run_id, start_time, config_params) VALUES (%s)`,
		quoteTableName(pipelineRunsTable, s.backend), s.placeholders(3))

	if _, err := s.db.Exec(query, runID, formatTime(startTime, s.backend), string(configJSON)); err != nil {
		return 0, fmt.Errorf("failed to insert pipeline run: %w", err)
	}
	return runID, nil
}

// EndRun updates a run with completion data and the cleaner counters.
func (s *Store) EndRun(runID int64, endTime time.Time, stats schema.CleanStats) error {
	if !s.Enabled() || runID == 0 {
		return nil
	}

	durationMs := endTime.UnixMilli() - runID
	query := fmt.Sprintf(`UPDATE %s
		SET end_time = %s, run_duration_ms = %s, input_records = %s,
		    clean_records = %s, dropped_records = %s, duplicate_records = %s
		WHERE run_id = %s`,
		quoteTableName(pipelineRunsTable, s.backend),
		s.placeholder(1), s.placeholder(2), s.placeholder(3),
		s.placeholder(4), s.placeholder(5), s.placeholder(6), s.placeholder(7))

	_, err := s.db.Exec(query, formatTime(endTime, s.backend), durationMs,
		stats.Input, stats.Output, stats.Dropped, stats.Duplicates, runID)
	if err != nil {
		return fmt.Errorf("failed to update pipeline run: %w", err)
	}
	return nil
}

// SaveDailySales persists the aggregated series together with its rolling
// KPI columns.
func (s *Store) SaveDailySales(runID int64, series []schema.DailySalesPoint) error {
	if !s.Enabled() {
		return nil
	}

	avg7 := RollingAverage(series, 7)
	sum30 := RollingSum(series, 30)

	query := fmt.Sprintf(`INSERT INTO %s (run_id, sales_date, revenue, rolling_avg_7d, rolling_sum_30d) VALUES (%s)`,
		quoteTableName(dailySalesTable, s.backend), s.placeholders(5))

	for i, p := range series {
		date := p.Date.Format(time.DateOnly)
		if _, err := s.db.Exec(query, runID, date, p.Value, avg7[i], sum30[i]); err != nil {
			return fmt.Errorf("failed to insert daily sales for %s: %w", date, err)
		}
	}
	return nil
}

// SaveForecast persists one model's forecast points. Bounds are stored as
// NULL for points without them.
func (s *Store) SaveForecast(runID int64, model schema.ModelName, points []schema.ForecastPoint) error {
	if !s.Enabled() {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, model_name, forecast_date, revenue, lower_bound, upper_bound) VALUES (%s)`,
		quoteTableName(forecastsTable, s.backend), s.placeholders(6))

	for _, p := range points {
		var lower, upper sql.NullFloat64
		if p.HasBounds {
			lower = sql.NullFloat64{Float64: p.Lower, Valid: true}
			upper = sql.NullFloat64{Float64: p.Upper, Valid: true}
		}
		date := p.Date.Format(time.DateOnly)
		if _, err := s.db.Exec(query, runID, string(model), date, p.Value, lower, upper); err != nil {
			return fmt.Errorf("failed to insert %s forecast for %s: %w", model, date, err)
		}
	}
	return nil
}

// SaveSegments persists per-customer RFM features and segment labels.
func (s *Store) SaveSegments(runID int64, out *schema.SegmentOutput) error {
	if !s.Enabled() || out == nil {
		return nil
	}

	labels := make(map[string]int, len(out.Assignments))
	for _, a := range out.Assignments {
		labels[a.CustomerID] = a.Segment
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, customer_id, recency_days, frequency, monetary, segment) VALUES (%s)`,
		quoteTableName(segmentsTable, s.backend), s.placeholders(6))

	for _, f := range out.Features {
		if _, err := s.db.Exec(query, runID, f.CustomerID, f.RecencyDays, f.Frequency, f.Monetary, labels[f.CustomerID]); err != nil {
			return fmt.Errorf("failed to insert segment row for customer %s: %w", f.CustomerID, err)
		}
	}

	return s.saveTopCustomers(runID, out.Top)
}

// saveTopCustomers persists the revenue leaderboard, ranked from 1.
func (s *Store) saveTopCustomers(runID int64, top []schema.TopCustomer) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, revenue_rank, customer_id, revenue) VALUES (%s)`,
		quoteTableName(topCustomersTable, s.backend), s.placeholders(4))

	for i, t := range top {
		if _, err := s.db.Exec(query, runID, i+1, t.CustomerID, t.Revenue); err != nil {
			return fmt.Errorf("failed to insert top customer %s: %w", t.CustomerID, err)
		}
	}
	return nil
}

// SaveRunResult persists everything a pipeline run produced. Branches that
// failed are simply absent from the result and skipped here.
func (s *Store) SaveRunResult(runID int64, result *schema.RunResult) error {
	if !s.Enabled() {
		return nil
	}

	if err := s.SaveDailySales(runID, result.Series); err != nil {
		return err
	}
	if result.Forecast != nil {
		if err := s.SaveForecast(runID, schema.SeasonalModel, result.Forecast.Seasonal); err != nil {
			return err
		}
		if err := s.SaveForecast(runID, schema.AutoregressiveModel, result.Forecast.Autoregressive); err != nil {
			return err
		}
	}
	return s.SaveSegments(runID, result.Segments)
}

// Clear removes all persisted pipeline data while keeping the tables.
func (s *Store) Clear() error {
	if !s.Enabled() {
		return nil
	}

	tables := []string{topCustomersTable, segmentsTable, forecastsTable, dailySalesTable, pipelineRunsTable}
	for _, table := range tables {
		query := fmt.Sprintf(`DELETE FROM %s`, quoteTableName(table, s.backend))
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// placeholder returns the parameter placeholder for position n (1-based).
func (s *Store) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns a comma-joined placeholder list for n parameters.
func (s *Store) placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += s.placeholder(i)
	}
	return out
}
