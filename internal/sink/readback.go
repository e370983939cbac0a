package sink

import (
	"fmt"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// GetStatus returns status information about the result sink.
func (s *Store) GetStatus() (schema.SinkStatus, error) {
	status := schema.SinkStatus{
		Backend:    string(s.backend),
		Connected:  s.Enabled(),
		TableSizes: make(map[string]int64),
	}
	if !s.Enabled() {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(pipelineRunsTable, s.backend))
	if err := s.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1",
			quoteTableName(pipelineRunsTable, s.backend))
		row := s.db.QueryRow(lastRunQuery)

		switch s.backend {
		case schema.SQLiteBackend:
			var startStr string
			if err := row.Scan(&status.LastRunID, &startStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			t, err := time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = t
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}
	}

	for _, table := range []string{pipelineRunsTable, dailySalesTable, forecastsTable, segmentsTable, topCustomersTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		var count int64
		if err := s.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all pipeline runs from the sink.
func (s *Store) GetAllRuns() ([]schema.PipelineRunRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms,
		input_records, clean_records, dropped_records, duplicate_records, config_params
		FROM %s ORDER BY run_id`, quoteTableName(pipelineRunsTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PipelineRunRecord
	for rows.Next() {
		var record schema.PipelineRunRecord

		switch s.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&record.RunID, &startStr, &endStr, &record.RunDurationMs,
				&record.InputRecords, &record.CleanRecords, &record.DroppedRecords,
				&record.DuplicateRecords, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan pipeline run: %w", err)
			}
			record.StartTime, err = time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.InputRecords, &record.CleanRecords, &record.DroppedRecords,
				&record.DuplicateRecords, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan pipeline run: %w", err)
			}
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipeline runs: %w", err)
	}
	return results, nil
}

// GetAllDailySales retrieves every persisted day of every run.
func (s *Store) GetAllDailySales() ([]schema.DailySalesRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, sales_date, revenue, rolling_avg_7d, rolling_sum_30d
		FROM %s ORDER BY run_id, sales_date`, quoteTableName(dailySalesTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DailySalesRecord
	for rows.Next() {
		var record schema.DailySalesRecord
		if err := rows.Scan(&record.RunID, &record.SalesDate, &record.Revenue,
			&record.RollingAvg7d, &record.RollingSum30d); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily sales: %w", err)
	}
	return results, nil
}

// GetAllForecasts retrieves every persisted forecast point of every run.
func (s *Store) GetAllForecasts() ([]schema.ForecastRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, model_name, forecast_date, revenue, lower_bound, upper_bound
		FROM %s ORDER BY run_id, model_name, forecast_date`, quoteTableName(forecastsTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ForecastRecord
	for rows.Next() {
		var record schema.ForecastRecord
		if err := rows.Scan(&record.RunID, &record.ModelName, &record.ForecastDate,
			&record.Revenue, &record.LowerBound, &record.UpperBound); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecasts: %w", err)
	}
	return results, nil
}

// GetAllSegments retrieves every persisted customer segment row of every run.
func (s *Store) GetAllSegments() ([]schema.SegmentRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, customer_id, recency_days, frequency, monetary, segment
		FROM %s ORDER BY run_id, customer_id`, quoteTableName(segmentsTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SegmentRecord
	for rows.Next() {
		var record schema.SegmentRecord
		if err := rows.Scan(&record.RunID, &record.CustomerID, &record.RecencyDays,
			&record.Frequency, &record.Monetary, &record.Segment); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}
	return results, nil
}

// GetAllTopCustomers retrieves every persisted leaderboard row of every run.
func (s *Store) GetAllTopCustomers() ([]schema.TopCustomerRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, revenue_rank, customer_id, revenue
		FROM %s ORDER BY run_id, revenue_rank`, quoteTableName(topCustomersTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.TopCustomerRecord
	for rows.Next() {
		var record schema.TopCustomerRecord
		if err := rows.Scan(&record.RunID, &record.RevenueRank, &record.CustomerID, &record.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top customer: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top customers: %w", err)
	}
	return results, nil
}
