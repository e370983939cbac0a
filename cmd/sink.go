package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/internal/sink"
	"github.com/demandlab/demandcast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sinkCmd groups operations on the result sink.
var sinkCmd = &cobra.Command{
	Use:   "sink",
	Short: "Inspect and manage the result sink.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// sinkSetup loads minimal configuration needed for sink operations and
// opens the store.
func sinkSetup() (*sink.Store, error) {
	if err := loadConfigFile(); err != nil {
		return nil, err
	}

	backend := schema.DatabaseBackend(viper.GetString("sink-backend"))
	connStr := viper.GetString("sink-connect")

	if err := contract.ValidateConnectionString(backend, connStr); err != nil {
		return nil, err
	}

	cfg.SinkBackend = backend
	cfg.SinkConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return sink.NewStore(backend, connStr)
}

// sinkStatusCmd reports the sink backend state and table sizes.
var sinkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the result sink backend, run count and table sizes.",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := sinkSetup()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			return err
		}

		fmt.Printf("Backend:   %s\n", status.Backend)
		fmt.Printf("Connected: %t\n", status.Connected)
		if !status.Connected {
			return nil
		}
		fmt.Printf("Runs:      %d\n", status.TotalRuns)
		if status.TotalRuns > 0 {
			fmt.Printf("Last run:  %d (%s)\n", status.LastRunID, status.LastRunTime.Format(time.RFC3339))
		}

		tables := make([]string, 0, len(status.TableSizes))
		for table := range status.TableSizes {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
		}
		return nil
	},
}

// sinkExportCmd exports all persisted data to Parquet files.
var sinkExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted pipeline data to Parquet files.",
	Long:  `Export every sink table to a Parquet file next to the --output-file path, for consumption by Spark, DuckDB, pandas and other lakehouse tooling.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := sinkSetup()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		return sink.ExecuteExport(store, cfg.OutputFile)
	},
}

// sinkClearCmd deletes all persisted pipeline data.
var sinkClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all persisted pipeline data from the sink.",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := sinkSetup()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			return err
		}
		contract.LogInfo("Cleared all persisted pipeline data")
		return nil
	},
}

// sinkMigrateCmd runs schema migrations. It deliberately avoids opening the
// store so migrations can run against a fresh database.
var sinkMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run sink schema migrations.",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := loadConfigFile(); err != nil {
			return err
		}

		backend := schema.DatabaseBackend(viper.GetString("sink-backend"))
		connStr := viper.GetString("sink-connect")
		if err := contract.ValidateConnectionString(backend, connStr); err != nil {
			return err
		}

		return sink.Migrate(backend, connStr, viper.GetInt("target-version"))
	},
}
