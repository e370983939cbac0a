// Package cmd defines the command-line interface for demandcast.
package cmd

import (
	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(sinkCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the sink subcommands to the parent sink command
	sinkCmd.AddCommand(sinkStatusCmd)
	sinkCmd.AddCommand(sinkExportCmd)
	sinkCmd.AddCommand(sinkClearCmd)
	sinkCmd.AddCommand(sinkMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the transactions CSV file")
	rootCmd.PersistentFlags().String("ingest-query", "", "SQL query to ingest transactions from the sink backend instead of a CSV")
	rootCmd.PersistentFlags().String("snapshot", "", "RFM reference date in YYYY-MM-DD form (default: day after last transaction)")
	rootCmd.PersistentFlags().Int("horizon", schema.DefaultHorizonDays, "Forecast length in days")
	rootCmd.PersistentFlags().IntP("clusters", "k", schema.DefaultClusters, "Number of customer segments")
	rootCmd.PersistentFlags().Int64("seed", schema.DefaultSeed, "Clustering seed for reproducible segments")
	rootCmd.PersistentFlags().Int("min-history", schema.DefaultMinHistoryDays, "Minimum series span in days for the seasonal model")
	rootCmd.PersistentFlags().Float64("confidence", schema.DefaultConfidence, "Coverage of the seasonal model's uncertainty bounds")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("sink-backend", string(schema.SQLiteBackend), "Result sink backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("sink-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of sinkMigrateCmd to Viper
	sinkMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(sinkMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sink migrate flags", err)
	}
}
