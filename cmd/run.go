package cmd

import (
	"time"

	"github.com/demandlab/demandcast/core"
	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/internal/outwriter"
	"github.com/demandlab/demandcast/internal/sink"
	"github.com/spf13/cobra"
)

// runCmd executes the full pipeline: clean, aggregate, forecast and segment,
// with results printed and persisted to the sink.
var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Run the full pipeline: forecast revenue and segment customers.",
	Long:    `Clean and aggregate the input transactions, then run the forecasting and segmentation branches concurrently. Results are printed in the configured format and persisted to the result sink.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		start := time.Now().UTC()

		raw, err := readInput()
		if err != nil {
			return err
		}

		store, err := sink.NewStore(cfg.SinkBackend, cfg.SinkConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runID, err := store.BeginRun(start, runConfigParams())
		if err != nil {
			contract.LogWarn("could not register pipeline run", err)
		}

		result, err := core.ExecuteRun(rootCtx, cfg, raw)
		if err != nil {
			return err
		}

		if err := store.SaveRunResult(runID, result); err != nil {
			contract.LogWarn("could not persist run results", err)
		}
		if err := store.EndRun(runID, time.Now().UTC(), result.Stats); err != nil {
			contract.LogWarn("could not finalize pipeline run", err)
		}

		return outwriter.NewOutWriter().WriteRun(result, cfg, time.Since(start))
	},
}

// runConfigParams captures the knobs worth auditing per run.
func runConfigParams() map[string]any {
	params := map[string]any{
		"horizon":     cfg.HorizonDays,
		"clusters":    cfg.Clusters,
		"seed":        cfg.Seed,
		"min_history": cfg.MinHistoryDays,
		"confidence":  cfg.Confidence,
	}
	if !cfg.Snapshot.IsZero() {
		params["snapshot"] = cfg.Snapshot.Format(time.DateOnly)
	}
	return params
}
