package cmd

import (
	"time"

	"github.com/demandlab/demandcast/core"
	"github.com/demandlab/demandcast/internal/outwriter"
	"github.com/spf13/cobra"
)

// forecastCmd runs the forecasting branch only.
var forecastCmd = &cobra.Command{
	Use:     "forecast",
	Short:   "Forecast daily revenue with the seasonal and autoregressive models.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		start := time.Now().UTC()

		raw, err := readInput()
		if err != nil {
			return err
		}

		_, forecast, err := core.ExecuteForecast(rootCtx, cfg, raw)
		if err != nil {
			return err
		}

		return outwriter.NewOutWriter().WriteForecast(forecast, cfg, time.Since(start))
	},
}
