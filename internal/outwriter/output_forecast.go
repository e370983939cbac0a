package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintForecastResults outputs the forecast results, dispatching based on the output format configured.
func PrintForecastResults(out *schema.ForecastOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatter using helper
	fmtFloat := contract.FloatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForForecast(out, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForForecast(out, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printForecastTable(out, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing forecast table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForForecast handles opening the file and calling the JSON writer.
func printJSONResultsForForecast(out *schema.ForecastOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForForecast(w, out)
	}, "Wrote JSON forecast results")
}

// printCSVResultsForForecast handles opening the file and calling the CSV writer.
func printCSVResultsForForecast(out *schema.ForecastOutput, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForForecast(w, out, fmtFloat)
	}, "Wrote CSV forecast results")
}

// printForecastTable prints both model forecasts in a five-column table.
func printForecastTable(out *schema.ForecastOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Date", "Model", "Revenue", "Lower", "Upper"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	modelLabel := func(name schema.ModelName) string { return string(name) }
	if cfg.UseColors {
		cyan := color.New(color.FgCyan).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		modelLabel = func(name schema.ModelName) string {
			if name == schema.SeasonalModel {
				return cyan(string(name))
			}
			return magenta(string(name))
		}
	}

	var data [][]string
	appendRows := func(name schema.ModelName, points []schema.ForecastPoint) {
		for _, p := range points {
			lower, upper := "-", "-"
			if p.HasBounds {
				lower = fmtFloat(p.Lower)
				upper = fmtFloat(p.Upper)
			}
			data = append(data, []string{
				p.Date.Format(time.DateOnly),
				modelLabel(name),
				fmtFloat(p.Value),
				lower,
				upper,
			})
		}
	}
	appendRows(schema.SeasonalModel, out.Seasonal)
	appendRows(schema.AutoregressiveModel, out.Autoregressive)

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Forecasted %d days per model in %v\n", len(out.Seasonal), duration)
	return nil
}
