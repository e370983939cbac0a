package outwriter

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// forecastPointJSON is the JSON render shape for one forecasted day.
type forecastPointJSON struct {
	Date    string   `json:"date"`
	Revenue float64  `json:"revenue"`
	Lower   *float64 `json:"lower,omitempty"`
	Upper   *float64 `json:"upper,omitempty"`
}

// forecastJSON is the JSON render shape for a full forecast run.
type forecastJSON struct {
	Seasonal       []forecastPointJSON `json:"seasonal"`
	Autoregressive []forecastPointJSON `json:"autoregressive"`
}

// toForecastPointsJSON converts forecast points to their render shape.
func toForecastPointsJSON(points []schema.ForecastPoint) []forecastPointJSON {
	rendered := make([]forecastPointJSON, len(points))
	for i, p := range points {
		rendered[i] = forecastPointJSON{
			Date:    p.Date.Format(time.DateOnly),
			Revenue: p.Value,
		}
		if p.HasBounds {
			lower, upper := p.Lower, p.Upper
			rendered[i].Lower = &lower
			rendered[i].Upper = &upper
		}
	}
	return rendered
}

// writeJSONResultsForForecast marshals the forecast output to JSON and writes it.
func writeJSONResultsForForecast(w io.Writer, out *schema.ForecastOutput) error {
	return writeJSON(w, forecastJSON{
		Seasonal:       toForecastPointsJSON(out.Seasonal),
		Autoregressive: toForecastPointsJSON(out.Autoregressive),
	})
}

// writeCSVResultsForForecast writes both model forecasts to a CSV writer.
func writeCSVResultsForForecast(w io.Writer, out *schema.ForecastOutput, fmtFloat func(float64) string) error {
	header := []string{
		"model",
		"date",
		"revenue",
		"lower",
		"upper",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		writeRows := func(name schema.ModelName, points []schema.ForecastPoint) error {
			for _, p := range points {
				lower, upper := "", ""
				if p.HasBounds {
					lower = fmtFloat(p.Lower)
					upper = fmtFloat(p.Upper)
				}
				row := []string{
					string(name),
					p.Date.Format(time.DateOnly),
					fmtFloat(p.Value),
					lower,
					upper,
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		}
		if err := writeRows(schema.SeasonalModel, out.Seasonal); err != nil {
			return err
		}
		return writeRows(schema.AutoregressiveModel, out.Autoregressive)
	})
}
