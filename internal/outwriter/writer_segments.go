package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/demandlab/demandcast/schema"
)

// customerJSON is the JSON render shape for one segmented customer.
type customerJSON struct {
	CustomerID  string  `json:"customer_id"`
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
	Segment     int     `json:"segment"`
}

// profileJSON is the JSON render shape for one cluster profile.
type profileJSON struct {
	Segment      int     `json:"segment"`
	Customers    int     `json:"customers"`
	MeanRecency  float64 `json:"mean_recency"`
	MeanFreq     float64 `json:"mean_frequency"`
	MeanMonetary float64 `json:"mean_monetary"`
}

// topCustomerJSON is the JSON render shape for one leaderboard row.
type topCustomerJSON struct {
	Rank       int     `json:"rank"`
	CustomerID string  `json:"customer_id"`
	Revenue    float64 `json:"revenue"`
}

// segmentsJSON is the JSON render shape for a full segmentation run.
type segmentsJSON struct {
	Profiles  []profileJSON     `json:"profiles"`
	Customers []customerJSON    `json:"customers"`
	Top       []topCustomerJSON `json:"top_customers"`
}

// writeJSONResultsForSegments marshals the segmentation output to JSON and writes it.
func writeJSONResultsForSegments(w io.Writer, out *schema.SegmentOutput) error {
	rendered := segmentsJSON{
		Profiles:  make([]profileJSON, len(out.Profiles)),
		Customers: make([]customerJSON, len(out.Features)),
		Top:       make([]topCustomerJSON, len(out.Top)),
	}
	for i, p := range out.Profiles {
		rendered.Profiles[i] = profileJSON{
			Segment:      p.Segment,
			Customers:    p.Customers,
			MeanRecency:  p.MeanRecency,
			MeanFreq:     p.MeanFreq,
			MeanMonetary: p.MeanMonetary,
		}
	}
	labels := segmentLabels(out.Assignments)
	for i, f := range out.Features {
		rendered.Customers[i] = customerJSON{
			CustomerID:  f.CustomerID,
			RecencyDays: f.RecencyDays,
			Frequency:   f.Frequency,
			Monetary:    f.Monetary,
			Segment:     labels[f.CustomerID],
		}
	}
	for i, c := range out.Top {
		rendered.Top[i] = topCustomerJSON{
			Rank:       i + 1,
			CustomerID: c.CustomerID,
			Revenue:    c.Revenue,
		}
	}
	return writeJSON(w, rendered)
}

// writeCSVResultsForSegments writes per-customer features and labels to a CSV writer.
func writeCSVResultsForSegments(w io.Writer, out *schema.SegmentOutput, fmtFloat func(float64) string) error {
	header := []string{
		"customer_id",
		"recency_days",
		"frequency",
		"monetary",
		"segment",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		labels := segmentLabels(out.Assignments)
		for _, f := range out.Features {
			row := []string{
				f.CustomerID,
				strconv.Itoa(f.RecencyDays),
				strconv.Itoa(f.Frequency),
				fmtFloat(f.Monetary),
				strconv.Itoa(labels[f.CustomerID]),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// segmentLabels indexes cluster assignments by customer identifier.
func segmentLabels(assignments []schema.SegmentAssignment) map[string]int {
	labels := make(map[string]int, len(assignments))
	for _, a := range assignments {
		labels[a.CustomerID] = a.Segment
	}
	return labels
}
