package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// topTableRows caps the leaderboard rows shown in table output. CSV and
// JSON outputs carry the full leaderboard.
const topTableRows = 10

// PrintSegmentResults outputs the segmentation results, dispatching based on the output format configured.
func PrintSegmentResults(out *schema.SegmentOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatter using helper
	fmtFloat := contract.FloatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSegments(out, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSegments(out, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := printSegmentTables(out, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing segment table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSegments handles opening the file and calling the JSON writer.
func printJSONResultsForSegments(out *schema.SegmentOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSegments(w, out)
	}, "Wrote JSON segment results")
}

// printCSVResultsForSegments handles opening the file and calling the CSV writer.
func printCSVResultsForSegments(out *schema.SegmentOutput, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForSegments(w, out, fmtFloat)
	}, "Wrote CSV segment results")
}

// printSegmentTables prints the cluster profiles followed by the revenue
// leaderboard.
func printSegmentTables(out *schema.SegmentOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	profiles := tablewriter.NewWriter(os.Stdout)
	profiles.Header([]string{"Segment", "Customers", "Recency", "Frequency", "Monetary"})
	profiles.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var profileData [][]string
	for _, p := range out.Profiles {
		profileData = append(profileData, []string{
			strconv.Itoa(p.Segment),
			strconv.Itoa(p.Customers),
			fmtFloat(p.MeanRecency),
			fmtFloat(p.MeanFreq),
			fmtFloat(p.MeanMonetary),
		})
	}
	if err := profiles.Bulk(profileData); err != nil {
		return err
	}
	if err := profiles.Render(); err != nil {
		return err
	}

	top := tablewriter.NewWriter(os.Stdout)
	top.Header([]string{"Rank", "Customer", "Revenue"})
	top.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := GetMaxTableIDWidth(cfg)
	var topData [][]string
	for i, c := range out.Top {
		if i >= topTableRows {
			break
		}
		topData = append(topData, []string{
			strconv.Itoa(i + 1),
			truncateID(c.CustomerID, idWidth),
			fmtFloat(c.Revenue),
		})
	}
	if err := top.Bulk(topData); err != nil {
		return err
	}
	if err := top.Render(); err != nil {
		return err
	}

	fmt.Printf("Segmented %d customers into %d clusters in %v\n", len(out.Assignments), len(out.Profiles), duration)
	return nil
}
