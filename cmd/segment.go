package cmd

import (
	"time"

	"github.com/demandlab/demandcast/core"
	"github.com/demandlab/demandcast/internal/outwriter"
	"github.com/spf13/cobra"
)

// segmentCmd runs the segmentation branch only.
var segmentCmd = &cobra.Command{
	Use:     "segment",
	Short:   "Cluster customers into segments from RFM features.",
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		start := time.Now().UTC()

		raw, err := readInput()
		if err != nil {
			return err
		}

		segments, err := core.ExecuteSegment(rootCtx, cfg, raw)
		if err != nil {
			return err
		}

		return outwriter.NewOutWriter().WriteSegments(segments, cfg, time.Since(start))
	},
}
