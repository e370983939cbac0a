package segment

import (
	"time"

	"github.com/demandlab/demandcast/schema"
)

// Segmenter configures the clustering step of the segmentation branch.
type Segmenter struct {
	Clusters int   // Number of segments (k)
	Seed     int64 // Seed for centroid initialization
}

// NewSegmenter creates a Segmenter with the given cluster count and seed.
func NewSegmenter(clusters int, seed int64) *Segmenter {
	return &Segmenter{Clusters: clusters, Seed: seed}
}

// Run computes RFM features from the records and clusters the customers.
// Fewer distinct customers than clusters is an error rather than a silently
// reduced k.
func (s *Segmenter) Run(records []schema.TransactionRecord, snapshot time.Time) (*schema.SegmentOutput, error) {
	features, err := BuildFeatures(records, snapshot)
	if err != nil {
		return nil, err
	}
	if len(features) < s.Clusters {
		return nil, &schema.InsufficientEntitiesError{Entities: len(features), Clusters: s.Clusters}
	}

	matrix := featureMatrix(features)
	labels := kMeans(matrix, s.Clusters, s.Seed)

	assignments := make([]schema.SegmentAssignment, len(features))
	for i, f := range features {
		assignments[i] = schema.SegmentAssignment{CustomerID: f.CustomerID, Segment: labels[i]}
	}

	return &schema.SegmentOutput{
		Features:    features,
		Assignments: assignments,
		Profiles:    profile(features, labels, s.Clusters),
		Top:         TopCustomers(features, schema.TopCustomerLimit),
	}, nil
}

// profile summarizes each cluster by the mean of its members' raw features.
// Empty clusters are reported with zero members so consumers see the full
// [0, k) index range.
func profile(features []schema.RFMFeatures, labels []int, k int) []schema.SegmentProfile {
	profiles := make([]schema.SegmentProfile, k)
	for c := range profiles {
		profiles[c].Segment = c
	}

	for i, f := range features {
		p := &profiles[labels[i]]
		p.Customers++
		p.MeanRecency += float64(f.RecencyDays)
		p.MeanFreq += float64(f.Frequency)
		p.MeanMonetary += f.Monetary
	}

	for c := range profiles {
		if n := float64(profiles[c].Customers); n > 0 {
			profiles[c].MeanRecency /= n
			profiles[c].MeanFreq /= n
			profiles[c].MeanMonetary /= n
		}
	}
	return profiles
}
