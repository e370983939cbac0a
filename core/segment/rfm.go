// Package segment derives per-customer RFM features from cleaned
// transactions and groups customers into behavioral segments with k-means
// clustering. All randomness is driven by an explicit seed, so identical
// input and seed always produce identical segments.
package segment

import (
	"sort"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// BuildFeatures computes recency, frequency and monetary features per
// customer. A zero snapshot defaults to one day after the latest transaction,
// which keeps the minimum recency at one day. An explicit snapshot earlier
// than a customer's last transaction is rejected, never clamped.
func BuildFeatures(records []schema.TransactionRecord, snapshot time.Time) ([]schema.RFMFeatures, error) {
	if len(records) == 0 {
		return nil, nil
	}

	type accum struct {
		lastOrder time.Time
		orders    map[string]struct{}
		monetary  float64
	}

	byCustomer := make(map[string]*accum)
	maxTime := records[0].Timestamp
	for _, r := range records {
		if r.Timestamp.After(maxTime) {
			maxTime = r.Timestamp
		}
		a, ok := byCustomer[r.CustomerID]
		if !ok {
			a = &accum{orders: make(map[string]struct{})}
			byCustomer[r.CustomerID] = a
		}
		if r.Timestamp.After(a.lastOrder) {
			a.lastOrder = r.Timestamp
		}
		a.orders[r.OrderID] = struct{}{}
		total, _ := r.LineTotal.Float64()
		a.monetary += total
	}

	if snapshot.IsZero() {
		snapshot = schema.TruncateToDay(maxTime).AddDate(0, 0, 1)
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	features := make([]schema.RFMFeatures, 0, len(ids))
	for _, id := range ids {
		a := byCustomer[id]
		if a.lastOrder.After(snapshot) {
			return nil, &schema.InvalidSnapshotError{
				CustomerID: id,
				Snapshot:   snapshot,
				LastOrder:  a.lastOrder,
			}
		}
		monetary := a.monetary
		if monetary < schema.MonetaryEpsilon {
			monetary = schema.MonetaryEpsilon
		}
		features = append(features, schema.RFMFeatures{
			CustomerID:  id,
			RecencyDays: schema.DaysBetween(a.lastOrder, snapshot),
			Frequency:   len(a.orders),
			Monetary:    monetary,
		})
	}
	return features, nil
}

// TopCustomers ranks customers by revenue, descending, capped at limit.
// Ties break on customer ID so the leaderboard is stable across runs.
func TopCustomers(features []schema.RFMFeatures, limit int) []schema.TopCustomer {
	ranked := make([]schema.TopCustomer, len(features))
	for i, f := range features {
		ranked[i] = schema.TopCustomer{CustomerID: f.CustomerID, Revenue: f.Monetary}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
