package valuation

import (
	"sort"
	"time"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// Granularity represents the width of a time bucket
type Granularity string

const (
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
)

// hourlyCutoffDays is the largest range still bucketed per hour.
const hourlyCutoffDays = 7

// GranularityFor picks the bucket width for a lookback window:
// hourly for windows of up to 7 days, daily otherwise.
func GranularityFor(rangeDays int) Granularity {
	if rangeDays <= hourlyCutoffDays {
		return GranularityHour
	}
	return GranularityDay
}

// BucketKey truncates a timestamp to its bucket boundary: top of the hour
// for hourly buckets, midnight UTC for daily buckets.
func BucketKey(ts time.Time, g Granularity) time.Time {
	t := ts.UTC()
	if g == GranularityHour {
		return t.Truncate(time.Hour)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucket groups the ledger records falling into one time window.
// Buckets are ephemeral: built per request and discarded after use.
type Bucket struct {
	Key         time.Time
	Granularity Granularity
	Records     []domain.LedgerRecord
}

// GroupRecords assigns records to buckets and returns the buckets sorted
// ascending by key. Record order within a bucket follows the input order.
// The ascending bucket order is load-bearing: the reconstructor walks the
// result forward while accumulating value deltas.
func GroupRecords(records []domain.LedgerRecord, g Granularity) []Bucket {
	index := make(map[time.Time]int, len(records))
	buckets := make([]Bucket, 0, len(records))

	for _, record := range records {
		key := BucketKey(record.ExecutedAt, g)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key, Granularity: g})
		}
		buckets[i].Records = append(buckets[i].Records, record)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Before(buckets[j].Key)
	})

	return buckets
}
