package service

import (
	"math"
	"time"
)

const (
	trendBuckets    = 8
	trendBucketDays = 4
	growthWindow    = 30 * 24 * time.Hour
)

// AcceptanceRate is approved as a rounded percentage of total, or 0 when
// there are no applications.
func AcceptanceRate(approved, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(approved) / float64(total) * 100))
}

// GrowthPercentage compares two periods, returning 0 when the previous
// period is empty.
func GrowthPercentage(current, previous int64) int {
	if previous <= 0 {
		return 0
	}
	return int(math.Round(float64(current)/float64(previous)*100 - 100))
}

// Bucket is a trend interval [Start, End). The newest bucket ends at now
// and includes it.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// TrendBuckets splits the 32 days up to now into 8 buckets of 4 calendar
// days in loc, oldest first. Each label is the bucket's end date.
func TrendBuckets(now time.Time, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	buckets := make([]Bucket, 0, trendBuckets)
	for i := trendBuckets - 1; i >= 0; i-- {
		start := midnight.AddDate(0, 0, -(i+1)*trendBucketDays)
		end := midnight.AddDate(0, 0, -i*trendBucketDays)
		b := Bucket{Label: end.Format("02 Jan"), Start: start, End: end}
		if i == 0 {
			b.End = local
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// CountInBuckets tallies times per bucket.
func CountInBuckets(buckets []Bucket, times []time.Time) []int64 {
	counts := make([]int64, len(buckets))
	last := len(buckets) - 1
	for _, t := range times {
		for i, b := range buckets {
			if t.Before(b.Start) {
				continue
			}
			if t.Before(b.End) || (i == last && t.Equal(b.End)) {
				counts[i]++
				break
			}
		}
	}
	return counts
}
