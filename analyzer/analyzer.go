package analyzer

import (
	"call-analysis/metrics"
	"call-analysis/models"
	"call-analysis/parser"
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

// Analyze aggregates the records into shift, resource, non-repetitive and
// hourly tables. Every record is visited once; shift counts come from the
// shift windows directly and everything else from the bucket tally.
func Analyze(records []models.CallRecord) *models.Analysis {
	shiftTally := make([]int, len(shifts))
	bucketTally := make([]int, len(resourceBuckets))
	var hourTally [24]int

	for _, rec := range records {
		t := models.TimeOfDayOf(rec.StartTime)
		for i, s := range shifts {
			if s.Window.Contains(t) {
				shiftTally[i]++
			}
		}
		bucketTally[bucketIndex(t)]++
		hourTally[t.Hour()]++
	}

	result := &models.Analysis{
		ShiftCounts:         make(map[string]int, len(shifts)),
		ResourceCounts:      make(map[string]models.ResourceCount, len(resourceBuckets)),
		NonRepetitiveCounts: make(map[string]float64, len(shifts)),
		HourlyCounts:        make(map[string]int, 24),
	}

	for i, s := range shifts {
		result.ShiftCounts[s.Name] = shiftTally[i]
	}

	bucketCounts := make(map[string]int, len(resourceBuckets))
	for i, b := range resourceBuckets {
		bucketCounts[b.Name] = bucketTally[i]
		result.ResourceCounts[b.Name] = models.ResourceCount{
			TotalCalls:       bucketTally[i],
			Resources:        b.Resources,
			CallsPerResource: CallsPerResource(bucketTally[i], b.Resources),
		}
	}

	for name, share := range Redistribute(bucketCounts) {
		result.NonRepetitiveCounts[name] = Round2(share)
	}

	for h, n := range hourTally {
		result.HourlyCounts[HourLabel(h)] = n
	}

	return result
}

// AnalyzeReader parses CSV input and analyzes it. Either the whole input is
// valid and a result is returned, or an error is returned and nothing else.
func AnalyzeReader(r io.Reader) (*models.Analysis, error) {
	records, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	start := time.Now()
	result := Analyze(records)
	metrics.AnalyzerDurationSeconds.Observe(time.Since(start).Seconds())
	publish(result)

	return result, nil
}

// Redistribute splits each bucket's calls evenly across the shifts covering
// it and returns the unrounded share per shift. Buckets missing from
// bucketCounts contribute nothing.
func Redistribute(bucketCounts map[string]int) map[string]float64 {
	shares := make(map[string]float64, len(shifts))
	for _, s := range shifts {
		shares[s.Name] = 0
	}
	for i, b := range resourceBuckets {
		covering := bucketShifts[i]
		perShift := float64(bucketCounts[b.Name]) / float64(len(covering))
		for _, si := range covering {
			shares[shifts[si].Name] += perShift
		}
	}
	return shares
}

// CallsPerResource returns total/resources rounded to two decimals,
// or 0 when there are no resources.
func CallsPerResource(total, resources int) float64 {
	if resources <= 0 {
		return 0
	}
	return Round2(float64(total) / float64(resources))
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HourLabel converts an hour (0-23) to its 12-hour clock label, e.g. 0 -> "12 AM", 13 -> "1 PM".
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}

// HourLabels returns the 24 hour labels in clock order starting at midnight.
func HourLabels() []string {
	labels := make([]string, 24)
	for h := range 24 {
		labels[h] = HourLabel(h)
	}
	return labels
}

// bucketIndex returns the single bucket a time of day is tallied in.
// Adjacent buckets share their boundary instant; it goes to the bucket
// covered by more shifts, and on a tie to the bucket opening at that instant.
func bucketIndex(t models.TimeOfDay) int {
	best := -1
	for i, b := range resourceBuckets {
		if !b.Window.Contains(t) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		switch {
		case len(bucketShifts[i]) > len(bucketShifts[best]):
			best = i
		case len(bucketShifts[i]) == len(bucketShifts[best]) && b.Window.Start == t:
			best = i
		}
	}
	return best
}

// BucketFor returns the name of the staffing bucket a time of day is tallied in.
func BucketFor(t models.TimeOfDay) string {
	return resourceBuckets[bucketIndex(t)].Name
}

// publishMu keeps the per-run gauges describing a single analysis when
// several analyses finish at once.
var publishMu sync.Mutex

func publish(result *models.Analysis) {
	publishMu.Lock()
	defer publishMu.Unlock()

	metrics.ResetAnalysisGauges()
	for name, n := range result.ShiftCounts {
		metrics.CallsByShift.WithLabelValues(name).Set(float64(n))
	}
	for name, share := range result.NonRepetitiveCounts {
		metrics.NonRepetitiveCallsByShift.WithLabelValues(name).Set(share)
	}
	for name, rc := range result.ResourceCounts {
		metrics.CallsPerResource.WithLabelValues(name).Set(rc.CallsPerResource)
	}
	metrics.AnalyzerRunsTotal.Inc()
}
