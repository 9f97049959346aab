package analyzer

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// HourlySummary describes how call volume is spread across the day.
type HourlySummary struct {
	PeakHour  string  `json:"peak_hour"`
	PeakCalls int     `json:"peak_calls"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"std_dev"`
}

// SummarizeHourly computes descriptive statistics over the 24 hourly counts.
// Ties for the peak go to the earliest hour after midnight.
func SummarizeHourly(hourly map[string]int) (HourlySummary, error) {
	labels := HourLabels()
	data := make(stats.Float64Data, len(labels))
	var summary HourlySummary
	for i, label := range labels {
		n := hourly[label]
		data[i] = float64(n)
		if i == 0 || n > summary.PeakCalls {
			summary.PeakHour = label
			summary.PeakCalls = n
		}
	}

	mean, err := data.Mean()
	if err != nil {
		return HourlySummary{}, fmt.Errorf("hourly mean: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return HourlySummary{}, fmt.Errorf("hourly median: %w", err)
	}
	stdDev, err := data.StandardDeviation()
	if err != nil {
		return HourlySummary{}, fmt.Errorf("hourly std dev: %w", err)
	}

	summary.Mean = Round2(mean)
	summary.Median = Round2(median)
	summary.StdDev = Round2(stdDev)
	return summary, nil
}
