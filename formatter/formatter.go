package formatter

import (
	"call-analysis/analyzer"
	"call-analysis/models"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnalysisData holds an analysis laid out in canonical table order for all formatters
type AnalysisData struct {
	Shifts    []ShiftRow
	Resources []ResourceRow
	Hours     []HourRow
	Summary   *analyzer.HourlySummary
}

// ShiftRow pairs raw and de-duplicated counts for one shift
type ShiftRow struct {
	Name          string
	Calls         int
	NonRepetitive float64
}

// ResourceRow is one staffing bucket
type ResourceRow struct {
	Name string
	models.ResourceCount
}

// HourRow is one hour label and its call count
type HourRow struct {
	Label string
	Calls int
}

// prepareAnalysisData orders the result maps by the configured tables
func prepareAnalysisData(result *models.Analysis) *AnalysisData {
	data := &AnalysisData{}

	for _, s := range analyzer.Shifts() {
		data.Shifts = append(data.Shifts, ShiftRow{
			Name:          s.Name,
			Calls:         result.ShiftCounts[s.Name],
			NonRepetitive: result.NonRepetitiveCounts[s.Name],
		})
	}

	for _, b := range analyzer.ResourceBuckets() {
		data.Resources = append(data.Resources, ResourceRow{
			Name:          b.Name,
			ResourceCount: result.ResourceCounts[b.Name],
		})
	}

	for _, label := range analyzer.HourLabels() {
		data.Hours = append(data.Hours, HourRow{Label: label, Calls: result.HourlyCounts[label]})
	}

	if summary, err := analyzer.SummarizeHourly(result.HourlyCounts); err == nil {
		data.Summary = &summary
	}

	return data
}

// FormatText returns the text representation of the analysis
func FormatText(result *models.Analysis) string {
	data := prepareAnalysisData(result)
	var sb strings.Builder

	sb.WriteString("Shift counts:\n")
	for _, s := range data.Shifts {
		sb.WriteString(fmt.Sprintf("  %-8s calls=%d non_repetitive=%s\n", s.Name, s.Calls, formatFloat(s.NonRepetitive)))
	}

	sb.WriteString("\nResource distribution:\n")
	for _, r := range data.Resources {
		sb.WriteString(fmt.Sprintf("  %-13s calls=%d resources=%d calls_per_resource=%s\n",
			r.Name, r.TotalCalls, r.Resources, formatFloat(r.CallsPerResource)))
	}

	sb.WriteString("\nHourly counts:\n")
	for _, h := range data.Hours {
		sb.WriteString(fmt.Sprintf("  %5s : %d\n", h.Label, h.Calls))
	}

	if data.Summary != nil {
		sb.WriteString(fmt.Sprintf("\nPeak hour: %s (%d calls) ; mean=%s median=%s stddev=%s\n",
			data.Summary.PeakHour, data.Summary.PeakCalls,
			formatFloat(data.Summary.Mean), formatFloat(data.Summary.Median), formatFloat(data.Summary.StdDev)))
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the analysis
func FormatJSON(result *models.Analysis) string {
	jsonBytes, _ := json.MarshalIndent(result, "", "  ")
	return string(jsonBytes)
}

// FormatJSONFiles returns one JSON object mapping each input to its analysis.
func FormatJSONFiles(results map[string]*models.Analysis) string {
	jsonBytes, _ := json.MarshalIndent(results, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the analysis
func FormatCSV(result *models.Analysis) string {
	data := prepareAnalysisData(result)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Section", "Key", "Value", "Resources", "Calls Per Resource"})

	for _, s := range data.Shifts {
		writer.Write([]string{"shift_counts", s.Name, strconv.Itoa(s.Calls), "", ""})
	}
	for _, r := range data.Resources {
		writer.Write([]string{
			"resource_counts", r.Name, strconv.Itoa(r.TotalCalls),
			strconv.Itoa(r.Resources), formatFloat(r.CallsPerResource),
		})
	}
	for _, s := range data.Shifts {
		writer.Write([]string{"non_repetitive_counts", s.Name, formatFloat(s.NonRepetitive), "", ""})
	}
	for _, h := range data.Hours {
		writer.Write([]string{"hourly_counts", h.Label, strconv.Itoa(h.Calls), "", ""})
	}

	writer.Flush()
	return sb.String()
}

// formatFloat prints at most two decimals without trailing zeros
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
