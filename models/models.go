package models

import (
	"fmt"
	"time"
)

// SecondsPerDay is the length of a naive wall-clock day.
const SecondsPerDay = 24 * 60 * 60

// CallRecord represents a single parsed call row.
// Only the start timestamp takes part in the analysis.
type CallRecord struct {
	StartTime time.Time
}

// TimeOfDay is a wall-clock time expressed in seconds since midnight (0-86399).
type TimeOfDay int

// Clock builds a TimeOfDay from hours, minutes and seconds.
func Clock(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayOf drops the date part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return Clock(t.Hour(), t.Minute(), t.Second())
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int {
	return int(t) / 3600
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// InRange reports whether t lies in the closed window [start, end].
// When start > end the window wraps past midnight.
func InRange(t, start, end TimeOfDay) bool {
	if start <= end {
		return start <= t && t <= end
	}
	return t >= start || t <= end
}

// TimeWindow is a closed time-of-day interval, possibly wrapping midnight.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	return InRange(t, w.Start, w.End)
}

// Wraps reports whether the window spans midnight.
func (w TimeWindow) Wraps() bool {
	return w.Start > w.End
}

// Duration returns the window length in seconds, treating a wrapping
// window as running through midnight.
func (w TimeWindow) Duration() int {
	return ((int(w.End)-int(w.Start))%SecondsPerDay + SecondsPerDay) % SecondsPerDay
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}

// Shift is a named work period. Shifts may overlap each other.
type Shift struct {
	Name   string
	Window TimeWindow
}

// ResourceBucket is a staffing window with a fixed number of resources.
// The configured buckets tile the day.
type ResourceBucket struct {
	Name      string
	Window    TimeWindow
	Resources int
}

// ResourceCount is the per-bucket output of an analysis.
type ResourceCount struct {
	TotalCalls       int     `json:"total_calls"`
	Resources        int     `json:"resources"`
	CallsPerResource float64 `json:"calls_per_resource"`
}

// Analysis is the complete result of analyzing one call file.
type Analysis struct {
	ShiftCounts         map[string]int           `json:"shift_counts"`
	ResourceCounts      map[string]ResourceCount `json:"resource_counts"`
	NonRepetitiveCounts map[string]float64       `json:"non_repetitive_counts"`
	HourlyCounts        map[string]int           `json:"hourly_counts"`
}
