package analyzer

import (
	"call-analysis/errors"
	"call-analysis/models"
	"fmt"
	"slices"
)

// Shift windows. Shift 4 runs through midnight.
var shifts = []models.Shift{
	{Name: "Shift 1", Window: models.TimeWindow{Start: models.Clock(5, 0, 0), End: models.Clock(14, 0, 0)}},
	{Name: "Shift 2", Window: models.TimeWindow{Start: models.Clock(9, 0, 0), End: models.Clock(18, 0, 0)}},
	{Name: "Shift 3", Window: models.TimeWindow{Start: models.Clock(11, 0, 0), End: models.Clock(20, 0, 0)}},
	{Name: "Shift 4", Window: models.TimeWindow{Start: models.Clock(18, 0, 0), End: models.Clock(5, 0, 0)}},
}

// Staffing buckets, listed in day order. They must tile the day.
var resourceBuckets = []models.ResourceBucket{
	{Name: "5 AM - 9 AM", Window: models.TimeWindow{Start: models.Clock(5, 0, 0), End: models.Clock(9, 0, 0)}, Resources: 1},
	{Name: "9 AM - 11 AM", Window: models.TimeWindow{Start: models.Clock(9, 0, 0), End: models.Clock(11, 0, 0)}, Resources: 2},
	{Name: "11 AM - 2 PM", Window: models.TimeWindow{Start: models.Clock(11, 0, 0), End: models.Clock(14, 0, 0)}, Resources: 3},
	{Name: "2 PM - 6 PM", Window: models.TimeWindow{Start: models.Clock(14, 0, 0), End: models.Clock(18, 0, 0)}, Resources: 2},
	{Name: "6 PM - 8 PM", Window: models.TimeWindow{Start: models.Clock(18, 0, 0), End: models.Clock(20, 0, 0)}, Resources: 2},
	{Name: "8 PM - 5 AM", Window: models.TimeWindow{Start: models.Clock(20, 0, 0), End: models.Clock(5, 0, 0)}, Resources: 1},
}

// overlapMap lists, per bucket, the shifts whose window fully contains it.
var overlapMap = map[string][]string{
	"5 AM - 9 AM":  {"Shift 1"},
	"9 AM - 11 AM": {"Shift 1", "Shift 2"},
	"11 AM - 2 PM": {"Shift 1", "Shift 2", "Shift 3"},
	"2 PM - 6 PM":  {"Shift 2", "Shift 3"},
	"6 PM - 8 PM":  {"Shift 3", "Shift 4"},
	"8 PM - 5 AM":  {"Shift 4"},
}

// bucketShifts is overlapMap resolved to shift indexes, in bucket order.
var bucketShifts [][]int

func init() {
	if err := ValidateTables(shifts, resourceBuckets, overlapMap); err != nil {
		panic(err)
	}
	bucketShifts = make([][]int, len(resourceBuckets))
	for i, b := range resourceBuckets {
		for _, name := range overlapMap[b.Name] {
			bucketShifts[i] = append(bucketShifts[i], slices.IndexFunc(shifts, func(s models.Shift) bool {
				return s.Name == name
			}))
		}
	}
}

// Shifts returns a copy of the configured shifts.
func Shifts() []models.Shift {
	return slices.Clone(shifts)
}

// ResourceBuckets returns a copy of the configured staffing buckets in day order.
func ResourceBuckets() []models.ResourceBucket {
	return slices.Clone(resourceBuckets)
}

// OverlappingShifts returns the shift names covering the named bucket.
func OverlappingShifts(bucket string) []string {
	return slices.Clone(overlapMap[bucket])
}

// ValidateTables checks that the buckets tile the day with no gap or overlap
// and that the overlap map names exactly the shifts containing each bucket.
func ValidateTables(shifts []models.Shift, buckets []models.ResourceBucket, overlap map[string][]string) error {
	if len(shifts) == 0 || len(buckets) == 0 {
		return fmt.Errorf("%w: no shifts or buckets configured", errors.ErrInvalidConfiguration)
	}

	shiftByName := make(map[string]models.Shift, len(shifts))
	for _, s := range shifts {
		if _, dup := shiftByName[s.Name]; dup {
			return fmt.Errorf("%w: duplicate shift %q", errors.ErrInvalidConfiguration, s.Name)
		}
		shiftByName[s.Name] = s
	}

	covered := 0
	for i, b := range buckets {
		if b.Resources < 0 {
			return fmt.Errorf("%w: bucket %q has negative resources", errors.ErrInvalidConfiguration, b.Name)
		}
		next := buckets[(i+1)%len(buckets)]
		if b.Window.End != next.Window.Start {
			return fmt.Errorf("%w: bucket %q ends at %s but %q starts at %s",
				errors.ErrInvalidConfiguration, b.Name, b.Window.End, next.Name, next.Window.Start)
		}
		covered += b.Window.Duration()
	}
	if covered != models.SecondsPerDay {
		return fmt.Errorf("%w: buckets cover %ds of a %ds day", errors.ErrInvalidConfiguration, covered, models.SecondsPerDay)
	}

	if len(overlap) != len(buckets) {
		return fmt.Errorf("%w: overlap map has %d entries for %d buckets",
			errors.ErrInvalidConfiguration, len(overlap), len(buckets))
	}
	for _, b := range buckets {
		names, ok := overlap[b.Name]
		if !ok || len(names) == 0 {
			return fmt.Errorf("%w: bucket %q maps to no shift", errors.ErrInvalidConfiguration, b.Name)
		}
		listed := make(map[string]bool, len(names))
		for _, name := range names {
			s, ok := shiftByName[name]
			if !ok {
				return fmt.Errorf("%w: bucket %q maps to unknown shift %q", errors.ErrInvalidConfiguration, b.Name, name)
			}
			if !covers(s.Window, b.Window) {
				return fmt.Errorf("%w: shift %q does not contain bucket %q", errors.ErrInvalidConfiguration, name, b.Name)
			}
			listed[name] = true
		}
		for _, s := range shifts {
			if covers(s.Window, b.Window) && !listed[s.Name] {
				return fmt.Errorf("%w: shift %q contains bucket %q but is not mapped to it",
					errors.ErrInvalidConfiguration, s.Name, b.Name)
			}
		}
	}

	return nil
}

// covers reports whether outer fully contains inner, both read as circular windows.
func covers(outer, inner models.TimeWindow) bool {
	offset := models.TimeWindow{Start: outer.Start, End: inner.Start}.Duration()
	return offset+inner.Duration() <= outer.Duration()
}
