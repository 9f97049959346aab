package analyzer_test

import (
	"call-analysis/analyzer"
	customerrors "call-analysis/errors"
	"call-analysis/metrics"
	"call-analysis/models"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInRange(t *testing.T) {
	tests := map[string]struct {
		t, start, end models.TimeOfDay
		expected      bool
	}{
		"SameDay_Inside":        {models.Clock(10, 0, 0), models.Clock(9, 0, 0), models.Clock(18, 0, 0), true},
		"SameDay_StartBoundary": {models.Clock(9, 0, 0), models.Clock(9, 0, 0), models.Clock(18, 0, 0), true},
		"SameDay_EndBoundary":   {models.Clock(18, 0, 0), models.Clock(9, 0, 0), models.Clock(18, 0, 0), true},
		"SameDay_BeforeStart":   {models.Clock(8, 59, 59), models.Clock(9, 0, 0), models.Clock(18, 0, 0), false},
		"SameDay_AfterEnd":      {models.Clock(18, 0, 1), models.Clock(9, 0, 0), models.Clock(18, 0, 0), false},
		"SameDay_Midnight":      {models.Clock(0, 0, 0), models.Clock(9, 0, 0), models.Clock(18, 0, 0), false},
		"Wrap_Start":            {models.Clock(18, 0, 0), models.Clock(18, 0, 0), models.Clock(5, 0, 0), true},
		"Wrap_EndOfDay":         {models.Clock(23, 59, 59), models.Clock(18, 0, 0), models.Clock(5, 0, 0), true},
		"Wrap_Midnight":         {models.Clock(0, 0, 0), models.Clock(18, 0, 0), models.Clock(5, 0, 0), true},
		"Wrap_End":              {models.Clock(5, 0, 0), models.Clock(18, 0, 0), models.Clock(5, 0, 0), true},
		"Wrap_JustAfterEnd":     {models.Clock(5, 0, 1), models.Clock(18, 0, 0), models.Clock(5, 0, 0), false},
		"Wrap_JustBeforeStart":  {models.Clock(17, 59, 59), models.Clock(18, 0, 0), models.Clock(5, 0, 0), false},
		"Wrap_Noon":             {models.Clock(12, 0, 0), models.Clock(18, 0, 0), models.Clock(5, 0, 0), false},
		"Degenerate_Instant":    {models.Clock(7, 0, 0), models.Clock(7, 0, 0), models.Clock(7, 0, 0), true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.InRange(tt.t, tt.start, tt.end))
		})
	}
}

func TestInRange_NonWrappingSweep(t *testing.T) {
	start, end := models.Clock(11, 0, 0), models.Clock(14, 0, 0)
	for s := 0; s < models.SecondsPerDay; s += 7 {
		tod := models.TimeOfDay(s)
		assert.Equal(t, start <= tod && tod <= end, models.InRange(tod, start, end), tod.String())
	}
}

func TestAnalyze_SingleCallAtNine(t *testing.T) {
	result := analyzer.Analyze(records("2024-01-01 09:00:00"))

	assert.Equal(t, map[string]int{"Shift 1": 1, "Shift 2": 1, "Shift 3": 0, "Shift 4": 0}, result.ShiftCounts)
	assert.Equal(t, 1, result.ResourceCounts["9 AM - 11 AM"].TotalCalls)
	assert.Equal(t, 0, result.ResourceCounts["5 AM - 9 AM"].TotalCalls)
	assert.Equal(t, 1, result.HourlyCounts["9 AM"])
	for label, n := range result.HourlyCounts {
		if label != "9 AM" {
			assert.Equal(t, 0, n, fmt.Sprintf("hour %s should be empty", label))
		}
	}
	assert.Len(t, result.HourlyCounts, 24)
}

func TestBucketFor(t *testing.T) {
	tests := map[string]struct {
		t        models.TimeOfDay
		expected string
	}{
		"Midnight":          {models.Clock(0, 0, 0), "8 PM - 5 AM"},
		"FiveAM":            {models.Clock(5, 0, 0), "5 AM - 9 AM"},
		"JustBeforeFive":    {models.Clock(4, 59, 59), "8 PM - 5 AM"},
		"NineAM":            {models.Clock(9, 0, 0), "9 AM - 11 AM"},
		"ElevenAM":          {models.Clock(11, 0, 0), "11 AM - 2 PM"},
		"TwoPM":             {models.Clock(14, 0, 0), "11 AM - 2 PM"},
		"JustAfterTwoPM":    {models.Clock(14, 0, 1), "2 PM - 6 PM"},
		"SixPM":             {models.Clock(18, 0, 0), "6 PM - 8 PM"},
		"EightPM":           {models.Clock(20, 0, 0), "6 PM - 8 PM"},
		"JustAfterEightPM":  {models.Clock(20, 0, 1), "8 PM - 5 AM"},
		"EndOfDay":          {models.Clock(23, 59, 59), "8 PM - 5 AM"},
		"MiddleOfMorning":   {models.Clock(7, 30, 0), "5 AM - 9 AM"},
		"MiddleOfAfternoon": {models.Clock(16, 0, 0), "2 PM - 6 PM"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzer.BucketFor(tt.t))
		})
	}
}

func TestAnalyze_EightPMBoundary(t *testing.T) {
	result := analyzer.Analyze(records("2024-03-05 20:00:00"))

	assert.Equal(t, 1, result.ResourceCounts["6 PM - 8 PM"].TotalCalls)
	assert.Equal(t, 0, result.ResourceCounts["8 PM - 5 AM"].TotalCalls)
	assert.Equal(t, 1, result.ShiftCounts["Shift 3"])
	assert.Equal(t, 1, result.ShiftCounts["Shift 4"])
}

func TestAnalyze_ShiftFourWrapsMidnight(t *testing.T) {
	result := analyzer.Analyze(records(
		"2024-01-01 18:00:00",
		"2024-01-01 23:59:59",
		"2024-01-02 00:00:00",
		"2024-01-02 05:00:00",
		"2024-01-02 05:00:01",
		"2024-01-02 17:59:59",
	))

	assert.Equal(t, 4, result.ShiftCounts["Shift 4"])
	assert.Equal(t, 1, result.HourlyCounts["12 AM"])
	assert.Equal(t, 2, result.HourlyCounts["5 AM"])
	assert.Equal(t, 1, result.HourlyCounts["11 PM"])
	assert.Equal(t, 1, result.HourlyCounts["6 PM"])
	assert.Equal(t, 1, result.HourlyCounts["5 PM"])
}

func TestAnalyze_Empty(t *testing.T) {
	result := analyzer.Analyze(nil)

	assert.Len(t, result.ShiftCounts, 4)
	assert.Len(t, result.ResourceCounts, 6)
	assert.Len(t, result.NonRepetitiveCounts, 4)
	assert.Len(t, result.HourlyCounts, 24)
	for name, rc := range result.ResourceCounts {
		assert.Equal(t, 0, rc.TotalCalls, name)
		assert.Equal(t, 0.0, rc.CallsPerResource, name)
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Random instants plus every boundary so shared edges are exercised.
	var input []models.CallRecord
	for range 5000 {
		input = append(input, models.CallRecord{StartTime: base.Add(time.Duration(rng.Intn(models.SecondsPerDay)) * time.Second)})
	}
	for _, h := range []int{0, 5, 9, 11, 14, 18, 20, 23} {
		input = append(input, models.CallRecord{StartTime: base.Add(time.Duration(h) * time.Hour)})
	}

	result := analyzer.Analyze(input)

	totalBuckets := 0
	bucketCounts := make(map[string]int)
	for name, rc := range result.ResourceCounts {
		totalBuckets += rc.TotalCalls
		bucketCounts[name] = rc.TotalCalls
	}
	assert.Equal(t, len(input), totalBuckets)

	totalHours := 0
	for _, n := range result.HourlyCounts {
		totalHours += n
	}
	assert.Equal(t, len(input), totalHours)

	shares := analyzer.Redistribute(bucketCounts)
	var totalShares float64
	for _, s := range shares {
		totalShares += s
	}
	assert.InDelta(t, float64(len(input)), totalShares, 1e-6)

	totalShifts := 0
	for _, n := range result.ShiftCounts {
		totalShifts += n
	}
	assert.GreaterOrEqual(t, totalShifts, len(input))

	for name, share := range shares {
		assert.Equal(t, analyzer.Round2(share), result.NonRepetitiveCounts[name], name)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	input := records(
		"2024-01-01 04:12:00",
		"2024-01-01 09:00:00",
		"2024-01-01 13:45:10",
		"2024-01-01 19:30:00",
		"2024-01-01 22:01:59",
	)

	first, err := json.Marshal(analyzer.Analyze(input))
	require.NoError(t, err)
	second, err := json.Marshal(analyzer.Analyze(input))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRedistribute(t *testing.T) {
	shares := analyzer.Redistribute(map[string]int{
		"5 AM - 9 AM":  1623,
		"9 AM - 11 AM": 2153,
		"11 AM - 2 PM": 2296,
		"2 PM - 6 PM":  2792,
		"6 PM - 8 PM":  1297,
		"8 PM - 5 AM":  933,
	})

	assert.InDelta(t, 1623+2153.0/2+2296.0/3, shares["Shift 1"], 1e-9)
	assert.InDelta(t, 2153.0/2+2296.0/3+2792.0/2, shares["Shift 2"], 1e-9)
	assert.InDelta(t, 2296.0/3+2792.0/2+1297.0/2, shares["Shift 3"], 1e-9)
	assert.InDelta(t, 1297.0/2+933, shares["Shift 4"], 1e-9)
	assert.Equal(t, 1581.5, analyzer.Round2(shares["Shift 4"]))
}

func TestCallsPerResource(t *testing.T) {
	tests := map[string]struct {
		total, resources int
		expected         float64
	}{
		"RoundsToTwoDecimals": {2296, 3, 765.33},
		"Halves":              {2153, 2, 1076.5},
		"Whole":               {1623, 1, 1623},
		"NoCalls":             {0, 2, 0},
		"ZeroResources":       {10, 0, 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzer.CallsPerResource(tt.total, tt.resources))
		})
	}
}

func TestHourLabel(t *testing.T) {
	tests := map[int]string{
		0:  "12 AM",
		1:  "1 AM",
		11: "11 AM",
		12: "12 PM",
		13: "1 PM",
		23: "11 PM",
	}
	for hour, expected := range tests {
		assert.Equal(t, expected, analyzer.HourLabel(hour))
	}

	labels := analyzer.HourLabels()
	assert.Len(t, labels, 24)
	seen := make(map[string]bool)
	for _, l := range labels {
		seen[l] = true
	}
	assert.Len(t, seen, 24)
}

func TestAnalyzeReader(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedError error
		expectedCalls int
	}{
		"Valid": {
			input: `CallID,StartTime,Agent
1,"2024-01-01 09:00:00",alice
2,2024-01-01 20:00:00,bob
`,
			expectedCalls: 2,
		},
		"MalformedTimestamp": {
			input: `CallID,StartTime
1,2024-01-01 09:00:00
2,not-a-date
`,
			expectedError: customerrors.ErrInvalidStartTime,
		},
		"MissingColumn": {
			input: `CallID,EndTime
1,2024-01-01 09:00:00
`,
			expectedError: customerrors.ErrMissingColumn,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := analyzer.AnalyzeReader(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				assert.Nil(t, result)
				assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
				assert.True(t, errors.Is(err, customerrors.ErrDataFormat))
				return
			}

			require.NoError(t, err)
			total := 0
			for _, n := range result.HourlyCounts {
				total += n
			}
			assert.Equal(t, tt.expectedCalls, total)
		})
	}
}

func records(timestamps ...string) []models.CallRecord {
	out := make([]models.CallRecord, 0, len(timestamps))
	for _, ts := range timestamps {
		t, err := time.Parse("2006-01-02 15:04:05", ts)
		if err != nil {
			panic(err)
		}
		out = append(out, models.CallRecord{StartTime: t})
	}
	return out
}

func TestAnalyzeReader_GaugesDescribeOneRun(t *testing.T) {
	morning := "StartTime\n" + strings.Repeat("2024-01-01 06:00:00\n", 3)
	night := "StartTime\n" + strings.Repeat("2024-01-01 23:00:00\n", 5)

	var wg sync.WaitGroup
	for i := range 50 {
		input := morning
		if i%2 == 1 {
			input = night
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := analyzer.AnalyzeReader(strings.NewReader(input))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	pair := [2]float64{
		testutil.ToFloat64(metrics.CallsByShift.WithLabelValues("Shift 1")),
		testutil.ToFloat64(metrics.CallsByShift.WithLabelValues("Shift 4")),
	}
	assert.Contains(t, [][2]float64{{3, 0}, {0, 5}}, pair)
}
