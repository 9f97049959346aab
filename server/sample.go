package server

import "call-analysis/models"

// SampleAnalysis returns a fixed, realistic result for front-end development.
func SampleAnalysis() *models.Analysis {
	return &models.Analysis{
		ShiftCounts: map[string]int{
			"Shift 1": 6072,
			"Shift 2": 7241,
			"Shift 3": 6385,
			"Shift 4": 2229,
		},
		ResourceCounts: map[string]models.ResourceCount{
			"5 AM - 9 AM":  {TotalCalls: 1623, Resources: 1, CallsPerResource: 1623},
			"9 AM - 11 AM": {TotalCalls: 2153, Resources: 2, CallsPerResource: 1076.5},
			"11 AM - 2 PM": {TotalCalls: 2296, Resources: 3, CallsPerResource: 765.33},
			"2 PM - 6 PM":  {TotalCalls: 2792, Resources: 2, CallsPerResource: 1396},
			"6 PM - 8 PM":  {TotalCalls: 1297, Resources: 2, CallsPerResource: 648.5},
			"8 PM - 5 AM":  {TotalCalls: 933, Resources: 1, CallsPerResource: 933},
		},
		NonRepetitiveCounts: map[string]float64{
			"Shift 1": 3464.83,
			"Shift 2": 3237.83,
			"Shift 3": 2809.83,
			"Shift 4": 1581.5,
		},
		HourlyCounts: map[string]int{
			"12 AM": 98, "1 AM": 85, "2 AM": 64, "3 AM": 42, "4 AM": 57, "5 AM": 124,
			"6 AM": 256, "7 AM": 387, "8 AM": 513, "9 AM": 856, "10 AM": 1072, "11 AM": 934,
			"12 PM": 785, "1 PM": 684, "2 PM": 827, "3 PM": 975, "4 PM": 1073, "5 PM": 745,
			"6 PM": 642, "7 PM": 528, "8 PM": 380, "9 PM": 246, "10 PM": 184, "11 PM": 132,
		},
	}
}
