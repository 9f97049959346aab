package main

import (
	"bytes"
	"call-analysis/batch"
	"call-analysis/models"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPaths(t *testing.T) {
	assert.Equal(t, []string{"a.csv", "b.csv"}, splitPaths(" a.csv, ,b.csv "))
	assert.Nil(t, splitPaths(""))
}

func TestXLSXPaths(t *testing.T) {
	tests := map[string]struct {
		inputs   []string
		expected []string
	}{
		"Single": {
			inputs:   []string{"data/jan.csv"},
			expected: []string{"out.xlsx"},
		},
		"DistinctNames": {
			inputs:   []string{"data/jan.csv", "data/feb.csv"},
			expected: []string{"out-jan.xlsx", "out-feb.xlsx"},
		},
		"SameNameDifferentDirs": {
			inputs:   []string{"a/jan.csv", "b/jan.csv", "c/feb.csv"},
			expected: []string{"out-jan-1.xlsx", "out-jan-2.xlsx", "out-feb.xlsx"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, xlsxPaths("out.xlsx", tt.inputs))
		})
	}
}

func TestWriteReport_JSONSeveralInputs(t *testing.T) {
	results := []batch.FileResult{
		{Path: "a/jan.csv", Result: &models.Analysis{ShiftCounts: map[string]int{"Shift 1": 2}}},
		{Path: "b/jan.csv", Result: &models.Analysis{ShiftCounts: map[string]int{"Shift 4": 1}}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, results, "json"))

	var decoded map[string]models.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["a/jan.csv"].ShiftCounts["Shift 1"])
	assert.Equal(t, 1, decoded["b/jan.csv"].ShiftCounts["Shift 4"])
}

func TestWriteReport_JSONSingleInput(t *testing.T) {
	results := []batch.FileResult{
		{Path: "jan.csv", Result: &models.Analysis{ShiftCounts: map[string]int{"Shift 2": 3}}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, results, "json"))

	var decoded models.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.ShiftCounts["Shift 2"])
}
