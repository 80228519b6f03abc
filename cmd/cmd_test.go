package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/orsched/core/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgPath = ""
		analyzeFormat, analyzeChronological = "text", false
		predictSurgeon, predictProcedure, predictPatient, predictComplexity = "", "", "", 1
		exportWhat, exportFormat, exportOutput = "timeline", "csv", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeText(t *testing.T) {
	out, err := execute(t, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "[medium] room-optimization (87%): 3 rooms are underutilized (< 60%)")
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := execute(t, "analyze", "--format", "json", "--chronological")
	require.NoError(t, err)
	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, model.RecResourceAllocation, recs[0].Type)
}

func TestPredict(t *testing.T) {
	out, err := execute(t, "predict", "--surgeon", "surgeon-1", "--procedure", "Coronary Bypass")
	require.NoError(t, err)
	assert.Equal(t, "Coronary Bypass by Dr. Sarah Johnson: 259 minutes\n", out)

	out, err = execute(t, "predict", "--patient", "patient-3", "--complexity", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Brain Tumor Removal by Dr. Emily Rodriguez: 216 minutes")

	_, err = execute(t, "predict", "--surgeon", "nobody", "--procedure", "X")
	assert.ErrorContains(t, err, "unknown surgeon")

	for _, c := range []string{"NaN", "Inf", "-1"} {
		_, err = execute(t, "predict", "--surgeon", "surgeon-1", "--procedure", "Coronary Bypass", "--complexity", c)
		assert.ErrorContains(t, err, "complexity", c)
	}
}

func TestExportTimelineCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.csv")
	_, err := execute(t, "export", "--what", "timeline", "--format", "csv", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "surgery-1,"))
}

func TestExportChart(t *testing.T) {
	out, err := execute(t, "export", "--what", "chart")
	require.NoError(t, err)
	assert.Contains(t, out, "OR 2 - General Surgery")

	_, err = execute(t, "export", "--what", "gantt")
	assert.ErrorContains(t, err, "unknown export")
}

func TestUtilization(t *testing.T) {
	out, err := execute(t, "utilization")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall 43.8%, 2 rooms available, 1 surgeries in progress")
	assert.Contains(t, out, "Coronary Bypass")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyzer:\n  underutilization_threshold: 0.3\n"), 0o644))
	out, err := execute(t, "-c", path, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rooms are underutilized (< 30%)")
}
