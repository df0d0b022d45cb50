package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func sampleReport() *schema.Report {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	chart := schema.CumulativeSeries{
		EarnedHours:       []*float64{f(0), f(2.5), nil},
		ActualCost:        []*float64{f(1), f(2), nil},
		DailyPlannedHours: []float64{5, 5, 5},
	}
	return &schema.Report{
		Sprints: []schema.SprintSeries{{
			Name:         "Sprint 1",
			State:        schema.ActiveState,
			Users:        []string{"Ana Souza"},
			Dates:        dates,
			PlannedHours: map[string]float64{schema.OverallEntity: 5, "Ana Souza": 5},
			Charts:       map[string]schema.CumulativeSeries{schema.OverallEntity: chart, "Ana Souza": chart},
		}},
		AllTime: &schema.AllTimeView{
			Dates:         dates,
			SprintMarkers: []schema.SprintMarker{{Name: "Sprint 1", StartDate: dates[0], EndDate: dates[2], Planned: 5}},
			Charts: map[string]schema.EarnedCostChart{
				schema.OverallEntity: {EarnedHours: chart.EarnedHours, ActualCost: chart.ActualCost},
			},
		},
		EVPV: &schema.EVPVView{
			Dates: dates,
			Charts: map[string]schema.EVPVChart{
				schema.OverallEntity: {EarnedValue: chart.EarnedHours, PlannedValue: []float64{1.67, 3.33, 5}},
			},
		},
	}
}

func TestFlattenReport(t *testing.T) {
	rows := FlattenReport(sampleReport())

	// 2 entities x 3 dates, then 3 all-time and 3 EV/PV rows
	require.Len(t, rows, 12)
	assert.Equal(t, "Sprint 1", rows[0].View)
	assert.Equal(t, schema.OverallEntity, rows[0].Entity)
	assert.Equal(t, "Ana Souza", rows[3].Entity)
	assert.Nil(t, rows[2].Earned)
	assert.Equal(t, 5.0, *rows[2].Planned)

	allTime := rows[6]
	assert.Equal(t, schema.AllTimeKey, allTime.View)
	assert.Nil(t, allTime.Planned)
	assert.Equal(t, 1.0, *allTime.Cost)

	evpv := rows[11]
	assert.Equal(t, schema.EVPVKey, evpv.View)
	assert.Nil(t, evpv.Cost)
	assert.Nil(t, evpv.Earned)
	assert.Equal(t, 5.0, *evpv.Planned)
}

func TestFlattenReport_NoAllTime(t *testing.T) {
	report := sampleReport()
	report.AllTime, report.EVPV = nil, nil

	assert.Len(t, FlattenReport(report), 6)
}

func TestWriteJSON_ReportLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleReport()))

	// Keys in dashboard order, four-space indent
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n    \"Sprint 1\": {"))
	assert.Less(t, strings.Index(out, `"Sprint 1"`), strings.Index(out, `"All Time"`))
	assert.Less(t, strings.Index(out, `"All Time"`), strings.Index(out, `"EV/PV"`))

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	sprint := decoded["Sprint 1"]
	assert.Equal(t, []any{"Ana Souza"}, sprint["users"])
	earned := sprint["charts"].(map[string]any)[schema.OverallEntity].(map[string]any)["earnedHours"]
	assert.Equal(t, []any{0.0, 2.5, nil}, earned)
	assert.Contains(t, decoded[schema.AllTimeKey], "sprint_markers")
}

func TestWriteReportCSV(t *testing.T) {
	_, fmtNullable := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeReportCSV(&buf, sampleReport(), fmtNullable))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 13)
	assert.Equal(t, []string{"view", "entity", "date", "earned", "cost", "planned"}, records[0])
	assert.Equal(t, []string{"Sprint 1", "overall", "2024-01-02", "2.50", "2.00", "5.00"}, records[2])
	assert.Equal(t, []string{"Sprint 1", "overall", "2024-01-03", "", "", "5.00"}, records[3])
	assert.Equal(t, []string{"EV/PV", "overall", "2024-01-01", "0.00", "", "1.67"}, records[10])
}

func TestWriteReportTable(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	cfg := &contract.Config{CacheBackend: schema.SQLiteBackend}

	var buf bytes.Buffer
	require.NoError(t, writeReportTable(&buf, sampleReport(), cfg, fmtFloat, 2*time.Second))

	out := buf.String()
	assert.Contains(t, out, "Sprint 1")
	assert.Contains(t, out, "Ana S")
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, schema.BehindValue)
	assert.Contains(t, out, schema.EVPVKey)
	assert.Contains(t, out, "Showing 1 sprints (all-time views: true)")
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteReportResults_Files(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		output schema.OutputMode
		file   string
	}{
		{schema.JSONOut, "report.json"},
		{schema.CSVOut, "report.csv"},
		{schema.TextOut, "report.txt"},
		{schema.ParquetOut, "report.parquet"},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			cfg := &contract.Config{Output: tt.output, OutputFile: path, Precision: 2}

			require.NoError(t, WriteReportResults(sampleReport(), cfg, time.Second))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestWriteSprintsCSV(t *testing.T) {
	listing := []schema.SprintListing{
		{Sprint: schema.Sprint{ID: 1, Name: "Sprint 1", State: schema.ClosedState, Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}, Verdict: schema.IncludedVerdict, AllTime: true},
		{Sprint: schema.Sprint{ID: 2, Name: "Sprint 2", State: schema.FutureState}, Verdict: schema.FutureVerdict},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSprintsCSV(&buf, listing))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "Sprint 1", "closed", "2024-01-01", "2024-01-05", "included", "true"}, records[1])
	assert.Equal(t, []string{"2", "Sprint 2", "future", "", "", "skipped (future)", "false"}, records[2])
}

func TestWriteSprintsTable(t *testing.T) {
	listing := []schema.SprintListing{
		{Sprint: schema.Sprint{ID: 1, Name: "Sprint 1", State: schema.ClosedState}, Verdict: schema.IncludedVerdict, AllTime: true},
		{Sprint: schema.Sprint{ID: 2, Name: "SCRUM 1", State: schema.ClosedState}, Verdict: schema.ExcludedVerdict},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSprintsTable(&buf, listing))

	assert.Contains(t, buf.String(), "SCRUM 1")
	assert.Contains(t, buf.String(), "skipped (excluded)")
	assert.Contains(t, buf.String(), "1 of 2 sprints included")
}

func TestTruncateList(t *testing.T) {
	assert.Equal(t, "Ana S, Bo", truncateList([]string{"Ana S", "Bo"}, 20))
	assert.Equal(t, "Ana S, B...", truncateList([]string{"Ana S", "Bo T", "Cy"}, 11))
	assert.Equal(t, "", truncateList(nil, 10))
}

func TestClampUsersWidth(t *testing.T) {
	assert.Equal(t, 20, clampUsersWidth(80))
	assert.Equal(t, 40, clampUsersWidth(150))
	assert.Equal(t, 60, clampUsersWidth(400))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, schema.OnTrackValue, label(1.2, false))
	assert.Contains(t, label(0.9, true), schema.SlippingValue)
}
