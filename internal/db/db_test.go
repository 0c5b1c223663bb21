package db

import (
	"path/filepath"
	"testing"

	"github.com/daviddao/jobtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), ".jobtrack", "track.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func sampleRun(id string) *types.Run {
	return &types.Run{
		ID:            id,
		SpreadsheetID: "sheet-1",
		Query:         "application OR job",
		Messages:      2,
		Appended:      2,
		StartedAt:     Now(),
		FinishedAt:    Now(),
	}
}

func TestRecordAndListRuns(t *testing.T) {
	d := openTestDB(t)

	run := sampleRun(GenID())
	rows := []*types.RunRow{
		{
			RunID:     run.ID,
			MessageID: "m1",
			Row: types.Row{
				Company:   "Acme",
				JobTitle:  "Software Engineer",
				Date:      "Mon, 3 Aug 2026 10:00:00 -0700",
				NextSteps: types.NextStepsProvided,
				Notes:     "Interview Invitation",
			},
		},
		{
			RunID:     run.ID,
			MessageID: "m2",
			Row: types.Row{
				Company:        "Bigco",
				JobTitle:       types.TitleUnknown,
				RejectionStage: types.StageRejected,
				NextSteps:      types.NextStepsPending,
				Notes:          "Application Update",
			},
		},
	}

	require.NoError(t, d.RecordRun(run, rows))

	runs, err := d.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Appended)

	got, err := d.RunRows(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, types.StageRejected, got[1].RejectionStage)
}

func TestCounts(t *testing.T) {
	d := openTestDB(t)

	run := sampleRun(GenID())
	rows := []*types.RunRow{
		{RunID: run.ID, MessageID: "m1", Row: types.Row{Company: "Acme", JobTitle: "Engineer", NextSteps: types.NextStepsProvided}},
		{RunID: run.ID, MessageID: "m2", Row: types.Row{Company: "Acme", JobTitle: "Engineer", RejectionStage: types.StageRejected, NextSteps: types.NextStepsPending}},
		{RunID: run.ID, MessageID: "m3", Row: types.Row{Company: "Bigco", JobTitle: "Manager", NextSteps: types.NextStepsPending}},
	}
	require.NoError(t, d.RecordRun(run, rows))

	assert.Equal(t, 1, d.RunCount())
	assert.Equal(t, 3, d.RowCount())
	assert.Equal(t, 1, d.RejectedCount())

	steps, err := d.NextStepsCounts()
	require.NoError(t, err)
	assert.Equal(t, 2, steps[types.NextStepsPending])
	assert.Equal(t, 1, steps[types.NextStepsProvided])

	top, err := d.TopCompanies(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Acme", top[0].Company)
	assert.Equal(t, 2, top[0].Count)
}

func TestLatestRun(t *testing.T) {
	d := openTestDB(t)
	assert.Nil(t, d.LatestRun())

	first := sampleRun(GenID())
	first.StartedAt = "2026-08-01T00:00:00Z"
	second := sampleRun(GenID())
	second.StartedAt = "2026-08-20T00:00:00Z"
	require.NoError(t, d.RecordRun(first, nil))
	require.NoError(t, d.RecordRun(second, nil))

	latest := d.LatestRun()
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestRecordRunIgnoresDuplicateRows(t *testing.T) {
	d := openTestDB(t)

	run := sampleRun(GenID())
	rows := []*types.RunRow{
		{RunID: run.ID, MessageID: "m1", Row: types.Row{Company: "Acme", JobTitle: "Engineer", NextSteps: types.NextStepsPending}},
		{RunID: run.ID, MessageID: "m1", Row: types.Row{Company: "Acme", JobTitle: "Engineer", NextSteps: types.NextStepsPending}},
	}
	require.NoError(t, d.RecordRun(run, rows))
	assert.Equal(t, 1, d.RowCount())
}
