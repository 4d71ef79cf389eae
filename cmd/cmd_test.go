package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateThenReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	t.Setenv("EVDASH_OUTPUT__DIR", dir)

	out, err := execute(t, "generate", "--seed", "5", "--stations", "4", "--sessions", "30", "--out", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, filepath.Join(dir, "stations_enhanced.parquet"), lines[0])
	assert.Equal(t, filepath.Join(dir, "sessions_enhanced.parquet"), lines[1])

	out, err = execute(t, "report", "--table", "kpis")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sessions,avg_wait,total_revenue,avg_nps\n30,"), out)

	out, err = execute(t, "report", "--table", "top", "--top", "2", "--format", "csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestReportIgnoresUnreachableBroker(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EVDASH_OUTPUT__DIR", dir)
	_, err := execute(t, "generate", "--stations", "3", "--sessions", "5", "--out", dir)
	require.NoError(t, err)

	t.Setenv("EVDASH_NOTIFY__ENABLED", "true")
	t.Setenv("EVDASH_NOTIFY__BROKER", "tcp://127.0.0.1:1")
	t.Setenv("EVDASH_NOTIFY__TIMEOUT_MS", "200")
	out, err := execute(t, "report", "--table", "revenue-cost", "--format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["), out)
}

func TestGenerateRejectsInvalidOverride(t *testing.T) {
	t.Setenv("EVDASH_OUTPUT__DIR", t.TempDir())
	_, err := execute(t, "generate", "--stations", "1")
	assert.Error(t, err)
}

func TestReportBadDate(t *testing.T) {
	_, err := execute(t, "report", "--from", "yesterday")
	assert.Error(t, err)
}
