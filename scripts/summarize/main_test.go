package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nodesim/util/logger"
	"nodesim/util/stats"
)

func writeOverview(t *testing.T, dir string, overview stats.StatsOverview) {
	raw, err := json.Marshal(overview)
	require.NoError(t, err)
	seedDir := filepath.Join(dir, strings.TrimSpace(convert(overview.Seed)))
	require.NoError(t, os.MkdirAll(seedDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "overview.json"), raw, 0o644))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "1,500000", convert(1.5))
	assert.Equal(t, "42", convert(42))
	assert.Equal(t, "good", convert("good"))
}

func TestWriteSummaryMeanAndSd(t *testing.T) {
	overviews := []*stats.StatsOverview{
		{Seed: 1, Blocks: 4, Throughput: 1},
		{Seed: 2, Blocks: 6, Throughput: 3},
	}
	overviews[0].Network.Health = "good"
	overviews[1].Network.Health = "fair"

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, overviews))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "seed ; time simulated nanos"))

	mean := strings.Split(lines[3], " ; ")
	sd := strings.Split(lines[4], " ; ")
	require.Len(t, mean, len(columns))
	assert.Equal(t, "mean", mean[0])
	assert.Equal(t, "5,000000", mean[4])
	assert.Equal(t, "1,414214", sd[4])
	// health is not numeric
	assert.Equal(t, "", mean[18])
}

func TestSummarizeReadsSeedDirs(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "summary")
	writeOverview(t, in, stats.StatsOverview{Seed: 2, Blocks: 3})
	writeOverview(t, in, stats.StatsOverview{Seed: 1, Blocks: 5})
	require.NoError(t, os.MkdirAll(filepath.Join(in, "notASeed"), 0o755))

	require.NoError(t, summarize(in, out, logger.NewNop()))

	raw, err := os.ReadFile(filepath.Join(out, "summary.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "1 ; "))
	assert.True(t, strings.HasPrefix(lines[2], "2 ; "))
	_, err = os.Stat(filepath.Join(out, "1_nodes.csv"))
	assert.NoError(t, err)
}

func TestSummarizeWithoutRuns(t *testing.T) {
	assert.Error(t, summarize(t.TempDir(), t.TempDir(), logger.NewNop()))
}
