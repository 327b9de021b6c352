package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nodesim/interfaces"
	"nodesim/util/connectivity"
	"nodesim/util/file"
	"nodesim/util/random"
	"nodesim/util/stats"
)

func testConfig(t *testing.T) *file.Config {
	config := file.DefaultConfig()
	config.COutPath = filepath.Join(t.TempDir(), "out")
	config.CStartTime = 1700000000
	config.CEndTime = 3600
	config.CNodeCount = 8
	config.CTxPerMin = 10
	config.CInitialTargetZeros = 1
	config.CMaxNonce = 100000
	return config
}

func TestCreateWorldAndState(t *testing.T) {
	config := testConfig(t)
	simWorld, err := createWorldAndState(config, random.New(config.Seed()))
	require.NoError(t, err)

	nodes := simWorld.Network().Nodes()
	require.Len(t, nodes, 8)
	assert.True(t, nodes[0].IsLocal())
	for _, nd := range nodes[1:] {
		assert.False(t, nd.IsLocal())
		assert.LessOrEqual(t, len(nd.Peers()), len(nodes)-1)
	}
	_, ok := simWorld.Network().Node(simWorld.Assembler().MinerId())
	assert.True(t, ok)
	// tick, tx creation and mining
	assert.Equal(t, 3, simWorld.Queue().Length())
	assert.Equal(t, int64(1700000000000000000), simWorld.StartTime())
}

func TestCreateWorldWithoutTxCreation(t *testing.T) {
	config := testConfig(t)
	config.CSimulateTransactionCreation = false
	simWorld, err := createWorldAndState(config, random.New(config.Seed()))
	require.NoError(t, err)
	assert.Equal(t, 2, simWorld.Queue().Length())
}

func runOverview(t *testing.T, config *file.Config) []byte {
	simWorld, err := createWorldAndState(config, random.New(config.Seed()))
	require.NoError(t, err)
	simWorld.StartSim()
	var buf bytes.Buffer
	require.NoError(t, stats.PrintStatsOverview(simWorld, config.Seed(), &buf))
	return buf.Bytes()
}

func TestSimIsReproducible(t *testing.T) {
	config := testConfig(t)
	first := runOverview(t, config)
	second := runOverview(t, config)
	assert.JSONEq(t, string(first), string(second))

	var overview stats.StatsOverview
	require.NoError(t, json.Unmarshal(first, &overview))
	// ticks at 0s and every second up to and including the end time
	assert.Equal(t, uint64(3601), overview.Ticks)
	assert.Equal(t, 8, overview.Network.TotalNodes)
	assert.Len(t, overview.StatsPerNode, 8)

	config.CSeed = 2
	assert.NotEqual(t, string(first), string(runOverview(t, config)))
}

func TestRunSeedsWritesResults(t *testing.T) {
	config := testConfig(t)
	config.CEndTime = 600
	require.NoError(t, runSeeds(config, 2))

	for _, seed := range []uint64{1, 2} {
		for _, name := range []string{"overview.json", "metrics.json", "auditLog.csv"} {
			assert.True(t, file.FileExists(filepath.Join(config.OutPath(), strconv.FormatUint(seed, 10), name)), name)
		}
		raw, err := os.ReadFile(file.StatsOverviewPath(config.OutPath(), seed))
		require.NoError(t, err)
		var overview stats.StatsOverview
		require.NoError(t, json.Unmarshal(raw, &overview))
		assert.Equal(t, seed, overview.Seed)
	}
}

func TestLoadConfigValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("nodeCount: 0\nlogLevel: loud\n"), 0o644))
	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CNodeCount")
	assert.Contains(t, err.Error(), "CLogLevel")
}

func TestWatcherTickAndMine(t *testing.T) {
	config := testConfig(t)
	config.CInitialTargetZeros = 0
	simWorld, err := createWorldAndState(config, random.New(config.Seed()))
	require.NoError(t, err)

	var out bytes.Buffer
	w := newWatcher(simWorld, connectivity.NewChecker("", 0), &out, 2)
	w.tick()
	assert.Contains(t, out.String(), "online")
	assert.Equal(t, 1, simWorld.Pool().Len())
	select {
	case <-w.done:
		t.Fatal("done before the tick limit")
	default:
	}

	w.mine()
	assert.Contains(t, out.String(), "mined by")
	assert.Equal(t, 1, simWorld.Assembler().Chain().Len())
	assert.Equal(t, 0, simWorld.Pool().Len())
	assert.Equal(t, interfaces.TX_INCLUDED, simWorld.Assembler().Chain().Blocks()[0].Transactions()[0].Status())

	w.tick()
	_, open := <-w.done
	assert.False(t, open)
}
