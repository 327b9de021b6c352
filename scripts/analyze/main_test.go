package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const auditLog = `time ; nodeId ; eventType ; from->to ; id ; text
0 ; node1 ; PeerConnected ; ; node2 ; 
0 ; node2 ; PeerConnected ; ; node1 ; 
1000000000 ; node3 ; node_disconnect ; ; ; status=offline,connections=0
2000000000 ; node3 ; node_connect ; ; ; status=online,connections=4
30000000000 ; node2 ; NewTxEvent ; ; abc ; fee=0.005,admitted=true
31000000000 ; node2 ; NewTxEvent ; ; abd ; fee=0.001,admitted=false
600000000000 ; node1 ; MineEvent ; ; 00ab ; height=789456,txs=5,nonce=12,difficulty=1000000
900000000000 ; node1 ; MineEvent ; ; ; exhausted,target=00
1500000000000 ; node1 ; MineEvent ; ; 00cd ; height=789457,txs=3,nonce=7,difficulty=1000000
`

func TestAnalyze(t *testing.T) {
	result, err := analyze(strings.NewReader(auditLog))
	require.NoError(t, err)

	assert.Equal(t, 9, result.Rows)
	assert.Equal(t, int64(1500000000000), result.TimeSimulatedNanos)
	assert.Equal(t, 2, result.PeerLinks)
	assert.Equal(t, 2, result.NodeEventCounts["node3"])
	assert.Equal(t, 3, result.EventCounts["MineEvent"])
	assert.Equal(t, 2, result.BlocksCount)
	assert.Equal(t, 1, result.ExhaustedMiningRounds)
	assert.Equal(t, 8, result.TxsInBlocks)
	assert.InDelta(t, 4, result.MeanTxsPerBlock, 1e-9)
	assert.Equal(t, 1, result.TxAdmitted)
	assert.Equal(t, 1, result.TxRejected)
	assert.InDelta(t, 0.003, result.MeanTxFee, 1e-9)
	// intervals 600s and 900s
	assert.InDelta(t, 750, result.MeanBlockInterval, 1e-9)
	assert.InDelta(t, 600, result.MedianBlockInterval, 1e-9)
	assert.Equal(t, 1, result.BlockIntervalHistogram.Buckets[3])
	assert.Equal(t, 1, result.BlockIntervalHistogram.Buckets[4])
	assert.Equal(t, []float64{600, 900}, result.BlockIntervals)
}

func TestAnalyzeRejectsBrokenRows(t *testing.T) {
	_, err := analyze(strings.NewReader("time ; nodeId ; eventType ; from->to ; id ; text\nsoon ; node1 ; MineEvent ; ; ; \n"))
	assert.Error(t, err)

	_, err = analyze(strings.NewReader(""))
	assert.Error(t, err)
}

func TestHistogram(t *testing.T) {
	h := NewHistogram(0, 10, 5)
	require.Len(t, h.Buckets, 4)
	for _, v := range []float64{-1, 0, 4.9, 5, 9.99, 10, 42} {
		h.AddEntry(v)
	}
	assert.Equal(t, []int{1, 2, 2, 2}, h.Buckets)
}

func TestPrintResult(t *testing.T) {
	out := filepath.Join(t.TempDir(), "1")
	require.NoError(t, PrintResult(&Result{BlocksCount: 2, BlockIntervals: []float64{600, 12.5}}, out))
	raw, err := os.ReadFile(filepath.Join(out, "result.json"))
	require.NoError(t, err)
	var result Result
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, 2, result.BlocksCount)

	intervals, err := os.ReadFile(filepath.Join(out, "blockIntervals.txt"))
	require.NoError(t, err)
	assert.Equal(t, "600\n12.5\n", string(intervals))
}
