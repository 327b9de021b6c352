package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nodesim/interfaces"
	"nodesim/util/random"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewNodeInitialRanges(t *testing.T) {
	rng := random.New(1)
	for i := 0; i < 200; i++ {
		n := NewNode("node", interfaces.FULL_NODE, interfaces.PROTOCOLS[i%3], rng, now)
		assert.Equal(t, interfaces.ONLINE, n.Status())
		assert.Contains(t, interfaces.PROTOCOL_VERSIONS[n.Protocol()], n.Version())
		assert.GreaterOrEqual(t, n.BlockHeight(), uint64(100000))
		assert.Less(t, n.BlockHeight(), uint64(1000000))
		assert.GreaterOrEqual(t, n.ConnectionCount(), 5)
		assert.LessOrEqual(t, n.ConnectionCount(), 50)
		assert.True(t, n.LastBlockTime().Before(now))
		assert.InDelta(t, 105, n.Network().LatencyMs, 95)
		assert.InDelta(t, 97.45, n.Network().UptimePct, 2.45)
		assert.InDelta(t, 1050, n.Resources().MemoryMB, 950)
	}
}

func TestUpdateMetricsStaysInRange(t *testing.T) {
	rng := random.New(99)
	n := NewNode("node1", interfaces.MINING_NODE, interfaces.BITCOIN, rng, now)
	// start at the edges so clamping is exercised
	n.NNetwork.LatencyMs = MaxLatency
	n.NNetwork.BandwidthMBps = MinBandwidth
	n.NResources.CpuPct = MinCpu
	n.NResources.MemoryMB = MaxMemory

	height := n.BlockHeight()
	for i := 0; i < 10000; i++ {
		n.UpdateMetrics(now.Add(time.Duration(i) * time.Second))
		require.GreaterOrEqual(t, n.Network().LatencyMs, MinLatency)
		require.LessOrEqual(t, n.Network().LatencyMs, MaxLatency)
		require.GreaterOrEqual(t, n.Network().BandwidthMBps, MinBandwidth)
		require.LessOrEqual(t, n.Network().BandwidthMBps, MaxBandwidth)
		require.GreaterOrEqual(t, n.Resources().CpuPct, MinCpu)
		require.LessOrEqual(t, n.Resources().CpuPct, MaxCpu)
		require.GreaterOrEqual(t, n.Resources().MemoryMB, MinMemory)
		require.LessOrEqual(t, n.Resources().MemoryMB, MaxMemory)
		require.GreaterOrEqual(t, n.Resources().NetworkIOMBps, MinNetworkIO)
		require.LessOrEqual(t, n.Resources().NetworkIOMBps, MaxNetworkIO)
		require.GreaterOrEqual(t, n.BlockHeight(), height)
		height = n.BlockHeight()
	}
}

func TestUpdateMetricsBlockArrival(t *testing.T) {
	// six draws per update, the last one decides the block arrival
	rng := random.NewSequence(0.5, 0.5, 0.5, 0.5, 0.5, 0.05, 0.5)
	n := &Node{NId: "node1", NStatus: interfaces.ONLINE, NBlockHeight: 10, rng: rng}
	n.NNetwork.LatencyMs = 100
	n.NNetwork.BandwidthMBps = 10
	n.NResources.MemoryMB = 500
	n.NResources.NetworkIOMBps = 1

	n.UpdateMetrics(now)
	assert.Equal(t, uint64(11), n.BlockHeight())
	assert.Equal(t, now, n.LastBlockTime())
	assert.InDelta(t, 0.00125, n.Resources().DiskGB, 1e-9)
	assert.Equal(t, 100.0, n.Network().LatencyMs)
}

func TestUpdateMetricsNoBlock(t *testing.T) {
	n := &Node{NId: "node1", NBlockHeight: 10, rng: random.NewSequence(0.5)}
	n.UpdateMetrics(now)
	assert.Equal(t, uint64(10), n.BlockHeight())
	assert.True(t, n.LastBlockTime().IsZero())
}

func TestConnectDisconnectCongest(t *testing.T) {
	n := &Node{NId: "node1", NStatus: interfaces.ONLINE}
	n.NNetwork.UptimePct = 99.85
	n.Connect()
	assert.Equal(t, 1, n.ConnectionCount())
	assert.Equal(t, MaxUptime, n.Network().UptimePct)

	n.Disconnect()
	n.Disconnect()
	assert.False(t, n.IsOnline())
	assert.Equal(t, 0, n.ConnectionCount())

	n.NNetwork.LatencyMs = 480
	n.NNetwork.PacketLossPct = 99.5
	n.Congest(40, 0.9)
	assert.Equal(t, MaxLatency, n.Network().LatencyMs)
	assert.Equal(t, MaxPacketLoss, n.Network().PacketLossPct)
}

func TestPeers(t *testing.T) {
	a := &Node{NId: "a"}
	b := &Node{NId: "b"}
	c := &Node{NId: "c"}
	a.AddPeers(a, b, b, c, nil)
	require.Len(t, a.Peers(), 2)
	assert.True(t, a.ContainsPeer("b"))
	assert.False(t, a.ContainsPeer("a"))

	a.RemovePeer("b")
	assert.False(t, a.ContainsPeer("b"))
	assert.Equal(t, []string{"c"}, a.Snapshot().Peers)
}

func TestSnapshot(t *testing.T) {
	n := NewNode("node7", interfaces.VALIDATOR_NODE, interfaces.CUSTOM, random.New(5), now)
	n.SetLocal(true)
	info := n.Snapshot()
	assert.Equal(t, "node7", info.Id)
	assert.Equal(t, "validator", info.Kind)
	assert.Equal(t, "custom", info.Protocol)
	assert.Equal(t, "online", info.Status)
	assert.True(t, info.IsLocal)
	assert.Equal(t, n.Network().LatencyMs, info.LatencyMs)
	assert.Empty(t, info.Peers)
}

func TestSnapshotWithoutKindProtocolOrStatus(t *testing.T) {
	n := NewNode("node1", nil, nil, random.New(3), now)
	n.NStatus = nil
	info := n.Snapshot()
	assert.Equal(t, "node1", info.Id)
	assert.Empty(t, info.Kind)
	assert.Empty(t, info.Protocol)
	assert.Empty(t, info.Status)
	assert.Empty(t, info.Version)
}
