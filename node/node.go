package node

import (
	"time"

	"nodesim/interfaces"
)

type Node struct {
	NId               string                 `json:"i"`
	NKind             interfaces.INodeKind   `json:"k"`
	NProtocol         interfaces.IProtocol   `json:"p"`
	NStatus           interfaces.INodeStatus `json:"s"`
	NVersion          string                 `json:"v"`
	NBlockHeight      uint64                 `json:"h"`
	NLastBlockTime    time.Time              `json:"lbt"`
	NConnectionCount  int                    `json:"c"`
	NBlockchainSizeGB float64                `json:"bs"`
	NSyncStatus       string                 `json:"sync"`
	NLocal            bool                   `json:"local"`
	NNetwork          NetworkMetrics         `json:"net"`
	NResources        ResourceMetrics        `json:"res"`
	peers             []*Node
	rng               interfaces.IRandom
}

// NewNode creates an online node with randomized metrics, every draw comes from rng.
func NewNode(id string, kind interfaces.INodeKind, protocol interfaces.IProtocol, rng interfaces.IRandom, now time.Time) *Node {
	versions := interfaces.PROTOCOL_VERSIONS[protocol]
	version := ""
	if len(versions) > 0 {
		version = versions[rng.Intn(len(versions))]
	}
	n := &Node{
		NId:               id,
		NKind:             kind,
		NProtocol:         protocol,
		NStatus:           interfaces.ONLINE,
		NVersion:          version,
		NBlockHeight:      uint64(rng.Between(100000, 1000000)),
		NConnectionCount:  5 + rng.Intn(46),
		NBlockchainSizeGB: 400 + rng.Between(0, 50),
		NSyncStatus:       "synced",
		peers:             make([]*Node, 0, 3),
		rng:               rng,
	}
	n.NLastBlockTime = now.Add(-time.Duration(rng.Between(1, 60) * float64(time.Minute)))
	n.NNetwork = NetworkMetrics{
		LatencyMs:     rng.Between(10, 200),
		BandwidthMBps: rng.Between(1, 100),
		PacketLossPct: rng.Between(0, 5),
		UptimePct:     rng.Between(95, 99.9),
	}
	n.NResources = ResourceMetrics{
		CpuPct:        rng.Between(5, 80),
		MemoryMB:      rng.Between(100, 2000),
		DiskGB:        rng.Between(10, 500),
		NetworkIOMBps: rng.Between(0.1, 10),
	}
	return n
}

// UpdateMetrics advances the random walk by one step and, with probability
// BlockArrivalP, simulates the arrival of a new block at now.
func (node *Node) UpdateMetrics(now time.Time) {
	node.NNetwork.LatencyMs = Clamp(node.NNetwork.LatencyMs+node.rng.Between(-latencyStep, latencyStep), MinLatency, MaxLatency)
	node.NNetwork.BandwidthMBps = Clamp(node.NNetwork.BandwidthMBps+node.rng.Between(-bandwidthStep, bandwidthStep), MinBandwidth, MaxBandwidth)
	node.NResources.CpuPct = Clamp(node.NResources.CpuPct+node.rng.Between(-cpuStep, cpuStep), MinCpu, MaxCpu)
	node.NResources.MemoryMB = Clamp(node.NResources.MemoryMB+node.rng.Between(-memoryStep, memoryStep), MinMemory, MaxMemory)
	node.NResources.NetworkIOMBps = Clamp(node.NResources.NetworkIOMBps+node.rng.Between(-networkIOStep, networkIOStep), MinNetworkIO, MaxNetworkIO)

	if node.rng.Chance(BlockArrivalP) {
		node.NLastBlockTime = now
		node.NBlockHeight++
		growth := node.rng.Between(minBlockGrowth, maxBlockGrowth)
		node.NResources.DiskGB += growth
		node.NBlockchainSizeGB += growth
	}
}

// Connect registers one more connection and nudges the uptime up.
func (node *Node) Connect() {
	node.NConnectionCount++
	node.NNetwork.UptimePct = Clamp(node.NNetwork.UptimePct+0.1, 0, MaxUptime)
}

// Disconnect takes the node offline and drops one connection.
func (node *Node) Disconnect() {
	node.NStatus = interfaces.OFFLINE
	if node.NConnectionCount > 0 {
		node.NConnectionCount--
	}
}

// Congest adds the given latency and packet loss, clamped to their maximums.
func (node *Node) Congest(latencyMs float64, packetLossPct float64) {
	node.NNetwork.LatencyMs = Clamp(node.NNetwork.LatencyMs+latencyMs, MinLatency, MaxLatency)
	node.NNetwork.PacketLossPct = Clamp(node.NNetwork.PacketLossPct+packetLossPct, 0, MaxPacketLoss)
}

func (node *Node) Id() string {
	return node.NId
}

func (node *Node) Kind() interfaces.INodeKind {
	return node.NKind
}

func (node *Node) Protocol() interfaces.IProtocol {
	return node.NProtocol
}

func (node *Node) Status() interfaces.INodeStatus {
	return node.NStatus
}

func (node *Node) SetStatus(status interfaces.INodeStatus) {
	node.NStatus = status
}

func (node *Node) IsOnline() bool {
	return node.NStatus == interfaces.ONLINE
}

func (node *Node) Version() string {
	return node.NVersion
}

func (node *Node) BlockHeight() uint64 {
	return node.NBlockHeight
}

func (node *Node) LastBlockTime() time.Time {
	return node.NLastBlockTime
}

func (node *Node) ConnectionCount() int {
	return node.NConnectionCount
}

func (node *Node) Network() NetworkMetrics {
	return node.NNetwork
}

func (node *Node) Resources() ResourceMetrics {
	return node.NResources
}

func (node *Node) IsLocal() bool {
	return node.NLocal
}

func (node *Node) SetLocal(isLocal bool) {
	node.NLocal = isLocal
}

func (node *Node) Peers() []*Node {
	return node.peers
}

// AddPeers appends peers, ignoring the node itself and peers already known.
func (node *Node) AddPeers(peers ...*Node) {
	for _, peer := range peers {
		if peer == nil || peer.Id() == node.Id() || node.ContainsPeer(peer.Id()) {
			continue
		}
		node.peers = append(node.peers, peer)
	}
}

func (node *Node) RemovePeer(peerId string) {
	for i, peer := range node.peers {
		if peer.Id() == peerId {
			node.peers = append(node.peers[:i], node.peers[i+1:]...)
			break
		}
	}
}

func (node *Node) ContainsPeer(peerId string) bool {
	for _, p := range node.peers {
		if p.Id() == peerId {
			return true
		}
	}
	return false
}
