package node

import (
	"fmt"
	"time"
)

// Info is the flat, unrounded view of a node. Rounding is left to whoever
// displays it.
type Info struct {
	Id               string    `json:"nodeId"`
	Kind             string    `json:"nodeType"`
	Protocol         string    `json:"protocol"`
	Status           string    `json:"status"`
	Version          string    `json:"version"`
	BlockHeight      uint64    `json:"blockHeight"`
	LastBlockTime    time.Time `json:"lastBlockTime"`
	ConnectionCount  int       `json:"connectionCount"`
	BlockchainSizeGB float64   `json:"blockchainSizeGB"`
	SyncStatus       string    `json:"syncStatus"`
	IsLocal          bool      `json:"isLocal"`
	LatencyMs        float64   `json:"latencyMs"`
	BandwidthMBps    float64   `json:"bandwidthMBps"`
	PacketLossPct    float64   `json:"packetLossPct"`
	UptimePct        float64   `json:"uptimePct"`
	CpuPct           float64   `json:"cpuPct"`
	MemoryMB         float64   `json:"memoryMB"`
	DiskGB           float64   `json:"diskGB"`
	NetworkIOMBps    float64   `json:"networkIOMBps"`
	Peers            []string  `json:"peers"`
}

func (node *Node) Snapshot() Info {
	peers := make([]string, 0, len(node.peers))
	for _, p := range node.peers {
		peers = append(peers, p.Id())
	}
	return Info{
		Id:               node.NId,
		Kind:             label(node.NKind),
		Protocol:         label(node.NProtocol),
		Status:           label(node.NStatus),
		Version:          node.NVersion,
		BlockHeight:      node.NBlockHeight,
		LastBlockTime:    node.NLastBlockTime,
		ConnectionCount:  node.NConnectionCount,
		BlockchainSizeGB: node.NBlockchainSizeGB,
		SyncStatus:       node.NSyncStatus,
		IsLocal:          node.NLocal,
		LatencyMs:        node.NNetwork.LatencyMs,
		BandwidthMBps:    node.NNetwork.BandwidthMBps,
		PacketLossPct:    node.NNetwork.PacketLossPct,
		UptimePct:        node.NNetwork.UptimePct,
		CpuPct:           node.NResources.CpuPct,
		MemoryMB:         node.NResources.MemoryMB,
		DiskGB:           node.NResources.DiskGB,
		NetworkIOMBps:    node.NResources.NetworkIOMBps,
		Peers:            peers,
	}
}

func label(value fmt.Stringer) string {
	if value == nil {
		return ""
	}
	return value.String()
}
