package network

import "nodesim/interfaces"

type Statistics struct {
	TotalNodes       int                `json:"totalNodes"`
	OnlineNodes      int                `json:"onlineNodes"`
	NetworkLoadPct   float64            `json:"networkLoadPct"`
	AvgLatency       float64            `json:"avgLatency"`
	AvgBandwidth     float64            `json:"avgBandwidth"`
	TotalConnections int                `json:"totalConnections"`
	Health           interfaces.IHealth `json:"networkHealth"`
}

// Statistics aggregates over online nodes only, averages are 0 when none is online.
func (n *Network) Statistics() Statistics {
	stats := Statistics{
		TotalNodes:     len(n.nodes),
		NetworkLoadPct: n.networkLoad / n.totalBandwidth * 100,
		Health:         interfaces.HEALTH_UNKNOWN,
	}
	if len(n.nodes) == 0 {
		return stats
	}

	latency := 0.0
	bandwidth := 0.0
	for _, nd := range n.nodes {
		if !nd.IsOnline() {
			continue
		}
		stats.OnlineNodes++
		latency += nd.Network().LatencyMs
		bandwidth += nd.Network().BandwidthMBps
		stats.TotalConnections += nd.ConnectionCount()
	}
	if stats.OnlineNodes > 0 {
		stats.AvgLatency = latency / float64(stats.OnlineNodes)
		stats.AvgBandwidth = bandwidth / float64(stats.OnlineNodes)
	}
	stats.Health = HealthLabel(float64(stats.OnlineNodes) / float64(stats.TotalNodes))
	return stats
}

// HealthLabel buckets the share of online nodes.
func HealthLabel(onlineRatio float64) interfaces.IHealth {
	switch {
	case onlineRatio >= 0.9:
		return interfaces.HEALTH_EXCELLENT
	case onlineRatio >= 0.7:
		return interfaces.HEALTH_GOOD
	case onlineRatio >= 0.5:
		return interfaces.HEALTH_FAIR
	default:
		return interfaces.HEALTH_POOR
	}
}
