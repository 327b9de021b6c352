package node

// value ranges of the metric random walk
const (
	MinLatency     = 1.0
	MaxLatency     = 500.0
	MinBandwidth   = 0.1
	MaxBandwidth   = 200.0
	MaxPacketLoss  = 100.0
	MaxUptime      = 99.9
	MinCpu         = 0.0
	MaxCpu         = 100.0
	MinMemory      = 50.0
	MaxMemory      = 4000.0
	MinNetworkIO   = 0.1
	MaxNetworkIO   = 50.0
	BlockArrivalP  = 0.10
	latencyStep    = 5.0
	bandwidthStep  = 1.0
	cpuStep        = 2.0
	memoryStep     = 10.0
	networkIOStep  = 0.5
	minBlockGrowth = 0.0005 // GB
	maxBlockGrowth = 0.002  // GB
)

type NetworkMetrics struct {
	LatencyMs     float64 `json:"latencyMs"`
	BandwidthMBps float64 `json:"bandwidthMBps"`
	PacketLossPct float64 `json:"packetLossPct"`
	UptimePct     float64 `json:"uptimePct"`
}

type ResourceMetrics struct {
	CpuPct        float64 `json:"cpuPct"`
	MemoryMB      float64 `json:"memoryMB"`
	DiskGB        float64 `json:"diskGB"`
	NetworkIOMBps float64 `json:"networkIOMBps"`
}

func Clamp(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
