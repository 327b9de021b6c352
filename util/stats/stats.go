package stats

import (
	"encoding/json"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
	"nodesim/ledger"
	"nodesim/network"
	"nodesim/node"
	"nodesim/world"
)

func PrintStatsOverview(simWorld *world.World, seed uint64, out io.Writer) error {
	statsOverview, err := json.Marshal(NewStatsOverview(simWorld, seed))
	if err != nil {
		return err
	}
	_, err = out.Write(statsOverview)
	return err
}

type StatsOverview struct {
	Seed                uint64               `json:"seed"`
	SimulatedTime       int64                `json:"simulatedTime"` // ns
	EventsExecuted      uint64               `json:"eventsExecuted"`
	Ticks               uint64               `json:"ticks"`
	Network             NetworkOverview      `json:"network"`
	Pool                ledger.PoolStats     `json:"pool"`
	Blocks              int                  `json:"blocks"`
	ChainHeight         uint64               `json:"chainHeight"`
	IncludedTxs         int                  `json:"includedTxs"`
	Throughput          float64              `json:"throughput"` // tx/s
	Difficulty          int64                `json:"difficulty"`
	Target              string               `json:"target"`
	MeanBlockInterval   float64              `json:"meanBlockInterval"` // s
	StdDevBlockInterval float64              `json:"stdDevBlockInterval"`
	MeanBlockFees       float64              `json:"meanBlockFees"`
	MedianLatency       float64              `json:"medianLatency"` // ms over online nodes
	P90Latency          float64              `json:"p90Latency"`
	StatsPerNode        map[string]node.Info `json:"statsPerNode"`
}

// NetworkOverview is network.Statistics with the health as plain text so the
// overview can be read back by the summary script.
type NetworkOverview struct {
	TotalNodes       int     `json:"totalNodes"`
	OnlineNodes      int     `json:"onlineNodes"`
	NetworkLoadPct   float64 `json:"networkLoadPct"`
	AvgLatency       float64 `json:"avgLatency"`
	AvgBandwidth     float64 `json:"avgBandwidth"`
	TotalConnections int     `json:"totalConnections"`
	Health           string  `json:"networkHealth"`
}

func newNetworkOverview(s network.Statistics) NetworkOverview {
	return NetworkOverview{
		TotalNodes:       s.TotalNodes,
		OnlineNodes:      s.OnlineNodes,
		NetworkLoadPct:   s.NetworkLoadPct,
		AvgLatency:       s.AvgLatency,
		AvgBandwidth:     s.AvgBandwidth,
		TotalConnections: s.TotalConnections,
		Health:           s.Health.String(),
	}
}

func NewStatsOverview(simWorld *world.World, seed uint64) *StatsOverview {
	overview := &StatsOverview{
		Seed:           seed,
		SimulatedTime:  simWorld.Time(),
		EventsExecuted: simWorld.EventsExecuted(),
		StatsPerNode:   make(map[string]node.Info),
	}

	if net := simWorld.Network(); net != nil {
		overview.Ticks = net.Ticks()
		overview.Network = newNetworkOverview(net.Statistics())
		latencies := make([]float64, 0, len(net.Nodes()))
		for _, nd := range net.Nodes() {
			overview.StatsPerNode[nd.Id()] = nd.Snapshot()
			if nd.IsOnline() {
				latencies = append(latencies, nd.Network().LatencyMs)
			}
		}
		if len(latencies) > 0 {
			sort.Float64s(latencies)
			overview.MedianLatency = stat.Quantile(0.5, stat.Empirical, latencies, nil)
			overview.P90Latency = stat.Quantile(0.9, stat.Empirical, latencies, nil)
		}
	}
	if simWorld.Pool() != nil {
		overview.Pool = simWorld.Pool().Stats()
	}

	if assembler := simWorld.Assembler(); assembler != nil {
		chain := assembler.Chain()
		overview.Blocks = chain.Len()
		overview.IncludedTxs = chain.TxCount()
		overview.Difficulty = assembler.Miner().Difficulty()
		overview.Target = assembler.Miner().Target()
		overview.ChainHeight, _ = chain.Height()
		overview.MeanBlockInterval, overview.StdDevBlockInterval = BlockIntervals(chain.Blocks(), simWorld.StartTime())
		if chain.Len() > 0 {
			fees := make([]float64, 0, chain.Len())
			for _, b := range chain.Blocks() {
				fees = append(fees, b.TotalFees())
			}
			overview.MeanBlockFees = stat.Mean(fees, nil)
		}
	}
	if seconds := float64(simWorld.Time()) / 1000000000; seconds > 0 {
		overview.Throughput = float64(overview.IncludedTxs) / seconds
	}
	return overview
}

// BlockIntervals returns mean and standard deviation in s of the time between
// consecutive blocks, the first block is measured from startTime (unix nanos).
func BlockIntervals(blocks []*ledger.Block, startTime int64) (mean float64, stdDev float64) {
	if len(blocks) == 0 {
		return 0, 0
	}
	intervals := make([]float64, 0, len(blocks))
	previous := startTime
	for _, b := range blocks {
		intervals = append(intervals, float64(b.Timestamp().UnixNano()-previous)/1000000000)
		previous = b.Timestamp().UnixNano()
	}
	if len(intervals) == 1 {
		return intervals[0], 0
	}
	return stat.MeanStdDev(intervals, nil)
}
