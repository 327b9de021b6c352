package interfaces

type IConfig interface {
	Seed() uint64
	UseMetrics() bool
	OutPath() string
	PrintMemStats() bool
	StartTime() int64
	EndTime() int64
	NodeCount() int
	MaxPeers() int
	TickInterval() int64
	TxPerMin() uint64
	SimulateTransactionCreation() bool
	AuditLogTxMessages() bool
	MaxPoolSize() int
	BlockTxLimit() int
	TotalBandwidth() float64
	InitialDifficulty() int64
	InitialTargetZeros() int
	MaxNonce() uint64
	MeanBlockInterval() float64
}

type IRNG interface {
	Rand() float64
}

// IRandom is the single source of randomness of the simulator. Every draw of the
// engine goes through it, so a seeded implementation makes a run reproducible.
type IRandom interface {
	// Uniform returns a value in [0,1).
	Uniform() float64
	// Between returns a value in [min,max).
	Between(min float64, max float64) float64
	// Intn returns a value in [0,n), 0 if n <= 0.
	Intn(n int) int
	// Chance returns true with probability p.
	Chance(p float64) bool
	// Exponential returns an exponentially distributed value with the given mean.
	Exponential(mean float64) float64
	// Read fills p with random bytes, so the source can back uuid generation.
	Read(p []byte) (n int, err error)
}

type metricName string

type IMetricName interface {
	getMetricName() metricName
	String() string
}

// this is just for preventing simple string from being used as IMetricName
func (mName metricName) getMetricName() metricName {
	return mName
}

func (mName metricName) String() string {
	return string(mName)
}

// add metric names here
const (
	METRIC_TICK              = metricName("Tick")
	METRIC_NETWORK_EVENT     = metricName("NetworkEvent")
	METRIC_NETWORK_LOAD      = metricName("NetworkLoad")
	METRIC_ONLINE_NODES      = metricName("OnlineNodes")
	METRIC_AVG_LATENCY       = metricName("AvgLatency")
	METRIC_AVG_BANDWIDTH     = metricName("AvgBandwidth")
	METRIC_NODE_WENT_OFFLINE = metricName("NodeWentOffline")
	METRIC_PEER_ADDED        = metricName("PeerAdded")
	METRIC_TX_CREATED        = metricName("TxCreated")
	METRIC_TX_ADMITTED       = metricName("TxAdmitted")
	METRIC_TX_REJECTED       = metricName("TxRejected")
	METRIC_TX_FEE            = metricName("TxFee")
	METRIC_TX_DROPPED        = metricName("TxDropped")
	METRIC_POOL_SIZE         = metricName("PoolSize")
	METRIC_BLOCK_CREATED     = metricName("BlockCreated")
	METRIC_BLOCK_TXS         = metricName("BlockTxs")
	METRIC_BLOCK_INTERVAL    = metricName("BlockInterval")
	METRIC_MINING_TIME       = metricName("MiningTime")
	METRIC_MINING_EXHAUSTED  = metricName("MiningExhausted")
	METRIC_DIFFICULTY        = metricName("Difficulty")
	METRIC_CONNECTIVITY      = metricName("Connectivity")
	METRIC_EVENT_REAL_TIME   = metricName("EventRealTime")
)
