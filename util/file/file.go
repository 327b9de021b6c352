package file

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	CSeed                        uint64       `yaml:"seed"`
	CUseMetrics                  bool         `yaml:"useMetrics"`
	COutPath                     string       `yaml:"outPath" validate:"required"`
	CLogLevel                    string       `yaml:"logLevel" validate:"oneof=debug info warn error"`
	CPrintLogToConsole           bool         `yaml:"printLogToConsole"`
	CPrintAuditLogToConsole      bool         `yaml:"printAuditLogToConsole"`
	CPrintMemStats               bool         `yaml:"printMemStats"`
	CStartTime                   int64        `yaml:"startTime" validate:"gte=0"` // unix s, 0 uses the real start time
	CEndTime                     int64        `yaml:"endTime" validate:"gt=0"`    // in s of simulated time
	CNodeCount                   int          `yaml:"nodeCount" validate:"gte=1"`
	CMaxPeers                    int          `yaml:"maxPeers" validate:"gte=0"`
	CTickInterval                float64      `yaml:"tickInterval" validate:"gt=0"` // in s
	CTxPerMin                    uint64       `yaml:"txPerMin"`
	CSimulateTransactionCreation bool         `yaml:"simulateTransactionCreation"`
	CAuditLogTxMessages          bool         `yaml:"auditLogTxMessages"`
	CMaxPoolSize                 int          `yaml:"maxPoolSize" validate:"gte=1"`
	CBlockTxLimit                int          `yaml:"blockTxLimit" validate:"gte=1"`
	CTotalBandwidth              float64      `yaml:"totalBandwidth" validate:"gt=0"` // MB/s
	CInitialDifficulty           int64        `yaml:"initialDifficulty" validate:"gte=1"`
	CInitialTargetZeros          int          `yaml:"initialTargetZeros" validate:"gte=0,lte=64"`
	CMaxNonce                    uint64       `yaml:"maxNonce" validate:"gte=1"`
	CMeanBlockInterval           float64      `yaml:"meanBlockInterval" validate:"gt=0"` // in s
	CWatch                       *WatchConfig `yaml:"watch" validate:"required"`
}

// WatchConfig configures the real-time driver.
type WatchConfig struct {
	CTickEvery           string  `yaml:"tickEvery" validate:"required"`
	CMineEvery           string  `yaml:"mineEvery" validate:"required"`
	CConnectivityEvery   string  `yaml:"connectivityEvery" validate:"required"`
	CConnectivityTarget  string  `yaml:"connectivityTarget" validate:"required,hostname_port"`
	CConnectivityTimeout float64 `yaml:"connectivityTimeout" validate:"gt=0"` // in s
}

// DefaultConfig returns the values LoadConfig starts from, a file only needs to
// name what it changes.
func DefaultConfig() *Config {
	return &Config{
		CSeed:                        1,
		CUseMetrics:                  true,
		COutPath:                     "out",
		CLogLevel:                    "info",
		CEndTime:                     21600,
		CNodeCount:                   10,
		CMaxPeers:                    3,
		CTickInterval:                1,
		CTxPerMin:                    20,
		CSimulateTransactionCreation: true,
		CMaxPoolSize:                 10000,
		CBlockTxLimit:                5,
		CTotalBandwidth:              1000,
		CInitialDifficulty:           1000000,
		CInitialTargetZeros:          4,
		CMaxNonce:                    1000000,
		CMeanBlockInterval:           600,
		CWatch: &WatchConfig{
			CTickEvery:           "@every 1s",
			CMineEvery:           "@every 30s",
			CConnectivityEvery:   "@every 5s",
			CConnectivityTarget:  "8.8.8.8:53",
			CConnectivityTimeout: 3,
		},
	}
}

func (config *Config) Seed() uint64 {
	return config.CSeed
}

func (config *Config) UseMetrics() bool {
	return config.CUseMetrics
}

func (config *Config) OutPath() string {
	return config.COutPath
}

func (config *Config) LogLevel() string {
	return config.CLogLevel
}

func (config *Config) PrintLogToConsole() bool {
	return config.CPrintLogToConsole
}

func (config *Config) PrintAuditLogToConsole() bool {
	return config.CPrintAuditLogToConsole
}

func (config *Config) PrintMemStats() bool {
	return config.CPrintMemStats
}

// StartTime in unix nanos, 0 if unset
func (config *Config) StartTime() int64 {
	return config.CStartTime * 1000000000
}

// EndTime in nanos since sim start
func (config *Config) EndTime() int64 {
	return config.CEndTime * 1000000000
}

func (config *Config) NodeCount() int {
	return config.CNodeCount
}

func (config *Config) MaxPeers() int {
	return config.CMaxPeers
}

// TickInterval in nanos
func (config *Config) TickInterval() int64 {
	return int64(config.CTickInterval * 1000000000)
}

func (config *Config) TxPerMin() uint64 {
	return config.CTxPerMin
}

func (config *Config) SimulateTransactionCreation() bool {
	return config.CSimulateTransactionCreation
}

func (config *Config) AuditLogTxMessages() bool {
	return config.CAuditLogTxMessages
}

func (config *Config) MaxPoolSize() int {
	return config.CMaxPoolSize
}

func (config *Config) BlockTxLimit() int {
	return config.CBlockTxLimit
}

func (config *Config) TotalBandwidth() float64 {
	return config.CTotalBandwidth
}

func (config *Config) InitialDifficulty() int64 {
	return config.CInitialDifficulty
}

func (config *Config) InitialTargetZeros() int {
	return config.CInitialTargetZeros
}

func (config *Config) MaxNonce() uint64 {
	return config.CMaxNonce
}

// MeanBlockInterval in s
func (config *Config) MeanBlockInterval() float64 {
	return config.CMeanBlockInterval
}

func (config *Config) Watch() *WatchConfig {
	return config.CWatch
}

func (config *WatchConfig) TickEvery() string {
	return config.CTickEvery
}

func (config *WatchConfig) MineEvery() string {
	return config.CMineEvery
}

func (config *WatchConfig) ConnectivityEvery() string {
	return config.CConnectivityEvery
}

func (config *WatchConfig) ConnectivityTarget() string {
	return config.CConnectivityTarget
}

func (config *WatchConfig) ConnectivityTimeout() float64 {
	return config.CConnectivityTimeout
}

// LoadConfig reads a yaml file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %v: %w", path, err)
	}
	if err = yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("parsing config %v: %w", path, err)
	}
	return config, nil
}

func seedDir(config *Config) string {
	return fmt.Sprintf("%v/%v", config.OutPath(), config.Seed())
}

// LoggerFilePath is handed to the log rotator, which opens the file itself.
func LoggerFilePath(config *Config) (string, error) {
	outFile := fmt.Sprintf("%v/log.txt", seedDir(config))
	if err := removeIfExists(outFile); err != nil {
		return "", err
	}
	return outFile, EnsureOutPath(seedDir(config))
}

func StatsOverviewFile(config *Config) (*os.File, error) {
	return createOutFile(config, "overview.json")
}

func MetricsFile(config *Config) (*os.File, error) {
	return createOutFile(config, "metrics.json")
}

func AuditLoggerFile(config *Config) (*os.File, error) {
	return createOutFile(config, "auditLog.csv")
}

func StatsOverviewPath(outPath string, seed uint64) string {
	return fmt.Sprintf("%v/%v/overview.json", outPath, seed)
}

func createOutFile(config *Config, name string) (*os.File, error) {
	outFile := fmt.Sprintf("%v/%v", seedDir(config), name)
	if err := removeIfExists(outFile); err != nil {
		return nil, err
	}
	if err := EnsureOutPath(seedDir(config)); err != nil {
		return nil, err
	}
	outputFile, err := os.Create(outFile)
	if err != nil {
		return nil, fmt.Errorf("creating %v: %w", outFile, err)
	}
	return outputFile, nil
}

func removeIfExists(filename string) error {
	if FileExists(filename) {
		if err := os.Remove(filename); err != nil {
			return fmt.Errorf("removing %v: %w", filename, err)
		}
	}
	return nil
}

func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func EnsureOutPath(outPath string) error {
	_, err := os.Stat(outPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(outPath, os.ModePerm)
	}
	return err
}
