package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
	"nodesim/interfaces"
	"nodesim/util/file"
	"nodesim/util/logger"
)

func main() {
	log := logger.NewDefault()
	dirName := "../../out"
	if len(os.Args) < 2 {
		log.Info("using standard input dir, use './analyze[.exe] INPUT_DIR OUT_DIR' to specify one", "dir", dirName)
	} else {
		dirName = os.Args[1]
	}
	outDir := "./out"
	if len(os.Args) < 3 {
		log.Info("using standard output dir", "dir", outDir)
	} else {
		outDir = os.Args[2]
	}

	files, err := os.ReadDir(dirName)
	if err != nil {
		log.Error("reading input dir failed", "error", err)
		os.Exit(1)
	}

	analyzed := 0
	filesMode := false // if the input dir directly contains auditLog.csv the loop runs once
	for _, f := range files {
		if filesMode {
			break
		}
		var auditLogFileName string
		var outPath string
		if f.IsDir() {
			auditLogFileName = filepath.Join(dirName, f.Name(), "auditLog.csv")
			outPath = filepath.Join(outDir, f.Name())
		} else if f.Name() == "auditLog.csv" {
			auditLogFileName = filepath.Join(dirName, f.Name())
			outPath = outDir
			filesMode = true
		} else {
			continue
		}
		if !file.FileExists(auditLogFileName) {
			log.Warn("skipping dir without audit log", "dir", f.Name())
			continue
		}

		log.Info("analyzing file", "file", auditLogFileName)
		result, err := processAuditLog(auditLogFileName)
		if err != nil {
			log.Error("analysis failed", "file", auditLogFileName, "error", err)
			os.Exit(1)
		}
		if err = PrintResult(result, outPath); err != nil {
			log.Error("writing result failed", "error", err)
			os.Exit(1)
		}
		analyzed++
	}
	if analyzed == 0 {
		log.Error("no files to process", "dir", dirName)
		os.Exit(1)
	}
}

// the result that is written to json file
type Result struct {
	TimeSimulatedNanos     int64          `json:"timeSimulated"`
	Rows                   int            `json:"rows"`
	EventCounts            map[string]int `json:"eventCounts"`
	NodeEventCounts        map[string]int `json:"nodeEventCounts"` // network events per node
	PeerLinks              int            `json:"peerLinks"`
	BlocksCount            int            `json:"blocksCount"`
	ExhaustedMiningRounds  int            `json:"exhaustedMiningRounds"`
	TxsInBlocks            int            `json:"txsInBlocks"`
	MeanTxsPerBlock        float64        `json:"meanTxsPerBlock"`
	TxAdmitted             int            `json:"txAdmitted"`
	TxRejected             int            `json:"txRejected"`
	MeanTxFee              float64        `json:"meanTxFee"`
	MeanBlockInterval      float64        `json:"meanBlockInterval"` // s
	MedianBlockInterval    float64        `json:"medianBlockInterval"`
	StdDevBlockInterval    float64        `json:"standardDeviationBlockInterval"`
	BlockIntervalHistogram Histogram      `json:"blockIntervalHistogram"`
	BlockIntervals         []float64      `json:"-"` // in mining order
}

type Histogram struct {
	Buckets        []int   `json:"buckets"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	RangePerBucket float64 `json:"rangePerBucket"`
}

// the first bucket counts values below min, the last one values from max on
func NewHistogram(min float64, max float64, rangePerBucket float64) *Histogram {
	size := int((max-min)/rangePerBucket + 2)
	return &Histogram{make([]int, size), min, max, rangePerBucket}
}

func (histogram *Histogram) AddEntry(value float64) {
	if value < histogram.Min {
		histogram.Buckets[0]++
	} else if value >= histogram.Max {
		histogram.Buckets[len(histogram.Buckets)-1]++
	} else {
		bucket := int((value-histogram.Min)/histogram.RangePerBucket) + 1
		if bucket > len(histogram.Buckets)-2 {
			bucket = len(histogram.Buckets) - 2
		}
		histogram.Buckets[bucket]++
	}
}

type auditRow struct {
	time      int64
	nodeId    string
	eventType string
	id        string
	text      string
}

func processAuditLog(fileName string) (*Result, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return analyze(f)
}

func analyze(in io.Reader) (*Result, error) {
	reader := csv.NewReader(in)
	reader.Comma = ';'
	reader.FieldsPerRecord = 6
	reader.LazyQuotes = true
	if _, err := reader.Read(); err != nil { // first line is header and not needed
		return nil, fmt.Errorf("reading header: %w", err)
	}

	result := &Result{
		EventCounts:            make(map[string]int),
		NodeEventCounts:        make(map[string]int),
		BlockIntervalHistogram: *NewHistogram(0, 3600, 300),
	}
	blockTimes := make([]float64, 0)
	fees := make([]float64, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		processAuditLogRow(row, result, &blockTimes, &fees)
	}

	// blocks are logged in mining order, the first interval starts at time 0
	intervals := make([]float64, 0, len(blockTimes))
	previous := 0.0
	for _, t := range blockTimes {
		intervals = append(intervals, t-previous)
		result.BlockIntervalHistogram.AddEntry(t - previous)
		previous = t
	}
	result.BlockIntervals = append([]float64(nil), intervals...)
	if len(intervals) > 0 {
		result.MeanBlockInterval, result.StdDevBlockInterval = stat.MeanStdDev(intervals, nil)
		if len(intervals) == 1 {
			result.StdDevBlockInterval = 0
		}
		sort.Float64s(intervals)
		result.MedianBlockInterval = stat.Quantile(0.5, stat.Empirical, intervals, nil)
		result.MeanTxsPerBlock = float64(result.TxsInBlocks) / float64(result.BlocksCount)
	}
	if len(fees) > 0 {
		result.MeanTxFee = stat.Mean(fees, nil)
	}
	return result, nil
}

func parseRow(record []string) (auditRow, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	t, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return auditRow{}, fmt.Errorf("invalid time %q: %w", record[0], err)
	}
	return auditRow{time: t, nodeId: record[1], eventType: record[2], id: record[4], text: record[5]}, nil
}

func processAuditLogRow(row auditRow, result *Result, blockTimes *[]float64, fees *[]float64) {
	result.Rows++
	result.EventCounts[row.eventType]++
	if row.time > result.TimeSimulatedNanos {
		result.TimeSimulatedNanos = row.time
	}
	fields := parseText(row.text)

	switch row.eventType {
	case interfaces.NODE_CONNECT.String(), interfaces.NODE_DISCONNECT.String():
		result.NodeEventCounts[row.nodeId]++
	case "PeerConnected":
		result.PeerLinks++
	case interfaces.MINE_EVENT.String():
		if row.id == "" {
			result.ExhaustedMiningRounds++
			return
		}
		result.BlocksCount++
		*blockTimes = append(*blockTimes, float64(row.time)/1000000000)
		if txs, err := strconv.Atoi(fields["txs"]); err == nil {
			result.TxsInBlocks += txs
		}
	case interfaces.NEW_TX_EVENT.String():
		if fields["admitted"] == "true" {
			result.TxAdmitted++
		} else {
			result.TxRejected++
		}
		if fee, err := strconv.ParseFloat(fields["fee"], 64); err == nil {
			*fees = append(*fees, fee)
		}
	}
}

// parseText splits "key=value,key=value" audit texts
func parseText(text string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Split(text, ",") {
		if key, value, ok := strings.Cut(part, "="); ok {
			fields[key] = value
		}
	}
	return fields
}

func PrintResult(result *Result, outPath string) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err = file.EnsureOutPath(outPath); err != nil {
		return err
	}
	if err = os.WriteFile(filepath.Join(outPath, "result.json"), raw, 0o644); err != nil {
		return err
	}
	return PrintIntervals(result.BlockIntervals, outPath)
}

// PrintIntervals writes one block interval in s per line, the input format of
// the fitDistribution script.
func PrintIntervals(intervals []float64, outPath string) error {
	var sb strings.Builder
	for _, interval := range intervals {
		sb.WriteString(strconv.FormatFloat(interval, 'f', -1, 64))
		sb.WriteString("\n")
	}
	return os.WriteFile(filepath.Join(outPath, "blockIntervals.txt"), []byte(sb.String()), 0o644)
}
