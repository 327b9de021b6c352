package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
	"nodesim/util/file"
	"nodesim/util/logger"
	"nodesim/util/stats"
)

var columns = []string{"seed", "time simulated nanos", "events", "ticks", "blocks", "chain height", "included txs", "throughput (tx/s)", "block interval mean", "block interval sd", "block fees mean", "difficulty", "online nodes", "avg latency", "median latency", "p90 latency", "avg bandwidth", "network load", "health", "pool txs", "pool utilization"}

func main() {
	log := logger.NewDefault()
	dirName := "../../out"
	if len(os.Args) < 2 {
		log.Info("using standard input dir, use './summarize[.exe] INPUT_DIR OUT_DIR' to specify one", "dir", dirName)
	} else {
		dirName = os.Args[1]
	}
	outDir := "./out"
	if len(os.Args) < 3 {
		log.Info("using standard output dir", "dir", outDir)
	} else {
		outDir = os.Args[2]
	}

	if err := summarize(dirName, outDir, log); err != nil {
		log.Error("summary failed", "error", err)
		os.Exit(1)
	}
}

func summarize(dirName string, outDir string, log *logger.Logger) error {
	overviews, err := loadOverviews(dirName, log)
	if err != nil {
		return err
	}
	if len(overviews) == 0 {
		return fmt.Errorf("no overview.json found in %v", dirName)
	}

	summaryFile, err := getOutFile(outDir, "summary.csv")
	if err != nil {
		return err
	}
	defer summaryFile.Close()
	if err = writeSummary(summaryFile, overviews); err != nil {
		return err
	}

	for _, overview := range overviews {
		nodesFile, err := getOutFile(outDir, fmt.Sprintf("%v_nodes.csv", overview.Seed))
		if err != nil {
			return err
		}
		writeNodes(nodesFile, overview)
		_ = nodesFile.Close()
	}
	log.Info("summary written", "runs", len(overviews), "dir", outDir)
	return nil
}

// loadOverviews reads one overview per seed dir, ordered by seed
func loadOverviews(dirName string, log *logger.Logger) ([]*stats.StatsOverview, error) {
	entries, err := os.ReadDir(dirName)
	if err != nil {
		return nil, err
	}
	overviews := make([]*stats.StatsOverview, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		seed, err := strconv.ParseUint(entry.Name(), 10, 64)
		if err != nil {
			continue
		}
		resultFileName := file.StatsOverviewPath(dirName, seed)
		if !file.FileExists(resultFileName) {
			log.Warn("skipping run without overview", "seed", seed)
			continue
		}
		log.Info("reading overview", "file", resultFileName)
		raw, err := os.ReadFile(resultFileName)
		if err != nil {
			return nil, err
		}
		var overview stats.StatsOverview
		if err = json.Unmarshal(raw, &overview); err != nil {
			return nil, fmt.Errorf("parsing %v: %w", resultFileName, err)
		}
		overviews = append(overviews, &overview)
	}
	sort.Slice(overviews, func(i, j int) bool { return overviews[i].Seed < overviews[j].Seed })
	return overviews, nil
}

func row(o *stats.StatsOverview) []interface{} {
	return []interface{}{o.Seed, o.SimulatedTime, o.EventsExecuted, o.Ticks, o.Blocks, o.ChainHeight, o.IncludedTxs, o.Throughput, o.MeanBlockInterval, o.StdDevBlockInterval, o.MeanBlockFees, o.Difficulty, o.Network.OnlineNodes, o.Network.AvgLatency, o.MedianLatency, o.P90Latency, o.Network.AvgBandwidth, o.Network.NetworkLoadPct, o.Network.Health, o.Pool.Count, o.Pool.UtilizationPct}
}

func writeSummary(out io.Writer, overviews []*stats.StatsOverview) error {
	if err := printLine(out, columns); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(overviews))
	for _, overview := range overviews {
		r := row(overview)
		rows = append(rows, r)
		if err := printLine(out, r); err != nil {
			return err
		}
	}

	// mean and standard deviation per numeric column over all runs
	means := []interface{}{"mean"}
	sds := []interface{}{"sd"}
	for col := 1; col < len(columns); col++ {
		values := make([]float64, 0, len(rows))
		for _, r := range rows {
			if v, ok := toFloat(r[col]); ok {
				values = append(values, v)
			}
		}
		if len(values) != len(rows) {
			means = append(means, "")
			sds = append(sds, "")
			continue
		}
		mean, sd := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			sd = 0
		}
		means = append(means, mean)
		sds = append(sds, sd)
	}
	if err := printLine(out, means); err != nil {
		return err
	}
	return printLine(out, sds)
}

func writeNodes(out io.Writer, overview *stats.StatsOverview) {
	_ = printLine(out, []string{"node", "type", "protocol", "status", "local", "connections", "latency", "bandwidth", "packet loss", "uptime", "cpu", "memory", "disk", "network io", "block height"})
	ids := make([]string, 0, len(overview.StatsPerNode))
	for id := range overview.StatsPerNode {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := overview.StatsPerNode[id]
		_ = printLine(out, []interface{}{n.Id, n.Kind, n.Protocol, n.Status, n.IsLocal, n.ConnectionCount, n.LatencyMs, n.BandwidthMBps, n.PacketLossPct, n.UptimePct, n.CpuPct, n.MemoryMB, n.DiskGB, n.NetworkIOMBps, n.BlockHeight})
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

func convert(v interface{}) string {
	switch v.(type) {
	case float64, float32:
		temp := fmt.Sprintf("%f", v)
		return strings.Replace(temp, ".", ",", -1)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func printLine[T any](out io.Writer, values []T) error {
	cells := make([]string, 0, len(values))
	for _, v := range values {
		cells = append(cells, convert(v))
	}
	_, err := fmt.Fprintf(out, "%v\n", strings.Join(cells, " ; "))
	return err
}

func getOutFile(outPath string, fileName string) (*os.File, error) {
	outFile := filepath.Join(outPath, fileName)
	if file.FileExists(outFile) {
		if err := os.Remove(outFile); err != nil {
			return nil, err
		}
	} else if err := file.EnsureOutPath(outPath); err != nil {
		return nil, err
	}
	return os.Create(outFile)
}
