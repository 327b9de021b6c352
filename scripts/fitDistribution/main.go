package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"nodesim/interfaces"
	"nodesim/util/file"
	"nodesim/util/logger"
)

// fits candidate distributions to observed values, e.g. the blockIntervals.txt
// written by the analyze script, by minimizing the Kolmogorov-Smirnov distance
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Please use format './fitDistribution[.exe] FILE_PATH|DIR_PATH [OUT_DIR] [SAMPLES_COUNT:int] [SEED:int]' on command line.")
		os.Exit(1)
	}
	fileName := os.Args[1]
	outDir := "./out"
	if len(os.Args) >= 3 {
		outDir = os.Args[2]
	}
	samplesCount := 1000 // amount of samples drawn at each distribution check
	seed := uint64(0)
	var err error
	if len(os.Args) >= 4 {
		samplesCount, err = strconv.Atoi(os.Args[3])
	}
	if err == nil && len(os.Args) >= 5 {
		seed, err = strconv.ParseUint(os.Args[4], 10, 64)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fileNames := []string{fileName}
	if !file.FileExists(fileName) {
		if fileNames, err = filepath.Glob(filepath.Join(fileName, "*.txt")); err != nil || len(fileNames) == 0 {
			fmt.Printf("no .txt files to process in %v\n", fileName)
			os.Exit(1)
		}
	}
	for _, name := range fileNames {
		if err = processSingle(name, samplesCount, seed, outDir); err != nil {
			fmt.Printf("fitting %v failed: %v\n", name, err)
			os.Exit(1)
		}
	}
}

type Result struct {
	BestF      float64
	BestParams []float64
	Name       string
}

type Job struct {
	Name    string
	Problem optimize.Problem
	Start   []float64
}

// candidates in the order they are reported
var candidates = []string{"exp", "gamma", "lognorm", "weibull", "norm"}

func processSingle(fileName string, samplesCount int, seed uint64, outPath string) error {
	if err := file.EnsureOutPath(outPath); err != nil {
		return err
	}
	log, err := logger.New(&logger.Config{
		Level:          "info",
		FilePath:       filepath.Join(outPath, "result_"+strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))+".log"),
		PrintToConsole: true,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	values, err := readValues(fileName)
	if err != nil {
		return err
	}
	log.Info("read values", "count", len(values), "file", fileName)

	results, err := fit(values, samplesCount, seed)
	if err != nil {
		return err
	}
	for _, name := range candidates {
		if res, ok := results[name]; ok {
			log.Info("fitted", "distribution", name, "F", res.BestF, "params", res.BestParams)
		}
	}
	best := bestResult(results)
	log.Info("best suiting distribution", "distribution", best.Name, "F", best.BestF, "params", best.BestParams)
	log.Info("samples from winner", "samples", samplesOfWinner(best, 20, seed))
	return nil
}

func readValues(fileName string) ([]float64, error) {
	inFile, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	values := make([]float64, 0, 100)
	scanner := bufio.NewScanner(inFile)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", fileName, err)
		}
		values = append(values, val)
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%v: need at least 2 values, got %v", fileName, len(values))
	}
	sort.Float64s(values)
	return values, nil
}

// fit runs one job per candidate on a worker per cpu
func fit(values []float64, samplesCount int, seed uint64) (map[string]*Result, error) {
	mean, sd := stat.MeanStdDev(values, nil)
	if mean <= 0 || sd <= 0 {
		return nil, fmt.Errorf("values need a positive mean and spread, got mean %v sd %v", mean, sd)
	}
	values = append([]float64(nil), values...)
	sort.Float64s(values)

	resultC := make(chan *Result, len(candidates))
	workerC := make(chan *Job)
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		go doWork(workerC, resultC)
	}
	for _, name := range candidates {
		workerC <- &Job{name, getProblem(name, seed, values, samplesCount), startParams(name, mean, sd)}
	}
	close(workerC)

	results := make(map[string]*Result, len(candidates))
	for range candidates {
		res := <-resultC
		results[res.Name] = res
	}
	return results, nil
}

func doWork(workerC <-chan *Job, resultC chan<- *Result) {
	for job := range workerC {
		resultC <- getBestResult(job)
	}
}

// startParams uses the method of moments
func startParams(name string, mean float64, sd float64) []float64 {
	variance := sd * sd
	switch name {
	case "exp":
		return []float64{1 / mean}
	case "gamma":
		return []float64{mean * mean / variance, mean / variance}
	case "lognorm":
		sigma2 := math.Log(1 + variance/(mean*mean))
		return []float64{math.Log(mean) - sigma2/2, math.Sqrt(sigma2)}
	case "weibull":
		return []float64{1, mean}
	default:
		return []float64{mean, sd}
	}
}

// dist returns false for parameters outside of the distribution's domain
func dist(name string, x []float64, source rand.Source) (interfaces.IRNG, bool) {
	switch name {
	case "exp":
		return distuv.Exponential{Rate: x[0], Src: source}, x[0] > 0
	case "gamma":
		return distuv.Gamma{Alpha: x[0], Beta: x[1], Src: source}, x[0] > 0 && x[1] > 0
	case "lognorm":
		return distuv.LogNormal{Mu: x[0], Sigma: x[1], Src: source}, x[1] > 0
	case "weibull":
		return distuv.Weibull{K: x[0], Lambda: x[1], Src: source}, x[0] > 0 && x[1] > 0
	case "norm":
		return distuv.Normal{Mu: x[0], Sigma: x[1], Src: source}, x[1] > 0
	}
	return nil, false
}

// every evaluation draws from a fresh source with the same seed, so the
// objective is deterministic in x
func getProblem(distName string, seed uint64, values []float64, samplesCount int) optimize.Problem {
	return optimize.Problem{
		Func: func(x []float64) float64 {
			rng, ok := dist(distName, x, rand.NewSource(seed))
			if !ok {
				return math.MaxFloat64
			}
			samples := make([]float64, 0, samplesCount)
			for i := 0; i < samplesCount; i++ {
				samples = append(samples, rng.Rand())
			}
			sort.Float64s(samples)
			ks := stat.KolmogorovSmirnov(values, nil, samples, nil)
			if math.IsNaN(ks) {
				ks = math.MaxFloat64
			}
			return ks
		},
	}
}

func getBestResult(job *Job) *Result {
	best := &Result{BestF: job.Problem.Func(job.Start), BestParams: job.Start, Name: job.Name}
	result, err := optimize.Minimize(job.Problem, job.Start, &optimize.Settings{Converger: &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 100}}, &optimize.NelderMead{})
	if err == nil && result.F < best.BestF {
		best.BestF = result.F
		best.BestParams = result.X
	}
	return best
}

func bestResult(results map[string]*Result) *Result {
	best := &Result{BestF: math.MaxFloat64}
	for _, name := range candidates {
		if res, ok := results[name]; ok && res.BestF < best.BestF {
			best = res
		}
	}
	return best
}

func samplesOfWinner(best *Result, n int, seed uint64) []float64 {
	rng, ok := dist(best.Name, best.BestParams, rand.NewSource(seed))
	if !ok {
		return nil
	}
	samples := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, rng.Rand())
	}
	return samples
}
