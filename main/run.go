package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"nodesim/util/file"
	"nodesim/util/logger"
	"nodesim/util/metrics"
	"nodesim/util/random"
	"nodesim/util/stats"
	"nodesim/world"
)

func newRunCmd(configPath *string) *cobra.Command {
	var runs int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the discrete event simulation once per seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("runs must be at least 1, got %v", runs)
			}
			config, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runSeeds(config, runs)
		},
	}
	cmd.Flags().IntVarP(&runs, "runs", "n", 1, "Number of runs, each with the next seed")
	return cmd
}

func runSeeds(config *file.Config, runs int) error {
	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt)
	defer signal.Stop(interruptChan)

	initialSeed := config.Seed()
	simShouldStop := make(chan struct{})
	for i := initialSeed; i < initialSeed+uint64(runs); i++ {
		select {
		case <-simShouldStop:
			return nil
		default:
		}
		config.CSeed = i
		if err := runSeed(config, interruptChan, simShouldStop); err != nil {
			return fmt.Errorf("run with seed %v: %w", i, err)
		}
	}
	return nil
}

func runSeed(config *file.Config, interruptChan chan os.Signal, simShouldStop chan struct{}) error {
	// init logger
	l, err := setupLogger(config)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Close()
		logger.SetGlobal(nil)
	}()

	// init audit logger
	auditLoggerFile, err := file.AuditLoggerFile(config)
	if err != nil {
		return err
	}
	logger.InitAuditLogger(auditLoggerFile, config.PrintAuditLogToConsole())
	defer func() {
		logger.CloseAuditLogger()
		_ = auditLoggerFile.Close()
	}()

	// init packages
	rng := random.New(config.Seed())
	metrics.Initialize(config)

	// init world
	simWorld, err := createWorldAndState(config, rng)
	if err != nil {
		return err
	}

	stopListeningForInterruptChan := make(chan bool, 1)
	go func() {
		select {
		case <-interruptChan:
			fmt.Println()
			logger.Warn("sim interrupted", "seed", config.Seed())
			close(simShouldStop)
			simWorld.StopSim()
		case <-stopListeningForInterruptChan:
		}
	}()

	// start sim
	simWorld.StartSim()
	stopListeningForInterruptChan <- true

	return writeResults(config, simWorld, rng)
}

func writeResults(config *file.Config, simWorld *world.World, rng *random.Random) error {
	// write metrics to file if needed
	if config.UseMetrics() {
		f, err := file.MetricsFile(config)
		if err != nil {
			return err
		}
		metrics.WriteToFile(f)
		_ = f.Close()
	}

	// print stats to file
	f, err := file.StatsOverviewFile(config)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = stats.PrintStatsOverview(simWorld, config.Seed(), f); err != nil {
		return fmt.Errorf("writing overview: %w", err)
	}

	// just for testing of determinism
	rng.PrintCount()
	return nil
}
