package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/util/connectivity"
	"nodesim/util/file"
	"nodesim/util/logger"
	"nodesim/util/metrics"
	"nodesim/util/random"
	"nodesim/world"
)

func newWatchCmd(configPath *string) *cobra.Command {
	var ticks int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Drive the simulation in real time and print the network status",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, config, ticks, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "t", 0, "Stop after this many ticks, 0 runs until interrupted")
	return cmd
}

// watcher runs the engine from cron jobs, mu serializes every engine access
type watcher struct {
	mu        sync.Mutex
	world     *world.World
	checker   *connectivity.Checker
	out       io.Writer
	realStart time.Time
	online    bool
	ticks     int
	maxTicks  int
	done      chan struct{}
	doneOnce  sync.Once
}

func newWatcher(simWorld *world.World, checker *connectivity.Checker, out io.Writer, maxTicks int) *watcher {
	return &watcher{
		world:     simWorld,
		checker:   checker,
		out:       out,
		realStart: time.Now(),
		maxTicks:  maxTicks,
		done:      make(chan struct{}),
	}
}

func watch(ctx context.Context, config *file.Config, maxTicks int, out io.Writer) error {
	// the simulated clock follows the wall clock
	config.CStartTime = 0

	l, err := setupLogger(config)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Close()
		logger.SetGlobal(nil)
	}()
	metrics.Initialize(config)

	rng := random.New(config.Seed())
	simWorld, err := createWorldAndState(config, rng)
	if err != nil {
		return err
	}
	watchConfig := config.Watch()
	checker := connectivity.NewChecker(watchConfig.ConnectivityTarget(), time.Duration(watchConfig.ConnectivityTimeout()*float64(time.Second)))
	w := newWatcher(simWorld, checker, out, maxTicks)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	jobs := []struct {
		name     string
		schedule string
		job      func()
	}{
		{"tick", watchConfig.TickEvery(), w.tick},
		{"mine", watchConfig.MineEvery(), w.mine},
		{"connectivity", watchConfig.ConnectivityEvery(), func() { w.checkConnectivity(ctx) }},
	}
	for _, j := range jobs {
		if _, err = c.AddFunc(j.schedule, j.job); err != nil {
			return fmt.Errorf("scheduling %v job %q: %w", j.name, j.schedule, err)
		}
	}

	logger.Info("watch started", "nodes", len(simWorld.Network().Nodes()), "tick", watchConfig.TickEvery(), "mine", watchConfig.MineEvery())
	c.Start()
	select {
	case <-ctx.Done():
		logger.Warn("watch interrupted")
	case <-w.done:
	}
	simWorld.StopSim()
	<-c.Stop().Done()
	logger.Info("watch ended", "ticks", w.ticks, "blocks", simWorld.Assembler().Chain().Len())
	return nil
}

func (w *watcher) advance() {
	w.world.SetTime(time.Since(w.realStart).Nanoseconds())
}

func (w *watcher) tick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.advance()

	net := w.world.Network()
	for _, netEv := range net.Tick() {
		if netEv.Applied {
			fmt.Fprintf(w.out, "  %v %v\n", netEv.Type, netEv.NodeId)
		}
	}
	if w.world.SimConfig().SimulateTransactionCreation() {
		w.createTx()
	}

	s := net.Statistics()
	fmt.Fprintf(w.out, "[%v] online %v/%v | latency %.1f ms | bandwidth %.1f MB/s | load %.1f%% | health %v | pool %v | blocks %v | internet %v\n",
		w.world.Now().Format("15:04:05"), s.OnlineNodes, s.TotalNodes, s.AvgLatency, s.AvgBandwidth, s.NetworkLoadPct, s.Health,
		w.world.Pool().Len(), w.world.Assembler().Chain().Len(), w.online)

	w.ticks++
	if w.maxTicks > 0 && w.ticks >= w.maxTicks {
		w.doneOnce.Do(func() { close(w.done) })
	}
}

func (w *watcher) createTx() {
	tx, err := ledger.GenerateTx(w.world.Random(), w.world.Now())
	if err != nil {
		logger.Error("tx creation failed", "error", err)
		return
	}
	metrics.Counter(interfaces.METRIC_TX_CREATED.String(), 1)
	if !w.world.Pool().Add(tx) {
		metrics.Counter(interfaces.METRIC_TX_REJECTED.String(), 1)
		return
	}
	metrics.Counter(interfaces.METRIC_TX_ADMITTED.String(), 1)
}

func (w *watcher) mine() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.advance()

	assembler := w.world.Assembler()
	block, err := assembler.MineBlock(w.world.Context(), w.world.Now())
	switch {
	case err != nil:
		logger.Debug("mining stopped", "error", err)
	case block == nil:
		fmt.Fprintf(w.out, "  no nonce found, difficulty now %v\n", assembler.Miner().Difficulty())
	default:
		fmt.Fprintf(w.out, "  block %v mined by %v: %v txs, nonce %v, hash %.16s\n", block.Height(), block.Miner(), len(block.Transactions()), block.Nonce(), block.Hash())
	}
}

func (w *watcher) checkConnectivity(ctx context.Context) {
	online := w.checker.Check(ctx)
	w.mu.Lock()
	defer w.mu.Unlock()
	if online != w.online {
		logger.Info("connectivity changed", "target", w.checker.Target(), "online", online)
	}
	w.online = online
}
