package world

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"nodesim/consensus"
	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/network"
	"nodesim/util/logger"
	"nodesim/util/metrics"
)

type World struct {
	queue               interfaces.IQueue
	WTime               int64 `json:"worldTime"` // nanos since sim start
	WStartTime          int64 `json:"startTime"` // unix nanos
	endTime             int64
	WNetwork            *network.Network     `json:"-"`
	WPool               *ledger.TxPool       `json:"-"`
	WAssembler          *consensus.Assembler `json:"-"`
	rng                 interfaces.IRandom
	ctx                 context.Context
	cancel              context.CancelFunc
	eventsExecutedCount uint64
	nodeIdCount         uint64
	simConfig           interfaces.IConfig
	printMemStats       bool
	simStopped          bool
}

// NewWorld creates a world whose simulated clock starts at the configured start
// time, or at the current real time if none is configured.
func NewWorld(queue interfaces.IQueue, simConfig interfaces.IConfig, rng interfaces.IRandom) *World {
	startTime := simConfig.StartTime()
	if startTime == 0 {
		startTime = time.Now().UnixNano()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &World{queue: queue, WTime: 0, WStartTime: startTime, endTime: simConfig.EndTime(), rng: rng, ctx: ctx, cancel: cancel, simConfig: simConfig, printMemStats: simConfig.PrintMemStats()}
}

func (world *World) Queue() interfaces.IQueue {
	return world.queue
}

func (world *World) Time() int64 {
	return world.WTime
}

// SetTime moves the clock for drivers that run outside of the event loop. The
// clock never runs backwards.
func (world *World) SetTime(t int64) {
	if t > world.WTime {
		world.WTime = t
	}
}

func (world *World) StartTime() int64 {
	return world.WStartTime
}

func (world *World) EndTime() int64 {
	return world.endTime
}

func (world *World) Now() time.Time {
	return time.Unix(0, world.WStartTime+world.WTime)
}

func (world *World) Context() context.Context {
	return world.ctx
}

func (world *World) Random() interfaces.IRandom {
	return world.rng
}

func (world *World) SimConfig() interfaces.IConfig {
	return world.simConfig
}

func (world *World) EventsExecuted() uint64 {
	return world.eventsExecutedCount
}

func (world *World) Network() *network.Network {
	return world.WNetwork
}

func (world *World) Pool() *ledger.TxPool {
	return world.WPool
}

func (world *World) Assembler() *consensus.Assembler {
	return world.WAssembler
}

// Attach wires the simulated components into the world.
func (world *World) Attach(net *network.Network, pool *ledger.TxPool, assembler *consensus.Assembler) {
	world.WNetwork = net
	world.WPool = pool
	world.WAssembler = assembler
	net.SetClock(world.Now)
}

func (world *World) NewNodeId() string {
	world.nodeIdCount++
	return fmt.Sprintf("node%v", world.nodeIdCount)
}

// StopSim ends the event loop after the current event and cancels running mining.
func (world *World) StopSim() {
	world.simStopped = true
	world.cancel()
}

func (world *World) StartSim() {
	realStart := time.Now()
	logger.Info("sim started", "realTime", realStart, "simStart", time.Unix(0, world.StartTime()))
	// (while) loop through events until finished
	var ev interfaces.IEvent
	if world.printMemStats {
		fmt.Printf("\tTime \t\t\t\t Events(Queue) \t\t\t\t Heap Alloc GiB \t\t Sys Memory GiB \t NumGarbageCollectionCycles\n")
	}
	for world.Queue().Length() > 0 && world.endTime >= world.Time() && !world.simStopped {
		startTime := time.Now().UnixNano()
		ev = world.Queue().NextEvent()
		if ev == nil {
			break
		}
		metrics.Timer(metrics.NameFormat(interfaces.METRIC_EVENT_REAL_TIME, "FoundEvent_Mus"), time.Duration((time.Now().UnixNano()-startTime)/1000))
		startTime = time.Now().UnixNano()
		if world.endTime >= ev.Time() {
			world.WTime = ev.Time()
			ev.Execute(world)
			world.eventsExecutedCount++
			metrics.Timer(metrics.NameFormat(interfaces.METRIC_EVENT_REAL_TIME, fmt.Sprintf("%v_Mus", ev.Type())), time.Duration((time.Now().UnixNano()-startTime)/1000))
		} else {
			break
		}
		if world.printMemStats && world.eventsExecutedCount%1000 == 0 {
			printMemUsage(false, world, world.Queue().Length())
		}
		if world.printMemStats && world.Queue().Length() > 50000 && world.eventsExecutedCount%100000 == 0 {
			logger.Info("queue content", "counts", world.Queue().CountEventTypesAndTimes())
		}
	}
	if world.printMemStats {
		fmt.Printf("\n")
		printMemUsage(true, world, world.Queue().Length())
	}
	logger.Info("sim ended", "worldTime", time.Duration(world.Time()), "realTime", time.Since(realStart), "events", world.eventsExecutedCount, "stopped", world.simStopped)
}

func printMemUsage(toLogger bool, world *World, queueLength int) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if toLogger {
		logger.Info("memory usage", "heapAllocGiB", bToGb(m.Alloc), "totalHeapAllocGiB", bToGb(m.TotalAlloc), "sysGiB", bToGb(m.Sys), "numGC", m.NumGC)
	} else {
		fmt.Printf("\r%20v \t\t %25s \t\t\t %10.3f \t\t\t %10.3f \t\t %10d", time.Duration(world.Time()), fmt.Sprintf("%v(%v)", world.eventsExecutedCount, queueLength), bToGb(m.Alloc), bToGb(m.Sys), m.NumGC)
	}
}

func bToGb(b uint64) float64 {
	return float64(b) / 1024 / 1024 / 1024
}
