package interfaces

import (
	"context"
	"time"
)

type IWorld interface {
	Queue() IQueue
	Time() int64      //nanos since start
	StartTime() int64 //unix nanos
	EndTime() int64
	// Now is the simulated wall clock, StartTime plus Time.
	Now() time.Time
	// Context is cancelled when the simulation is stopped.
	Context() context.Context
	StartSim()
	StopSim()
	Random() IRandom
	SimConfig() IConfig
}
