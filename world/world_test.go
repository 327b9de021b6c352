package world

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nodesim/interfaces"
	"nodesim/util/file"
	"nodesim/util/random"
)

// countingEvent reschedules itself every step and counts its executions
type countingEvent struct {
	time   int64
	step   int64
	count  *int
	stopAt int
}

func (ev *countingEvent) Type() interfaces.IEventType { return interfaces.TICK_EVENT }
func (ev *countingEvent) TargetId() string            { return "NETWORK" }
func (ev *countingEvent) Time() int64                 { return ev.time }
func (ev *countingEvent) Execute(world interfaces.IWorld) {
	*ev.count++
	if ev.stopAt > 0 && *ev.count >= ev.stopAt {
		world.StopSim()
	}
	world.Queue().Add(&countingEvent{ev.time + ev.step, ev.step, ev.count, ev.stopAt})
}

// sliceQueue keeps events sorted by time, enough for driving the loop
type sliceQueue struct {
	events []interfaces.IEvent
	world  interfaces.IWorld
}

func (q *sliceQueue) Add(events ...interfaces.IEvent) {
	for _, ev := range events {
		if q.world != nil && ev.Time() > q.world.EndTime() {
			continue
		}
		i := len(q.events)
		for i > 0 && q.events[i-1].Time() > ev.Time() {
			i--
		}
		q.events = append(q.events[:i], append([]interfaces.IEvent{ev}, q.events[i:]...)...)
	}
}

func (q *sliceQueue) NextEvent() interfaces.IEvent {
	if len(q.events) == 0 {
		return nil
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev
}

func (q *sliceQueue) Length() int                      { return len(q.events) }
func (q *sliceQueue) CountEventTypesAndTimes() string  { return "" }
func (q *sliceQueue) SetWorld(world interfaces.IWorld) { q.world = world }

func testConfig() *file.Config {
	config := file.DefaultConfig()
	config.CStartTime = 1700000000
	config.CEndTime = 10
	return config
}

func TestStartSimRunsUntilEndTime(t *testing.T) {
	queue := &sliceQueue{}
	w := NewWorld(queue, testConfig(), random.New(1))
	queue.SetWorld(w)
	count := 0
	queue.Add(&countingEvent{0, int64(time.Second), &count, 0})

	w.StartSim()
	// 0s..10s inclusive
	assert.Equal(t, 11, count)
	assert.Equal(t, uint64(11), w.EventsExecuted())
	assert.Equal(t, int64(10*time.Second), w.Time())
	assert.Equal(t, time.Unix(1700000010, 0), w.Now())
}

func TestStopSimEndsLoopAndCancelsContext(t *testing.T) {
	queue := &sliceQueue{}
	w := NewWorld(queue, testConfig(), random.New(1))
	queue.SetWorld(w)
	count := 0
	queue.Add(&countingEvent{0, int64(time.Second), &count, 3})

	w.StartSim()
	assert.Equal(t, 3, count)
	assert.ErrorIs(t, w.Context().Err(), context.Canceled)
}

func TestNewWorldUsesRealTimeWithoutStartTime(t *testing.T) {
	config := testConfig()
	config.CStartTime = 0
	before := time.Now()
	w := NewWorld(&sliceQueue{}, config, random.New(1))
	assert.False(t, w.Now().Before(before))
}

func TestSetTimeNeverRunsBackwards(t *testing.T) {
	w := NewWorld(&sliceQueue{}, testConfig(), random.New(1))
	w.SetTime(5)
	w.SetTime(3)
	assert.Equal(t, int64(5), w.Time())
}

func TestNewNodeIds(t *testing.T) {
	w := NewWorld(&sliceQueue{}, testConfig(), random.New(1))
	require.Equal(t, "node1", w.NewNodeId())
	assert.Equal(t, "node2", w.NewNodeId())
}
