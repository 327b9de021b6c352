package event

import (
	"nodesim/interfaces"
	"nodesim/util/logger"
)

// Event is the base of every scheduled simulation step: when it fires and which
// node, if any, it concerns. Concrete events wrap it and bring their own Execute.
type Event struct {
	time      int64
	targetId  string
	eventType interfaces.IEventType
}

func NewEvent(time int64, targetId string, eventType interfaces.IEventType) interfaces.IEvent {
	return &Event{time: time, targetId: targetId, eventType: eventType}
}

func (ev *Event) Type() interfaces.IEventType {
	return ev.eventType
}

func (ev *Event) TargetId() string {
	return ev.targetId
}

func (ev *Event) Time() int64 {
	return ev.time
}

// Execute on the bare base only logs, nothing in the simulation changes.
func (ev *Event) Execute(world interfaces.IWorld) {
	logger.Debug("event without behaviour executed", "time", ev.Time(), "type", ev.Type())
}
