package interfaces

type IEvent interface {
	Time() int64
	Type() IEventType
	TargetId() string
	// Execute executes the specific event.
	Execute(world IWorld)
}

type eventType string

type IEventType interface {
	getType() eventType
	String() string
}

// this is just for preventing simple string from being used as IEventType
func (evType eventType) getType() eventType {
	return evType
}

func (evType eventType) String() string {
	return string(evType)
}

// add event types here
const (
	TICK_EVENT        = eventType("TickEvent")
	TX_CREATION_EVENT = eventType("TxCreationEvent")
	NEW_TX_EVENT      = eventType("NewTxEvent")
	MINE_EVENT        = eventType("MineEvent")
)
