package interfaces

type IQueue interface {
	Add(events ...IEvent)
	NextEvent() IEvent
	Length() int
	CountEventTypesAndTimes() string
	SetWorld(world IWorld)
}
