package events

import (
	"time"

	"nodesim/event"
	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/network"
	"nodesim/util/logger"
	"nodesim/util/metrics"
	"nodesim/util/random"
)

const WorldTargetId = "WORLD"

/*
*
event that mimics the network (some nodes) creating transactions
*/
type TxCreationEvent struct {
	interfaces.IEvent
	network *network.Network
	pool    *ledger.TxPool
}

func NewTxCreationEvent(ev interfaces.IEvent, network *network.Network, pool *ledger.TxPool) *TxCreationEvent {
	return &TxCreationEvent{ev, network, pool}
}

func (ev *TxCreationEvent) Execute(world interfaces.IWorld) {
	txPerMin := world.SimConfig().TxPerMin()

	for i := 0; i < int(txPerMin); i++ {
		randTime := random.OffsetWithin(world.Random(), 60000000000) // tx will be created in the next 60 seconds
		tx, err := ledger.GenerateTx(world.Random(), time.Unix(0, world.StartTime()+ev.Time()+randTime))
		if err != nil {
			logger.Error("tx creation failed", "error", err)
			continue
		}
		metrics.Counter(interfaces.METRIC_TX_CREATED.String(), 1)
		world.Queue().Add(NewNewTxEvent(event.NewEvent(ev.Time()+randTime, nodeOracle(ev.network, world.Random()), interfaces.NEW_TX_EVENT), ev.pool, tx))
	}
	// fire event every minute
	world.Queue().Add(NewTxCreationEvent(event.NewEvent(ev.Time()+60000000000, WorldTargetId, interfaces.TX_CREATION_EVENT), ev.network, ev.pool))
}

// nodeOracle picks the online node that receives a transaction first
func nodeOracle(net *network.Network, rng interfaces.IRandom) string {
	online := make([]string, 0, len(net.Nodes()))
	for _, nd := range net.Nodes() {
		if nd.IsOnline() {
			online = append(online, nd.Id())
		}
	}
	if len(online) == 0 {
		return WorldTargetId
	}
	return online[rng.Intn(len(online))]
}
