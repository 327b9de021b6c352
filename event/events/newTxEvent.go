package events

import (
	"fmt"

	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/util/logger"
	"nodesim/util/metrics"
)

/*
*
event that submits a created transaction to the pool
*/
type NewTxEvent struct {
	interfaces.IEvent
	pool *ledger.TxPool
	tx   *ledger.Transaction
}

func NewNewTxEvent(ev interfaces.IEvent, pool *ledger.TxPool, tx *ledger.Transaction) *NewTxEvent {
	return &NewTxEvent{ev, pool, tx}
}

func (ev *NewTxEvent) Execute(world interfaces.IWorld) {
	admitted := ev.pool.Add(ev.tx)
	if admitted {
		metrics.Counter(interfaces.METRIC_TX_ADMITTED.String(), 1)
		metrics.Histogram(interfaces.METRIC_TX_FEE.String(), ev.tx.Fee())
	} else {
		metrics.Counter(interfaces.METRIC_TX_REJECTED.String(), 1)
	}
	metrics.Gauge(interfaces.METRIC_POOL_SIZE.String(), int64(ev.pool.Len()))
	if world.SimConfig().AuditLogTxMessages() {
		logger.AuditEvent(ev.TargetId(), ev.Type(), ev.tx.Id(), fmt.Sprintf("fee=%v,admitted=%v", ev.tx.Fee(), admitted), ev.Time())
	}
}

func (ev *NewTxEvent) Tx() *ledger.Transaction {
	return ev.tx
}
