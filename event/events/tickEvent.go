package events

import (
	"fmt"

	"nodesim/event"
	"nodesim/interfaces"
	"nodesim/network"
	"nodesim/util/logger"
	"nodesim/util/metrics"
)

const NetworkTargetId = "NETWORK"

/*
*
event that advances the network simulation by one tick
*/
type TickEvent struct {
	interfaces.IEvent
	network  *network.Network
	interval int64
}

func NewTickEvent(ev interfaces.IEvent, network *network.Network, interval int64) *TickEvent {
	return &TickEvent{ev, network, interval}
}

func (ev *TickEvent) Execute(world interfaces.IWorld) {
	for _, netEv := range ev.network.Tick() {
		metrics.Counter(metrics.NameFormat(interfaces.METRIC_NETWORK_EVENT, netEv.Type.String()), 1)
		if !netEv.Applied {
			continue
		}
		target := netEv.NodeId
		text := ""
		if nd, ok := ev.network.Node(netEv.NodeId); ok {
			text = fmt.Sprintf("status=%v,connections=%v", nd.Status(), nd.ConnectionCount())
		} else {
			target = NetworkTargetId
		}
		logger.AuditEvent(target, netEv.Type, "", text, ev.Time())
	}

	stats := ev.network.Statistics()
	metrics.Counter(interfaces.METRIC_TICK.String(), 1)
	metrics.FloatGauge(interfaces.METRIC_NETWORK_LOAD.String(), stats.NetworkLoadPct)
	metrics.Gauge(interfaces.METRIC_ONLINE_NODES.String(), int64(stats.OnlineNodes))
	metrics.Histogram(interfaces.METRIC_AVG_LATENCY.String(), stats.AvgLatency)
	metrics.Histogram(interfaces.METRIC_AVG_BANDWIDTH.String(), stats.AvgBandwidth)

	// fire event every tick interval
	world.Queue().Add(NewTickEvent(event.NewEvent(ev.Time()+ev.interval, NetworkTargetId, interfaces.TICK_EVENT), ev.network, ev.interval))
}
