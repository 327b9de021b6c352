package network

import (
	"fmt"
	"time"

	"nodesim/interfaces"
	"nodesim/node"
	"nodesim/util/logger"
	"nodesim/util/metrics"
)

const DefaultTotalBandwidth = 1000.0 // MB/s

// Event is one network event applied during a tick. Applied is false when the
// event had no effect, a disconnect that kept the node online for example.
type Event struct {
	Type    interfaces.INetworkEventType `json:"type"`
	NodeId  string                       `json:"nodeId,omitempty"`
	Applied bool                         `json:"applied"`
}

type Network struct {
	nodes          []*node.Node
	index          map[string]*node.Node
	networkLoad    float64
	totalBandwidth float64
	rng            interfaces.IRandom
	clock          func() time.Time
	ticks          uint64
}

func NewNetwork(rng interfaces.IRandom, totalBandwidth float64) *Network {
	if totalBandwidth <= 0 {
		totalBandwidth = DefaultTotalBandwidth
	}
	return &Network{
		nodes:          make([]*node.Node, 0, 10),
		index:          make(map[string]*node.Node),
		totalBandwidth: totalBandwidth,
		rng:            rng,
		clock:          time.Now,
	}
}

// SetClock replaces the wall clock used for block arrival times.
func (n *Network) SetClock(clock func() time.Time) {
	n.clock = clock
}

func (n *Network) AddNode(nd *node.Node) error {
	if _, ok := n.index[nd.Id()]; ok {
		return fmt.Errorf("%w: %v", interfaces.ErrDuplicateNode, nd.Id())
	}
	n.nodes = append(n.nodes, nd)
	n.index[nd.Id()] = nd
	return nil
}

func (n *Network) Node(id string) (*node.Node, bool) {
	nd, ok := n.index[id]
	return nd, ok
}

// Nodes returns the nodes in registration order.
func (n *Network) Nodes() []*node.Node {
	return n.nodes
}

func (n *Network) NetworkLoad() float64 {
	return n.networkLoad
}

func (n *Network) TotalBandwidth() float64 {
	return n.totalBandwidth
}

func (n *Network) Ticks() uint64 {
	return n.ticks
}

// ConnectPeers gives every node min(maxPeers, n-1) distinct peers other than itself.
func (n *Network) ConnectPeers(maxPeers int) {
	for _, localNode := range n.nodes {
		for _, remoteNode := range PeerOracle(localNode.Id(), n.nodes, maxPeers, n.rng) {
			if !localNode.ContainsPeer(remoteNode.Id()) {
				metrics.Counter(metrics.NameFormat(interfaces.METRIC_PEER_ADDED, localNode.Id()), 1)
				metrics.Counter(interfaces.METRIC_PEER_ADDED.String(), 1)
				localNode.AddPeers(remoteNode)
			}
		}
	}
}

// PeerOracle samples up to count distinct nodes other than nodeId.
func PeerOracle(nodeId string, nodes []*node.Node, count int, rng interfaces.IRandom) []*node.Node {
	candidates := make([]*node.Node, 0, len(nodes))
	for _, nd := range nodes {
		if nd.Id() != nodeId {
			candidates = append(candidates, nd)
		}
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	if count <= 0 {
		return nil
	}
	// partial fisher-yates, the first count entries are the sample
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count]
}

// Tick advances every node by one metric step, recomputes the network load and
// injects one to three random network events.
func (n *Network) Tick() []Event {
	now := n.clock()
	n.ticks++
	for _, nd := range n.nodes {
		nd.UpdateMetrics(now)
	}

	totalIO := 0.0
	for _, nd := range n.nodes {
		totalIO += nd.Resources().NetworkIOMBps
	}
	n.networkLoad = totalIO
	if n.networkLoad > n.totalBandwidth {
		n.networkLoad = n.totalBandwidth
	}

	eventCount := 1 + n.rng.Intn(3)
	events := make([]Event, 0, eventCount)
	for i := 0; i < eventCount; i++ {
		eventType := interfaces.NETWORK_EVENT_TYPES[n.rng.Intn(len(interfaces.NETWORK_EVENT_TYPES))]
		if ev, ok := n.applyEvent(eventType); ok {
			events = append(events, ev)
		}
	}
	logger.Debug("network tick", "tick", n.ticks, "load", n.networkLoad, "events", len(events))
	return events
}

func (n *Network) applyEvent(eventType interfaces.INetworkEventType) (Event, bool) {
	switch eventType {
	case interfaces.NODE_CONNECT:
		nd := n.nodeOracle()
		if nd == nil {
			return Event{}, false
		}
		nd.Connect()
		return Event{Type: eventType, NodeId: nd.Id(), Applied: true}, true
	case interfaces.NODE_DISCONNECT:
		nd := n.nodeOracle()
		if nd == nil {
			return Event{}, false
		}
		if n.rng.Chance(0.1) {
			nd.Disconnect()
			metrics.Counter(interfaces.METRIC_NODE_WENT_OFFLINE.String(), 1)
			return Event{Type: eventType, NodeId: nd.Id(), Applied: true}, true
		}
		return Event{Type: eventType, NodeId: nd.Id(), Applied: false}, true
	case interfaces.NETWORK_CONGESTION:
		for _, nd := range n.nodes {
			nd.Congest(n.rng.Between(10, 50), n.rng.Between(0.1, 1.0))
		}
		return Event{Type: eventType, Applied: len(n.nodes) > 0}, true
	default:
		return Event{}, false
	}
}

func (n *Network) nodeOracle() *node.Node {
	if len(n.nodes) == 0 {
		return nil
	}
	return n.nodes[n.rng.Intn(len(n.nodes))]
}
