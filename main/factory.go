package main

import (
	"fmt"
	"time"

	"nodesim/consensus"
	"nodesim/event"
	"nodesim/event/events"
	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/network"
	"nodesim/node"
	"nodesim/util/file"
	"nodesim/util/logger"
	"nodesim/util/random"
	"nodesim/world"
)

const PEER_CONNECTED_AUDIT = "PeerConnected"

func createWorldAndState(config *file.Config, rng interfaces.IRandom) (*world.World, error) {

	// create new event queue
	queue := event.NewQueue()
	simWorld := world.NewWorld(queue, config, rng)
	now := simWorld.Now()

	net := network.NewNetwork(rng, config.TotalBandwidth())

	// init nodes, the first one is the local node
	minerId := ""
	for i := 0; i < config.NodeCount(); i++ {
		nd := node.NewNode(simWorld.NewNodeId(), kindOracle(rng), protocolOracle(rng), rng, now)
		if i == 0 {
			nd.SetLocal(true)
		}
		if minerId == "" && nd.Kind() == interfaces.MINING_NODE {
			minerId = nd.Id()
		}
		if err := net.AddNode(nd); err != nil {
			return nil, fmt.Errorf("creating node %v: %w", nd.Id(), err)
		}
	}
	if minerId == "" {
		minerId = net.Nodes()[0].Id()
	}

	// init peers
	net.ConnectPeers(config.MaxPeers())
	for _, nd := range net.Nodes() {
		for _, peer := range nd.Peers() {
			logger.Audit(nd.Id(), PEER_CONNECTED_AUDIT, peer.Id(), "", 0)
		}
	}

	pool := ledger.NewTxPool(config.MaxPoolSize())
	chain := ledger.NewChain(ledger.DefaultStartHeight)
	miner := consensus.NewMiner(config.InitialDifficulty(), config.InitialTargetZeros(), config.MaxNonce(), hashratePowerOracle(rng))
	assembler := consensus.NewAssembler(pool, chain, miner, minerId, config.BlockTxLimit(), now)

	simWorld.Attach(net, pool, assembler)
	queue.SetWorld(simWorld) // assigns world to queue

	queue.Add(events.NewTickEvent(event.NewEvent(0, events.NetworkTargetId, interfaces.TICK_EVENT), net, config.TickInterval()))
	if config.SimulateTransactionCreation() {
		// init first tx creation event
		queue.Add(events.NewTxCreationEvent(event.NewEvent(0, events.WorldTargetId, interfaces.TX_CREATION_EVENT), net, pool))
	}
	queue.Add(events.NewMineEvent(event.NewEvent(random.TimeBetweenBlocks(rng, config.MeanBlockInterval()), minerId, interfaces.MINE_EVENT), assembler))

	logger.Info("init complete", "nodes", len(net.Nodes()), "miner", minerId, "start", time.Unix(0, simWorld.StartTime()).UTC())
	return simWorld, nil
}

func kindOracle(rng interfaces.IRandom) interfaces.INodeKind {
	return interfaces.NODE_KINDS[rng.Intn(len(interfaces.NODE_KINDS))]
}

func protocolOracle(rng interfaces.IRandom) interfaces.IProtocol {
	return interfaces.PROTOCOLS[rng.Intn(len(interfaces.PROTOCOLS))]
}

// between 1 and 100 MH/s
func hashratePowerOracle(rng interfaces.IRandom) float64 {
	return rng.Between(1, 100)
}
