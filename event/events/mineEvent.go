package events

import (
	"context"
	"errors"
	"fmt"

	"nodesim/consensus"
	"nodesim/event"
	"nodesim/interfaces"
	"nodesim/util/logger"
	"nodesim/util/random"
)

/*
*
event that makes the miner try to assemble the next block, rescheduled at exponentially distributed intervals
*/
type MineEvent struct {
	interfaces.IEvent
	assembler *consensus.Assembler
}

func NewMineEvent(ev interfaces.IEvent, assembler *consensus.Assembler) *MineEvent {
	return &MineEvent{ev, assembler}
}

func (ev *MineEvent) Execute(world interfaces.IWorld) {
	block, err := ev.assembler.MineBlock(world.Context(), world.Now())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		logger.Error("mining failed", "error", err, "time", ev.Time())
	}
	if block != nil {
		logger.AuditEvent(ev.assembler.MinerId(), ev.Type(), block.Hash(), fmt.Sprintf("height=%v,txs=%v,nonce=%v,difficulty=%v", block.Height(), len(block.Transactions()), block.Nonce(), block.Difficulty()), ev.Time())
	} else if err == nil {
		logger.AuditEvent(ev.assembler.MinerId(), ev.Type(), "", fmt.Sprintf("exhausted,target=%v", ev.assembler.Miner().Target()), ev.Time())
	}

	next := ev.Time() + random.TimeBetweenBlocks(world.Random(), world.SimConfig().MeanBlockInterval())
	world.Queue().Add(NewMineEvent(event.NewEvent(next, ev.assembler.MinerId(), interfaces.MINE_EVENT), ev.assembler))
}
