package task

import (
	"time"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
)

// Delay completes after n ticks have elapsed.
type Delay struct {
	BaseTask
	remaining int
}

// NewDelay builds a Delay task lasting n ticks. n<=0 completes on its
// first Tick.
func NewDelay(n int) *Delay {
	return &Delay{remaining: n}
}

func (d *Delay) Tick(*agent.OutQueue, *agent.LocalState, *global.State) bool {
	if d.remaining <= 0 {
		return true
	}
	d.remaining--
	return d.remaining <= 0
}

var _ Task = (*Delay)(nil)

// tickDuration is the runtime's fixed tick period; no task in this
// package currently reads it.
const tickDuration = 50 * time.Millisecond
