package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
)

// MinMineLoc is the lowest y a MineColumn will descend to, staying above
// the 1.12.2 bedrock layer.
const MinMineLoc int32 = 11

// MineColumn works a vertical column downward one layer at a time,
// mining the nearest reachable block at each y via MineLayer, stopping
// once y drops below MinMineLoc.
type MineColumn struct {
	BaseTask

	started   bool
	currentY  int32
	layer     *MineLayer
}

// NewMineColumn builds a MineColumn starting from the agent's current y.
func NewMineColumn() *MineColumn { return &MineColumn{} }

func (m *MineColumn) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if !m.started {
		m.currentY = local.Sim.Location.Block().Y
		m.started = true
	}
	if m.currentY < MinMineLoc {
		return true
	}

	if m.layer == nil {
		m.layer = NewMineLayerAt(m.currentY)
	}
	if !m.layer.Tick(out, local, glob) {
		return false
	}
	m.layer = nil
	m.currentY--
	return m.currentY < MinMineLoc
}
