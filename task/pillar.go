package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

type pillarPhase int

const (
	pillarCheckHead pillarPhase = iota
	pillarJumped
	pillarPlaced
	pillarSettle
)

// PillarAndMine climbs straight up one block at a time: it mines
// whatever is directly above the agent's head before jumping, then
// places a block underneath itself while airborne to stand on. It
// completes after Height ascents.
type PillarAndMine struct {
	BaseTask
	Height int

	climbed    int
	phase      pillarPhase
	mineAbove  *Mine
	startFloor world.BlockLocation
}

// NewPillarAndMine builds a PillarAndMine that climbs height blocks.
func NewPillarAndMine(height int) *PillarAndMine {
	return &PillarAndMine{Height: height}
}

func (p *PillarAndMine) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	switch p.phase {
	case pillarCheckHead:
		head := local.Sim.Location.Block().Add(0, 2, 0)
		if glob.World.GetBlockSimple(head) == world.Solid {
			if p.mineAbove == nil {
				p.mineAbove = NewMine(head)
			}
			if !p.mineAbove.Tick(out, local, glob) {
				return false
			}
			p.mineAbove = nil
		}
		p.startFloor = local.Sim.Location.Block().Add(0, -1, 0)
		local.Intent.Clear()
		local.Intent.Jump = true
		p.phase = pillarJumped
		return false

	case pillarJumped:
		local.Intent.Clear()
		p.phase = pillarPlaced
		return false

	case pillarPlaced:
		target := p.startFloor.Add(0, 1, 0)
		local.Intent.Place = &physics.PlaceIntent{Target: target, Face: physics.FaceUp}
		p.phase = pillarSettle
		return false

	default: // pillarSettle
		if !local.Sim.OnGround {
			return false
		}
		local.Intent.Clear()
		p.climbed++
		p.phase = pillarCheckHead
		return p.climbed >= p.Height
	}
}
