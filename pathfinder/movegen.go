package pathfinder

import (
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/world"
)

// MaxFall is the deepest descend scan depth
const MaxFall = 22

// MoveKind names which transition a Move represents, mostly useful for
// tests and for the follower's drift heuristics.
type MoveKind int

const (
	MoveWalk MoveKind = iota
	MoveDescend
	MoveAscend
)

// Node is one A* search state: a block location plus the remaining
// throwaway-block budget (see SPEC_FULL.md §9). No built-in move spends
// the budget; it is carried unchanged to every successor, and Navigate
// starts every search with a budget of 0.
type Node struct {
	Loc    world.BlockLocation
	Budget int
}

// Move is one outgoing edge from a Node.
type Move struct {
	To   Node
	Cost float64
	Kind MoveKind
}

var cardinalDirs = [4]struct{ dx, dz int32 }{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// MoveGen enumerates the transitions available from a Node.
type MoveGen struct {
	World *world.WorldBlocks
	Costs global.PathConfig
}

// Generate returns every legal Move from node, or (nil, true) when a
// block needed to classify a transition lies in an unloaded chunk — the
// "Edge" sentinel telling the caller to stop the search
// and yield its best path so far.
func (g MoveGen) Generate(node Node) ([]Move, bool) {
	var moves []Move
	for _, d := range cardinalDirs {
		legLoc := node.Loc.Add(d.dx, 0, d.dz)
		headLoc := legLoc.Add(0, 1, 0)
		legApprox := g.World.GetBlock(legLoc)
		headApprox := g.World.GetBlock(headLoc)
		if !legApprox.IsRealized() || !headApprox.IsRealized() {
			return nil, true
		}
		legType := legApprox.SimpleType()
		headType := headApprox.SimpleType()
		if legType == world.Avoid || headType == world.Avoid {
			continue
		}

		legPassable := legType == world.WalkThrough || legType == world.Water
		headPassable := headType == world.WalkThrough || headType == world.Water
		if legPassable && headPassable {
			floorApprox := g.World.GetBlock(legLoc.Add(0, -1, 0))
			if !floorApprox.IsRealized() {
				return nil, true
			}
			if floorApprox.SimpleType() == world.Solid {
				moves = append(moves, Move{
					To:   Node{Loc: legLoc, Budget: node.Budget},
					Cost: g.Costs.BlockWalk,
					Kind: MoveWalk,
				})
			} else {
				mv, edge := g.descend(node, legLoc)
				if edge {
					return nil, true
				}
				if mv != nil {
					moves = append(moves, *mv)
				}
			}
		}

		mv, edge := g.ascend(node, d.dx, d.dz)
		if edge {
			return nil, true
		}
		if mv != nil {
			moves = append(moves, *mv)
		}
	}
	return moves, false
}

// descend scans downward from legLoc up to MaxFall blocks, landing on
// the first solid floor (standing one block above it) or the first
// water surface Avoid aborts the scan; falling past
// MaxFall without finding anything ("void") also aborts, both returning
// a nil move with no edge.
func (g MoveGen) descend(node Node, legLoc world.BlockLocation) (*Move, bool) {
	for dy := int32(1); dy <= MaxFall; dy++ {
		probe := legLoc.Add(0, -dy, 0)
		approx := g.World.GetBlock(probe)
		if !approx.IsRealized() {
			return nil, true
		}
		switch approx.SimpleType() {
		case world.Avoid:
			return nil, false
		case world.Solid:
			landing := probe.Add(0, 1, 0)
			return &Move{To: Node{Loc: landing, Budget: node.Budget}, Cost: g.Costs.Fall, Kind: MoveDescend}, false
		case world.Water:
			return &Move{To: Node{Loc: probe, Budget: node.Budget}, Cost: g.Costs.Fall, Kind: MoveDescend}, false
		}
	}
	return nil, false
}

// ascend jumps one block up in direction (dx,dz): the space above the
// agent's current head must be clear, the neighbor at the current foot
// level must be solid to stand on, and the neighbor's two blocks above
// that must both be clear for the new standing position.
func (g MoveGen) ascend(node Node, dx, dz int32) (*Move, bool) {
	headAbove := node.Loc.Add(0, 2, 0)
	legLoc := node.Loc.Add(dx, 0, dz)
	newFeet := node.Loc.Add(dx, 1, dz)
	newHead := node.Loc.Add(dx, 2, dz)

	haApprox := g.World.GetBlock(headAbove)
	legApprox := g.World.GetBlock(legLoc)
	nfApprox := g.World.GetBlock(newFeet)
	nhApprox := g.World.GetBlock(newHead)
	if !haApprox.IsRealized() || !legApprox.IsRealized() || !nfApprox.IsRealized() || !nhApprox.IsRealized() {
		return nil, true
	}

	if haApprox.SimpleType() == world.Avoid || legApprox.SimpleType() == world.Avoid ||
		nfApprox.SimpleType() == world.Avoid || nhApprox.SimpleType() == world.Avoid {
		return nil, false
	}
	if haApprox.SimpleType() != world.WalkThrough {
		return nil, false
	}
	if legApprox.SimpleType() != world.Solid {
		return nil, false
	}
	if nfApprox.SimpleType() != world.WalkThrough || nhApprox.SimpleType() != world.WalkThrough {
		return nil, false
	}
	return &Move{To: Node{Loc: newFeet, Budget: node.Budget}, Cost: g.Costs.Ascend, Kind: MoveAscend}, false
}
