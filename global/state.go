package global

import (
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/world"
)

// State is the process-wide shared state passed explicitly to the
// runtime; it is not a singleton. Mutation is confined to the main
// loop's cheap phase; workers during the expensive phase only read it.
type State struct {
	World      *world.WorldBlocks
	Entities   *entity.Registry
	Roster     *entity.PlayerRoster
	BlockData  *BlockData
	PathConfig PathConfig
	MineAlloc  *MineAlloc
}

// NewState constructs a State with freshly loaded block data and default
// path costs. pathConfigFile may be empty to skip the optional override.
func NewState(pathConfigFile string) (*State, error) {
	bd, err := LoadBlockData()
	if err != nil {
		return nil, err
	}
	pc, err := LoadPathConfig(pathConfigFile)
	if err != nil {
		return nil, err
	}
	return &State{
		World:      world.NewWorldBlocks(),
		Entities:   entity.NewRegistry(),
		Roster:     entity.NewPlayerRoster(),
		BlockData:  bd,
		PathConfig: pc,
		MineAlloc:  NewMineAlloc(),
	}, nil
}
