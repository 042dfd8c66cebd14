package global

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// PathConfig holds the pathfinder's move costs and the parkour flag. It
// has sane defaults and can optionally be overridden from a TOML file
// decoded with pelletier/go-toml.
type PathConfig struct {
	BlockWalk  float64 `toml:"block_walk"`
	Ascend     float64 `toml:"ascend"`
	Fall       float64 `toml:"fall"`
	BlockPlace float64 `toml:"block_place"`
	Parkour    bool    `toml:"parkour"`
}

// DefaultPathConfig matches the vanilla-tuned costs used throughout this
// system's pathfinder unless overridden.
func DefaultPathConfig() PathConfig {
	return PathConfig{BlockWalk: 1, Ascend: 2, Fall: 1, BlockPlace: 3, Parkour: false}
}

// LoadPathConfig returns the defaults when path does not exist, or the
// defaults overlaid with whatever the TOML file at path specifies.
func LoadPathConfig(path string) (PathConfig, error) {
	cfg := DefaultPathConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("global: read path config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("global: decode path config %s: %w", path, err)
	}
	return cfg, nil
}
