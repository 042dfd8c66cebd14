// Package global holds the state shared read-only across agent worker
// threads during the expensive task phase: world/entity data, static
// block/food metadata, path-search costs, and the pending mine-region
// queue.
package global

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
)

//go:embed data/blocks.json data/foods.json
var embeddedData embed.FS

// BlockInfo is one block id's static metadata: breaking hardness, whether
// a matching tool is required to harvest it, and which tool categories
// harvest it.
type BlockInfo struct {
	Name         string   `json:"name"`
	Hardness     float64  `json:"hardness"`
	RequiresTool bool     `json:"requiresTool"`
	HarvestTools []string `json:"harvestTools"`
	Material     string   `json:"material"`
}

// FoodInfo is one item id's food value.
type FoodInfo struct {
	Name       string  `json:"name"`
	Hunger     int32   `json:"hunger"`
	Saturation float64 `json:"saturation"`
}

// BlockData is the embedded static metadata table. It is built once at
// startup and is effectively immutable thereafter, so it may
// be shared by reference across agents without locking.
type BlockData struct {
	Blocks map[int32]BlockInfo
	Foods  map[int32]FoodInfo
}

// LoadBlockData parses the embedded block/food metadata documents. A
// decode failure here is fatal to the process.
func LoadBlockData() (*BlockData, error) {
	blocksRaw, err := embeddedData.ReadFile("data/blocks.json")
	if err != nil {
		return nil, fmt.Errorf("global: read blocks.json: %w", err)
	}
	foodsRaw, err := embeddedData.ReadFile("data/foods.json")
	if err != nil {
		return nil, fmt.Errorf("global: read foods.json: %w", err)
	}

	var blocksByStr map[string]BlockInfo
	if err := json.Unmarshal(blocksRaw, &blocksByStr); err != nil {
		return nil, fmt.Errorf("global: decode blocks.json: %w", err)
	}
	var foodsByStr map[string]FoodInfo
	if err := json.Unmarshal(foodsRaw, &foodsByStr); err != nil {
		return nil, fmt.Errorf("global: decode foods.json: %w", err)
	}

	bd := &BlockData{Blocks: make(map[int32]BlockInfo, len(blocksByStr)), Foods: make(map[int32]FoodInfo, len(foodsByStr))}
	for k, v := range blocksByStr {
		id, err := parseID(k)
		if err != nil {
			return nil, fmt.Errorf("global: block id %q: %w", k, err)
		}
		bd.Blocks[id] = v
	}
	for k, v := range foodsByStr {
		id, err := parseID(k)
		if err != nil {
			return nil, fmt.Errorf("global: food id %q: %w", k, err)
		}
		bd.Foods[id] = v
	}
	return bd, nil
}

func parseID(s string) (int32, error) {
	var id int32
	_, err := fmt.Sscanf(s, "%d", &id)
	return id, err
}

// toolMultipliers are vanilla breaking-speed multipliers by tool
// material. "hand" (no tool) always multiplies by 1.
var toolMultipliers = map[string]float64{
	"hand":      1,
	"wood":      2,
	"stone":     4,
	"iron":      6,
	"diamond":   8,
	"netherite": 9,
}

// CanHarvest reports whether a tool of toolCategory on this block would
// yield drops (the tool's material is not considered): any block not RequiresTool is always harvestable;
// otherwise the tool's category must appear in HarvestTools.
func (b BlockInfo) CanHarvest(toolCategory string) bool {
	if !b.RequiresTool {
		return true
	}
	for _, t := range b.HarvestTools {
		if t == toolCategory {
			return true
		}
	}
	return false
}

// BreakTicks computes how many ticks it takes to break this block with
// the given tool, matching vanilla's formula: ceil(hardness * divisor /
// speedMultiplier), divisor 30 when the tool can harvest the block for
// drops and 100 otherwise. Hardness 0 breaks instantly (0 ticks);
// negative hardness (bedrock and the like) is unbreakable (-1).
func (b BlockInfo) BreakTicks(toolMaterial, toolCategory string) int {
	if b.Hardness < 0 {
		return -1
	}
	if b.Hardness == 0 {
		return 0
	}
	speed := toolMultipliers[toolMaterial]
	if speed == 0 {
		speed = toolMultipliers["hand"]
	}
	divisor := 100.0
	if b.CanHarvest(toolCategory) {
		divisor = 30.0
	}
	return int(math.Ceil(b.Hardness * divisor / speed))
}
