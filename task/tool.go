package task

// toolInfo is one item id's tool metadata: the material tier used to look
// up BlockData's tool multiplier, and the harvest category BlockInfo's
// HarvestTools entries are expressed in.
type toolInfo struct {
	material string
	category string
}

// toolItems maps vanilla 1.12.2 item ids to their tool material/category,
// covering the five standard tiers' pickaxes, shovels, and axes (the tool
// kinds this system's mining tasks select between). Swords and shears are
// intentionally excluded: this system never selects them automatically.
var toolItems = map[int32]toolInfo{
	270: {"wood", "pickaxe"}, 274: {"stone", "pickaxe"}, 257: {"iron", "pickaxe"}, 278: {"diamond", "pickaxe"}, 285: {"gold", "pickaxe"},
	269: {"wood", "shovel"}, 273: {"stone", "shovel"}, 256: {"iron", "shovel"}, 277: {"diamond", "shovel"}, 284: {"gold", "shovel"},
	271: {"wood", "axe"}, 275: {"stone", "axe"}, 258: {"iron", "axe"}, 279: {"diamond", "axe"}, 286: {"gold", "axe"},
}

// classifyHeld resolves a held item id to its (material, category) for
// BreakTicks, defaulting to bare hands when the item is not a recognized
// tool.
func classifyHeld(itemID int32, present bool) (material, category string) {
	if !present {
		return "hand", ""
	}
	info, ok := toolItems[itemID]
	if !ok {
		return "hand", ""
	}
	return info.material, info.category
}
