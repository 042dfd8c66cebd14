package global

import "testing"

func TestBreakTicksLiteralVectors(t *testing.T) {
	bd, err := LoadBlockData()
	if err != nil {
		t.Fatalf("LoadBlockData: %v", err)
	}

	tests := []struct {
		name                   string
		blockID                int32
		toolMaterial, toolCat  string
		wantTicks              int
	}{
		{"diamond pickaxe on stone", 1, "diamond", "pickaxe", 6},
		{"hand on stone", 1, "hand", "", 150},
		{"diamond shovel on dirt", 3, "diamond", "shovel", 2},
		{"hand on leaves", 18, "hand", "", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := bd.Blocks[tt.blockID]
			if !ok {
				t.Fatalf("block id %d not found", tt.blockID)
			}
			got := info.BreakTicks(tt.toolMaterial, tt.toolCat)
			if got != tt.wantTicks {
				t.Fatalf("BreakTicks(%s) = %d, want %d", tt.name, got, tt.wantTicks)
			}
		})
	}
}
