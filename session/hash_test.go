package session

import "testing"

// Test vectors from wiki.vg's documented examples.
func TestServerIDHashVectors(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ServerIDHash(tt.name, nil, nil)
			if got != tt.want {
				t.Fatalf("ServerIDHash(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}
