// Package world owns the chunk map, palette-compressed block storage, and
// typed block queries used by physics and pathfinding. Vector math is
// built on github.com/go-gl/mathgl, the same library dm-vev-adamant uses
// for its own cube/entity position types.
package world

import "github.com/go-gl/mathgl/mgl64"

// BlockLocation is an integer block coordinate. Y is signed (int32, not
// the vanilla int16) to tolerate future world-height formats.
type BlockLocation struct {
	X, Y, Z int32
}

// BlockLocation2D drops the Y component, used for chunk-column-scoped
// operations.
type BlockLocation2D struct {
	X, Z int32
}

func (l BlockLocation) To2D() BlockLocation2D { return BlockLocation2D{X: l.X, Z: l.Z} }

func (l BlockLocation) Add(dx, dy, dz int32) BlockLocation {
	return BlockLocation{X: l.X + dx, Y: l.Y + dy, Z: l.Z + dz}
}

// Chunk returns the ChunkLocation containing this block.
func (l BlockLocation) Chunk() ChunkLocation {
	return ChunkLocation{CX: l.X >> 4, CZ: l.Z >> 4}
}

// Location is a float64 world-space point.
type Location mgl64.Vec3

func NewLocation(x, y, z float64) Location { return Location{x, y, z} }

func (l Location) X() float64 { return l[0] }
func (l Location) Y() float64 { return l[1] }
func (l Location) Z() float64 { return l[2] }

func (l Location) Vec3() mgl64.Vec3 { return mgl64.Vec3(l) }

func (l Location) Block() BlockLocation {
	return BlockLocation{X: int32(floor(l[0])), Y: int32(floor(l[1])), Z: int32(floor(l[2]))}
}

func (l Location) Add(d Displacement) Location {
	return Location{l[0] + d[0], l[1] + d[1], l[2] + d[2]}
}

func (l Location) Sub(o Location) Displacement {
	return Displacement{l[0] - o[0], l[1] - o[1], l[2] - o[2]}
}

// Displacement is a float64 vector supporting the arithmetic and
// geometric operations physics and pathfinding need (dot, cross,
// normalize, reflect), delegated to mgl64.Vec3.
type Displacement mgl64.Vec3

func NewDisplacement(x, y, z float64) Displacement { return Displacement{x, y, z} }

func (d Displacement) Add(o Displacement) Displacement {
	return Displacement(mgl64.Vec3(d).Add(mgl64.Vec3(o)))
}

func (d Displacement) Sub(o Displacement) Displacement {
	return Displacement(mgl64.Vec3(d).Sub(mgl64.Vec3(o)))
}

func (d Displacement) Mul(s float64) Displacement {
	return Displacement(mgl64.Vec3(d).Mul(s))
}

func (d Displacement) Dot(o Displacement) float64 {
	return mgl64.Vec3(d).Dot(mgl64.Vec3(o))
}

func (d Displacement) Cross(o Displacement) Displacement {
	return Displacement(mgl64.Vec3(d).Cross(mgl64.Vec3(o)))
}

func (d Displacement) Len() float64 { return mgl64.Vec3(d).Len() }

func (d Displacement) Normalize() Displacement {
	return Displacement(mgl64.Vec3(d).Normalize())
}

func (d Displacement) Reflect(normal Displacement) Displacement {
	dot := d.Dot(normal)
	return Displacement{
		d[0] - 2*dot*normal[0],
		d[1] - 2*dot*normal[1],
		d[2] - 2*dot*normal[2],
	}
}

// ChunkLocation is a chunk column coordinate: (x>>4, z>>4).
type ChunkLocation struct {
	CX, CZ int32
}

func ChunkLocationOf(x, z int32) ChunkLocation {
	return ChunkLocation{CX: x >> 4, CZ: z >> 4}
}

// DistSqToCorner returns the squared distance from p to the nearest
// corner of this chunk column, used by Select's heap ordering.
func (c ChunkLocation) DistSqToCorner(p BlockLocation2D) float64 {
	minX, maxX := float64(c.CX*16), float64(c.CX*16+15)
	minZ, maxZ := float64(c.CZ*16), float64(c.CZ*16+15)
	nx := clamp(float64(p.X), minX, maxX)
	nz := clamp(float64(p.Z), minZ, maxZ)
	dx, dz := float64(p.X)-nx, float64(p.Z)-nz
	return dx*dx + dz*dz
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}
