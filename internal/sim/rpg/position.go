package rpg

import "math"

// Ground classification returned by Position.IsGround.
const (
	Underground = -1
	AtGround    = 0
	Sky         = 1
)

// Position is an integer coordinate plus the configured ground level it
// is classified against. Only X/Y/Z are persisted.
type Position struct {
	X, Y, Z int

	ground int
}

func NewPosition(x, y, z, ground int) *Position {
	return &Position{X: x, Y: y, Z: z, ground: ground}
}

func (p *Position) Coordinate() [3]int {
	return [3]int{p.X, p.Y, p.Z}
}

func (p *Position) IsGround() int {
	switch {
	case p.Z < p.ground:
		return Underground
	case p.Z > p.ground:
		return Sky
	default:
		return AtGround
	}
}

// Move shifts the position by the given deltas.
func (p *Position) Move(dx, dy, dz int) {
	p.X += dx
	p.Y += dy
	p.Z += dz
}

// Goto writes only the supplied axes; nil keeps the current value.
func (p *Position) Goto(x, y, z *int) {
	if x != nil {
		p.X = *x
	}
	if y != nil {
		p.Y = *y
	}
	if z != nil {
		p.Z = *z
	}
}

func (p *Position) Distance(o *Position) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	dz := float64(p.Z - o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
