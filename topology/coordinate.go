// Package topology converts between router/terminal ids and their
// n-dimensional coordinates, builds the link topology for a mesh or
// torus k-ary n-cube, and precomputes source routes for each
// (source, destination) terminal pair.
package topology

// Coordinate is a node's position in the cube, one component per
// dimension currently modeled (x, y, z — a 1-ary unused dimension
// collapses to size 1 and is never traversed).
type Coordinate struct {
	X, Y, Z int
}

// IncrementX returns the coordinate one hop in the positive x direction,
// wrapping around limit.
func (c Coordinate) IncrementX(limit int) Coordinate {
	c.X++
	if c.X > limit-1 {
		c.X %= limit
	}
	return c
}

// DecrementX returns the coordinate one hop in the negative x direction,
// wrapping around limit.
func (c Coordinate) DecrementX(limit int) Coordinate {
	c.X--
	if c.X < 0 {
		c.X = limit - 1
	}
	return c
}

// IncrementY returns the coordinate one hop in the positive y direction,
// wrapping around limit.
func (c Coordinate) IncrementY(limit int) Coordinate {
	c.Y++
	if c.Y > limit-1 {
		c.Y %= limit
	}
	return c
}

// DecrementY returns the coordinate one hop in the negative y direction,
// wrapping around limit.
func (c Coordinate) DecrementY(limit int) Coordinate {
	c.Y--
	if c.Y < 0 {
		c.Y = limit - 1
	}
	return c
}

// IncrementZ returns the coordinate one hop in the positive z direction,
// wrapping around limit.
func (c Coordinate) IncrementZ(limit int) Coordinate {
	c.Z++
	if c.Z > limit-1 {
		c.Z %= limit
	}
	return c
}

// DecrementZ returns the coordinate one hop in the negative z direction,
// wrapping around limit.
func (c Coordinate) DecrementZ(limit int) Coordinate {
	c.Z--
	if c.Z < 0 {
		c.Z = limit - 1
	}
	return c
}
