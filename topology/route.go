package topology

import (
	"math"
	"golang.org/x/exp/rand"

	"github.com/sarchlab/kncube/flit"
)

// Algorithm selects which of the five source-routing disciplines
// Route computes.
type Algorithm int

const (
	DOR       Algorithm = iota // dimension-order routing
	ROMM                       // randomized, oblivious, multi-phase, minimal
	MAD                        // minimal adaptive (congestion-oblivious here; source-routed)
	VAL                        // Valiant's randomized algorithm
	OddEven                    // odd-even turn model
)

func (a Algorithm) String() string {
	switch a {
	case ROMM:
		return "ROMM"
	case MAD:
		return "MAD"
	case VAL:
		return "VAL"
	case OddEven:
		return "ODD_EVEN"
	default:
		return "DOR"
	}
}

// Route computes the sequence of router ids a packet from the src
// terminal coordinate to the dst terminal coordinate must visit, per the
// given algorithm, not including the final hop into the destination
// terminal (callers append the negative destination terminal id
// themselves — see flit.Route).
func Route(d Dimension, alg Algorithm, src, dst Coordinate, rng *rand.Rand) flit.Route {
	switch alg {
	case ROMM:
		return routeViaIntermediate(d, src, dst, randomIntermediate(d, src, dst, rng))
	case VAL:
		return routeViaIntermediate(d, src, dst, randomIntermediate(d, src, dst, rng))
	case MAD:
		return routeMAD(d, src, dst)
	case OddEven:
		return routeOddEven(d, src, dst)
	default:
		return routeDOR(d, src, dst)
	}
}

func routeDOR(d Dimension, src, dst Coordinate) flit.Route {
	var route flit.Route
	next := src

	for dst.X != next.X {
		next = stepX(d, next, dst.X)
		route = append(route, d.CoordinateToID(next))
	}
	for dst.Y != next.Y {
		next = stepY(d, next, dst.Y)
		route = append(route, d.CoordinateToID(next))
	}
	for dst.Z != next.Z {
		next = stepZ(d, next, dst.Z)
		route = append(route, d.CoordinateToID(next))
	}
	return route
}

// stepX moves one hop toward targetX, taking the wraparound shortcut
// when Shape is Torus.
func stepX(d Dimension, next Coordinate, targetX int) Coordinate {
	if d.Shape == Torus {
		delta := targetX - next.X
		switch {
		case delta > 0 && delta > d.X/2:
			return next.DecrementX(d.X)
		case delta > 0:
			return next.IncrementX(d.X)
		case delta < -d.X/2:
			return next.IncrementX(d.X)
		default:
			return next.DecrementX(d.X)
		}
	}
	if targetX > next.X {
		return next.IncrementX(d.X)
	}
	return next.DecrementX(d.X)
}

func stepY(d Dimension, next Coordinate, targetY int) Coordinate {
	if d.Shape == Torus {
		delta := targetY - next.Y
		switch {
		case delta > 0 && delta > d.Y/2:
			return next.DecrementY(d.Y)
		case delta > 0:
			return next.IncrementY(d.Y)
		case delta < -d.Y/2:
			return next.IncrementY(d.Y)
		default:
			return next.DecrementY(d.Y)
		}
	}
	if targetY > next.Y {
		return next.IncrementY(d.Y)
	}
	return next.DecrementY(d.Y)
}

func stepZ(d Dimension, next Coordinate, targetZ int) Coordinate {
	if d.Shape == Torus {
		delta := targetZ - next.Z
		switch {
		case delta > 0 && delta > d.Z/2:
			return next.DecrementZ(d.Z)
		case delta > 0:
			return next.IncrementZ(d.Z)
		case delta < -d.Z/2:
			return next.IncrementZ(d.Z)
		default:
			return next.DecrementZ(d.Z)
		}
	}
	if targetZ > next.Z {
		return next.IncrementZ(d.Z)
	}
	return next.DecrementZ(d.Z)
}

// randomIntermediate draws a coordinate distinct from src and dst,
// uniformly over the cube, for ROMM and VAL's oblivious phase.
func randomIntermediate(d Dimension, src, dst Coordinate, rng *rand.Rand) Coordinate {
	for {
		c := Coordinate{
			X: rng.Intn(d.X),
			Y: rng.Intn(d.Y),
			Z: rng.Intn(d.Z),
		}
		if c != src && c != dst {
			return c
		}
	}
}

// routeViaIntermediate runs plain mesh DOR from src to the intermediate
// coordinate, then from the intermediate to dst. Used by both ROMM and
// VAL, which differ only in how the intermediate is meant to be used
// (oblivious phase vs. full load-balancing detour) but share this
// mechanical two-phase DOR composition.
func routeViaIntermediate(d Dimension, src, dst, intermediate Coordinate) flit.Route {
	meshOnly := d
	meshOnly.Shape = Mesh
	first := routeDOR(meshOnly, src, intermediate)
	second := routeDOR(meshOnly, intermediate, dst)
	return append(first, second...)
}

func routeMAD(d Dimension, src, dst Coordinate) flit.Route {
	var route flit.Route
	next := src

	for dst.X != next.X || dst.Y != next.Y || dst.Z != next.Z {
		dx := math.Abs(float64(dst.X - next.X))
		dy := math.Abs(float64(dst.Y - next.Y))
		dz := math.Abs(float64(dst.Z - next.Z))

		switch {
		case dx >= dy && dx >= dz:
			if dst.X > next.X {
				next = next.IncrementX(d.X)
			} else {
				next = next.DecrementX(d.X)
			}
		case dy >= dx && dy >= dz:
			if dst.Y > next.Y {
				next = next.IncrementY(d.Y)
			} else {
				next = next.DecrementY(d.Y)
			}
		default:
			if dst.Z > next.Z {
				next = next.IncrementZ(d.Z)
			} else {
				next = next.DecrementZ(d.Z)
			}
		}
		route = append(route, d.CoordinateToID(next))
	}
	return route
}

func routeOddEven(d Dimension, src, dst Coordinate) flit.Route {
	var route flit.Route
	next := src

	for dst.X != next.X || dst.Y != next.Y || dst.Z != next.Z {
		dx := dst.X - next.X
		dy := dst.Y - next.Y
		dz := dst.Z - next.Z

		if d.Z == 1 {
			if next.X%2 == 0 {
				switch {
				case dx > 0:
					next = next.IncrementX(d.X)
				case dx < 0:
					next = next.DecrementX(d.X)
				case dy > 0:
					next = next.IncrementY(d.Y)
				case dy < 0:
					next = next.DecrementY(d.Y)
				}
			} else {
				switch {
				case dy > 0:
					next = next.IncrementY(d.Y)
				case dy < 0:
					next = next.DecrementY(d.Y)
				case dx > 0:
					next = next.IncrementX(d.X)
				case dx < 0:
					next = next.DecrementX(d.X)
				}
			}
		} else {
			switch {
			case dx != 0:
				if dx > 0 {
					next = next.IncrementX(d.X)
				} else {
					next = next.DecrementX(d.X)
				}
			case dy != 0:
				if dy > 0 {
					next = next.IncrementY(d.Y)
				} else {
					next = next.DecrementY(d.Y)
				}
			case dz != 0:
				if dz > 0 {
					next = next.IncrementZ(d.Z)
				} else {
					next = next.DecrementZ(d.Z)
				}
			}
		}

		route = append(route, d.CoordinateToID(next))
	}
	return route
}
