package simconfig

import (
	"github.com/sarchlab/kncube/terminal"
	"github.com/sarchlab/kncube/topology"
)

// Dimension converts the config's topology section into a
// topology.Dimension.
func (c *Config) Dimension() topology.Dimension {
	shape := topology.Mesh
	if c.Topology.Shape == "TORUS" {
		shape = topology.Torus
	}
	return topology.Dimension{
		X:     c.Topology.Dimension[0],
		Y:     c.Topology.Dimension[1],
		Z:     c.Topology.Dimension[2],
		Shape: shape,
	}
}

// Algorithm converts the config's routing section into a
// topology.Algorithm.
func (c *Config) Algorithm() topology.Algorithm {
	switch c.Routing.Algorithm {
	case "ROMM":
		return topology.ROMM
	case "MAD":
		return topology.MAD
	case "VAL":
		return topology.VAL
	case "ODD_EVEN":
		return topology.OddEven
	default:
		return topology.DOR
	}
}

// InjectionProcess converts the config's traffic section into a
// terminal.InjectionProcess.
func (c *Config) InjectionProcess() terminal.InjectionProcess {
	switch c.Traffic.InjectionProcess {
	case "bernoulli":
		return terminal.Bernoulli
	case "markov modulated process":
		return terminal.MarkovModulated
	default:
		return terminal.Periodic
	}
}
