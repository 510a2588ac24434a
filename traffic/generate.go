// Package traffic generates the packets a simulation run injects,
// persists them as the two-file TrafficInformation.csv/TrafficData.csv
// contract, and reads the packet records back from
// TrafficInformation.csv once a run completes.
package traffic

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarchlab/kncube/flit"
)

// SizeOption selects how a generated packet's size is chosen.
type SizeOption int

const (
	// Fixed gives every packet exactly the configured packet size.
	Fixed SizeOption = iota
	// RandomUniform draws a packet size uniformly from [1, packetSize].
	RandomUniform
)

// Params bundles the packet-shape knobs shared by every generation
// function.
type Params struct {
	PacketSize   int
	SizeOption   SizeOption
	PacketNumber int
}

func (p Params) sizeOf(rng *rand.Rand) int {
	if p.SizeOption != RandomUniform {
		return p.PacketSize
	}
	u := distuv.Uniform{Min: 1, Max: float64(p.PacketSize) + 1, Src: rng}
	size := int(u.Rand())
	if size > p.PacketSize {
		size = p.PacketSize
	}
	if size < 1 {
		size = 1
	}
	return size
}

func payloadOf(size int) []float64 {
	data := make([]float64, size)
	for i := range data {
		data[i] = float64(i)
	}
	return data
}

// GenerateRandomUniform builds Params.PacketNumber packets for every
// terminal in a cube of routerCount routers, each addressed to a
// uniformly random destination other than its own source, per terminal
// source in turn. Terminal ids run -1..-routerCount.
func GenerateRandomUniform(routerCount int, p Params, rng *rand.Rand) (
	info map[int][]flit.InfoEntry, data map[int][][]float64,
) {
	info = make(map[int][]flit.InfoEntry, routerCount)
	data = make(map[int][][]float64, routerCount)

	for source := -1; source >= -routerCount; source-- {
		for packetID := 0; packetID < p.PacketNumber; packetID++ {
			size := p.sizeOf(rng)
			payload := payloadOf(size)

			var destination int
			for {
				destination = -rng.Intn(routerCount) - 1
				if destination != source {
					break
				}
			}

			info[source] = append(info[source], flit.InfoEntry{
				PacketID:    packetID,
				Source:      source,
				Destination: destination,
				PacketSize:  size,
				Status:      flit.Valid,
			})
			data[source] = append(data[source], payload)
		}
	}

	return info, data
}

// GeneratePermutation builds Params.PacketNumber packets from every
// source terminal to the one destination the permute function maps its
// router id to, skipping any source a permutation maps to itself.
// Terminal ids run -1..-routerCount.
func GeneratePermutation(routerCount int, p Params, rng *rand.Rand, permute func(sourceRouterID int) int) (
	info map[int][]flit.InfoEntry, data map[int][][]float64,
) {
	info = make(map[int][]flit.InfoEntry, routerCount)
	data = make(map[int][][]float64, routerCount)

	for sourceRouterID := 0; sourceRouterID < routerCount; sourceRouterID++ {
		destRouterID := permute(sourceRouterID)
		if destRouterID == sourceRouterID {
			continue
		}

		source := -sourceRouterID - 1
		destination := -destRouterID - 1

		for packetID := 0; packetID < p.PacketNumber; packetID++ {
			size := p.sizeOf(rng)
			info[source] = append(info[source], flit.InfoEntry{
				PacketID:    packetID,
				Source:      source,
				Destination: destination,
				PacketSize:  size,
				Status:      flit.Valid,
			})
			data[source] = append(data[source], payloadOf(size))
		}
	}

	return info, data
}
