package main

// cycler is the minimal interface the simulation loop drives. *network.Network
// satisfies it; tests substitute a mock so the loop's cycle-counting can be
// checked without building a whole cube.
type cycler interface {
	RunCycle()
}

func runSimulation(c cycler, totalCycles int) {
	for i := 0; i < totalCycles; i++ {
		c.RunCycle()
	}
}
