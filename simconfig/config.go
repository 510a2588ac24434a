// Package simconfig loads and validates the YAML configuration that
// drives a simulation run: topology, routing, microarchitecture,
// traffic and cycle-count sections.
package simconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the fully validated configuration for one simulation run.
// Build it with Load. Its fields are exported so a CLI layer can apply
// override flags after loading; call Revalidate once overrides are
// applied, before building a network from it.
type Config struct {
	Topology struct {
		Dimension [3]int `yaml:"dimension"`
		Shape     string `yaml:"shape"`
	} `yaml:"topology"`

	Routing struct {
		Algorithm string `yaml:"algorithm"`
	} `yaml:"routing"`

	Microarchitecture struct {
		VirtualChannelNumber int `yaml:"virtual_channel_number"`
		BufferSize           int `yaml:"buffer_size"`
	} `yaml:"microarchitecture"`

	Traffic struct {
		FlitSize          int     `yaml:"flit_size"`
		PacketSize        int     `yaml:"packet_size"`
		PacketSizeOption  string  `yaml:"packet_size_option"`
		InjectionRate     float64 `yaml:"injection_rate"`
		InjectionProcess  string  `yaml:"injection_process"`
		Alpha             float64 `yaml:"alpha"`
		Beta              float64 `yaml:"beta"`
		TrafficPattern    string  `yaml:"traffic_pattern"`
		PermutationTarget int     `yaml:"permutation_target"`
	} `yaml:"traffic"`

	Cycles struct {
		Total       int `yaml:"total"`
		Warmup      int `yaml:"warmup"`
		Measurement int `yaml:"measurement"`
	} `yaml:"cycles"`

	Seed int64 `yaml:"seed"`
}

// ConfigParseError wraps a failure to parse the configuration file's
// YAML syntax.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing configuration %q: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// InvalidConfiguration reports a configuration that parsed successfully
// but fails validation.
type InvalidConfiguration struct {
	Reason string
}

func (e *InvalidConfiguration) Error() string {
	return "invalid configuration: " + e.Reason
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) validate() error {
	d := c.Topology.Dimension
	if d[0] <= 0 || d[1] <= 0 || d[2] <= 0 {
		return &InvalidConfiguration{Reason: "topology.dimension must have all positive components"}
	}
	if c.Topology.Shape != "MESH" && c.Topology.Shape != "TORUS" {
		return &InvalidConfiguration{Reason: "topology.shape must be MESH or TORUS"}
	}
	if c.Microarchitecture.VirtualChannelNumber <= 0 {
		return &InvalidConfiguration{Reason: "microarchitecture.virtual_channel_number must be positive"}
	}
	if c.Microarchitecture.BufferSize <= 0 {
		return &InvalidConfiguration{Reason: "microarchitecture.buffer_size must be positive"}
	}
	if c.Traffic.FlitSize <= 0 {
		return &InvalidConfiguration{Reason: "traffic.flit_size must be positive"}
	}
	if c.Cycles.Warmup+c.Cycles.Measurement > c.Cycles.Total {
		return &InvalidConfiguration{Reason: "cycles.warmup + cycles.measurement must not exceed cycles.total"}
	}
	if c.Traffic.InjectionRate < 0 || c.Traffic.InjectionRate > 1 {
		return &InvalidConfiguration{Reason: "traffic.injection_rate must be in [0, 1]"}
	}
	if !oneOf(c.Routing.Algorithm, "DOR", "ROMM", "MAD", "VAL", "ODD_EVEN") {
		return &InvalidConfiguration{Reason: "routing.algorithm must be one of DOR, ROMM, MAD, VAL, ODD_EVEN"}
	}
	if !oneOf(c.Traffic.InjectionProcess, "periodic", "bernoulli", "markov modulated process") {
		return &InvalidConfiguration{Reason: "traffic.injection_process must be one of periodic, bernoulli, markov modulated process"}
	}
	if !oneOf(c.Traffic.TrafficPattern, "random uniform", "permutation") {
		return &InvalidConfiguration{Reason: "traffic.traffic_pattern must be one of random uniform, permutation"}
	}
	if !oneOf(c.Traffic.PacketSizeOption, "fixed", "random uniform") {
		return &InvalidConfiguration{Reason: "traffic.packet_size_option must be one of fixed, random uniform"}
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// Revalidate re-runs the same checks Load applies, for callers that
// mutate a Config's exported fields after loading it (the CLI override
// flags) and need to confirm the result is still well-formed.
func (c *Config) Revalidate() error {
	return c.validate()
}

// DrainCycles returns the number of cycles left after warmup and
// measurement, run so in-flight packets can finish. Terminals keep
// injecting during these cycles; the stats window excludes them.
func (c *Config) DrainCycles() int {
	return c.Cycles.Total - c.Cycles.Warmup - c.Cycles.Measurement
}

// PacketNumber returns the number of packets the traffic generator
// creates per source terminal, derived from the configured total cycle
// count and injection rate, as the original does.
func (c *Config) PacketNumber() int {
	return int(float64(c.Cycles.Total) * c.Traffic.InjectionRate)
}
