// Command kncube runs one cycle-accurate k-ary n-cube network-on-chip
// simulation from a YAML configuration file: it builds the network,
// generates traffic, drives the simulation loop, then reports
// throughput, demand and latency for the measurement window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"golang.org/x/exp/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/network"
	"github.com/sarchlab/kncube/simconfig"
	"github.com/sarchlab/kncube/stats"
	"github.com/sarchlab/kncube/traffic"
)

const version = "0.1.0"

// options bundles every flag the CLI recognizes. overrides carry onto
// the loaded Config before it is revalidated; the rest govern what this
// run does with it.
type options struct {
	help    bool
	showVer bool

	outputDir string

	topology  string
	algorithm string
	rate      string
	size      string
	pattern   string
	cycles    string
	warmup    string
	measure   string

	dryRun     bool
	saveConfig bool
	noTraffic  bool
	noAnalysis bool
	quiet      bool
	debug      bool
}

func parseFlags() options {
	var o options

	flag.BoolVar(&o.help, "h", false, "show this help message")
	flag.BoolVar(&o.help, "help", false, "show this help message")
	flag.BoolVar(&o.showVer, "v", false, "print the version and exit")
	flag.BoolVar(&o.showVer, "version", false, "print the version and exit")
	flag.StringVar(&o.outputDir, "o", ".", "base directory for this run's output")
	flag.StringVar(&o.outputDir, "output", ".", "base directory for this run's output")

	flag.StringVar(&o.topology, "t", "", "override topology.dimension (\"x,y,z\" or \"x,y,z,SHAPE\")")
	flag.StringVar(&o.algorithm, "a", "", "override routing.algorithm")
	flag.StringVar(&o.rate, "r", "", "override traffic.injection_rate")
	flag.StringVar(&o.size, "s", "", "override traffic.packet_size")
	flag.StringVar(&o.pattern, "p", "", "override traffic.traffic_pattern")
	flag.StringVar(&o.cycles, "c", "", "override cycles.total")
	flag.StringVar(&o.warmup, "w", "", "override cycles.warmup")
	flag.StringVar(&o.measure, "m", "", "override cycles.measurement")

	flag.BoolVar(&o.dryRun, "dry-run", false, "load, override and validate the configuration, then exit without simulating")
	flag.BoolVar(&o.saveConfig, "save-config", false, "write the resolved configuration into the run's output directory")
	flag.BoolVar(&o.noTraffic, "no-traffic", false, "skip traffic generation and injection")
	flag.BoolVar(&o.noAnalysis, "no-analysis", false, "skip computing and reporting throughput/demand/latency")
	flag.BoolVar(&o.quiet, "quiet", false, "report results as plain lines instead of a table")
	flag.BoolVar(&o.debug, "debug", false, "dump every router's and terminal's VC state after the run")

	flag.Usage = printUsage
	flag.Parse()

	return o
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: kncube [flags] <config-file>")
	flag.PrintDefaults()
}

func main() {
	o := parseFlags()

	if o.help {
		printUsage()
		atexit.Exit(0)
	}
	if o.showVer {
		fmt.Println("kncube version " + version)
		atexit.Exit(0)
	}

	if flag.NArg() != 1 {
		printUsage()
		atexit.Exit(1)
	}
	configPath := flag.Arg(0)

	cfg, err := simconfig.Load(configPath)
	if err != nil {
		fail("loading configuration: %v", err)
	}

	if err := applyOverrides(cfg, o); err != nil {
		fail("applying overrides: %v", err)
	}

	if o.dryRun {
		color.Cyan("configuration resolved and valid")
		if o.saveConfig {
			if err := saveResolvedConfig(o.outputDir, cfg); err != nil {
				fail("saving configuration: %v", err)
			}
		}
		atexit.Exit(0)
	}

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	net := network.NewBuilder().
		WithDimension(cfg.Dimension()).
		WithRoutingAlgorithm(cfg.Algorithm()).
		WithMicroarchitecture(cfg.Microarchitecture.VirtualChannelNumber, cfg.Microarchitecture.BufferSize).
		WithFlitSize(cfg.Traffic.FlitSize).
		WithInjection(cfg.InjectionProcess(), cfg.Traffic.InjectionRate, cfg.Traffic.Alpha, cfg.Traffic.Beta).
		WithRandSource(rng).
		WithLogger(logger).
		Build()

	if !o.noTraffic {
		trafficInfo, trafficData := generateTraffic(cfg, net.RouterCount(), rng)
		for routerID, terminal := range net.Terminals {
			termID := -routerID - 1
			terminal.SetTraffic(trafficInfo[termID], trafficData[termID])
		}
	}

	runDir, err := traffic.NewRunDir(o.outputDir)
	if err != nil {
		fail("creating run output directory: %v", err)
	}

	if o.saveConfig {
		if err := saveResolvedConfig(runDir, cfg); err != nil {
			fail("saving configuration: %v", err)
		}
	}

	runSimulation(net, cfg.Cycles.Total)

	if o.debug {
		dumpState(net)
	}

	receivedInfo, receivedData := collectResults(net)
	if err := traffic.WriteCSV(runDir, receivedInfo, receivedData); err != nil {
		fail("writing traffic CSV: %v", err)
	}

	if !o.quiet {
		color.Cyan("run output: %s", runDir)
	} else {
		fmt.Println("run output:", runDir)
	}

	if !o.noAnalysis {
		report := summarize(net, receivedInfo, cfg)
		if o.quiet {
			stats.RenderPlain(report)
		} else {
			stats.Render(report)
		}
	}

	atexit.Exit(0)
}

func fail(format string, args ...any) {
	color.Red(format+"\n", args...)
	atexit.Exit(1)
}

// applyOverrides rewrites cfg's exported fields with whichever -t/-a/-r/
// -s/-p/-c/-w/-m flags were given, then revalidates the result so a bad
// override fails the same way a bad config file would.
func applyOverrides(cfg *simconfig.Config, o options) error {
	if o.topology != "" {
		if err := applyTopologyOverride(cfg, o.topology); err != nil {
			return err
		}
	}
	if o.algorithm != "" {
		cfg.Routing.Algorithm = o.algorithm
	}
	if o.rate != "" {
		v, err := strconv.ParseFloat(o.rate, 64)
		if err != nil {
			return fmt.Errorf("-r: %w", err)
		}
		cfg.Traffic.InjectionRate = v
	}
	if o.size != "" {
		v, err := strconv.Atoi(o.size)
		if err != nil {
			return fmt.Errorf("-s: %w", err)
		}
		cfg.Traffic.PacketSize = v
	}
	if o.pattern != "" {
		cfg.Traffic.TrafficPattern = o.pattern
	}
	if o.cycles != "" {
		v, err := strconv.Atoi(o.cycles)
		if err != nil {
			return fmt.Errorf("-c: %w", err)
		}
		cfg.Cycles.Total = v
	}
	if o.warmup != "" {
		v, err := strconv.Atoi(o.warmup)
		if err != nil {
			return fmt.Errorf("-w: %w", err)
		}
		cfg.Cycles.Warmup = v
	}
	if o.measure != "" {
		v, err := strconv.Atoi(o.measure)
		if err != nil {
			return fmt.Errorf("-m: %w", err)
		}
		cfg.Cycles.Measurement = v
	}

	return cfg.Revalidate()
}

// applyTopologyOverride parses "-t"'s "x,y,z" or "x,y,z,SHAPE" form.
func applyTopologyOverride(cfg *simconfig.Config, spec string) error {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf("-t: expected \"x,y,z\" or \"x,y,z,SHAPE\", got %q", spec)
	}

	var dims [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return fmt.Errorf("-t: %w", err)
		}
		dims[i] = v
	}
	cfg.Topology.Dimension = dims

	if len(parts) == 4 {
		cfg.Topology.Shape = strings.TrimSpace(parts[3])
	}

	return nil
}

// saveResolvedConfig writes cfg back out as YAML under dir, the
// --save-config contract: what actually ran, not just what was asked
// for.
func saveResolvedConfig(dir string, cfg *simconfig.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling resolved configuration: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, "resolved_config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func generateTraffic(cfg *simconfig.Config, routerCount int, rng *rand.Rand) (
	map[int][]flit.InfoEntry, map[int][][]float64,
) {
	sizeOption := traffic.Fixed
	if cfg.Traffic.PacketSizeOption == "random uniform" {
		sizeOption = traffic.RandomUniform
	}
	params := traffic.Params{
		PacketSize:   cfg.Traffic.PacketSize,
		SizeOption:   sizeOption,
		PacketNumber: cfg.PacketNumber(),
	}

	if cfg.Traffic.TrafficPattern == "permutation" {
		target := cfg.Traffic.PermutationTarget
		permute := func(sourceRouterID int) int { return (sourceRouterID + target) % routerCount }
		return traffic.GeneratePermutation(routerCount, params, rng, permute)
	}

	return traffic.GenerateRandomUniform(routerCount, params, rng)
}

// collectResults regroups every terminal's received packets by their
// original source terminal id, the grouping the CSV contract expects,
// carrying each entry's payload row along with it.
func collectResults(net *network.Network) (map[int][]flit.InfoEntry, map[int][][]float64) {
	info := make(map[int][]flit.InfoEntry, len(net.Terminals))
	data := make(map[int][][]float64, len(net.Terminals))
	for _, t := range net.Terminals {
		for i, e := range t.InputInfo {
			info[e.Source] = append(info[e.Source], e)
			data[e.Source] = append(data[e.Source], t.InputData[i])
		}
	}
	return info, data
}

func summarize(net *network.Network, receivedInfo map[int][]flit.InfoEntry, cfg *simconfig.Config) stats.Report {
	window := stats.Window{Warmup: cfg.Cycles.Warmup, Measurement: cfg.Cycles.Measurement}

	var received, latencyReceived, sent []flit.InfoEntry
	for _, perSource := range receivedInfo {
		received = append(received, stats.Collect(perSource, window)...)
		latencyReceived = append(latencyReceived, stats.CollectLatency(perSource, window)...)
	}
	for _, t := range net.Terminals {
		sent = append(sent, stats.CollectSent(t.SentInfo(), window)...)
	}

	return stats.Calculate(received, latencyReceived, sent, window, net.RouterCount())
}

// dumpState prints every router's and terminal's VC state, for --debug
// runs that need to see where a stalled simulation's flits and credits
// actually are.
func dumpState(net *network.Network) {
	for _, r := range net.Routers {
		fmt.Println(r.DumpState())
	}
	for _, t := range net.Terminals {
		fmt.Println(t.DumpState())
	}
}
