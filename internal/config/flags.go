package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.Int64("seed", 0, "Terrain seed")
	flagFalloff = flag.Bool("falloff", false, "Apply the island falloff mask")
	flagWorkers = flag.Int("workers", -1, "Maximum concurrent generation workers (0 = unbounded)")
	flagMetrics = flag.String("metrics", "", "Prometheus listen address, e.g. :9100")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagWasSet("seed") {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagFalloff {
		cfg.Terrain.Falloff = true
	}
	if *flagWorkers >= 0 {
		cfg.Workers.MaxConcurrent = *flagWorkers
	}
	if *flagMetrics != "" {
		cfg.Metrics.Listen = *flagMetrics
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

// flagWasSet reports whether a flag was given explicitly; zero is a valid seed.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
