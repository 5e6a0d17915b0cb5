package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
	"github.com/roman-kulish/daynight-periodogram/internal/simulation"
)

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"

	defaultOutputFile = "periodogram"
)

type ImageFormat string

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

// Config represents the main application configuration
type Config struct {
	Settings   Settings         `yaml:"settings"`
	Simulation SimulationConfig `yaml:"simulation"`
	Seed       SeedConfig       `yaml:"seed"`
	Output     OutputConfig     `yaml:"output"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// SimulationConfig holds the run parameters. DurationDays, when set, replaces DurationHours.
type SimulationConfig struct {
	simulation.Params `yaml:",inline"`
	DurationDays      float64 `yaml:"durationDays"`
	LegacyAliases     bool    `yaml:"legacyAliases"`
}

// SeedConfig represents noise seeding settings
type SeedConfig struct {
	Seed  uint64               `yaml:"seed"`
	Scope simulation.SeedScope `yaml:"scope"`
}

// OutputConfig represents figure settings
type OutputConfig struct {
	File        string      `yaml:"file"` // Path without extension
	Format      ImageFormat `yaml:"format"`
	LogPower    bool        `yaml:"logPower"`
	Width       int         `yaml:"width"`
	PanelHeight int         `yaml:"panelHeight"`
}

// NewConfig returns the configuration with the default parameters
func NewConfig() *Config {
	return &Config{
		Settings: Settings{LogLevel: "info"},
		Simulation: SimulationConfig{
			Params: simulation.Params{
				DurationHours: 300,
				Observations:  5000,
				PeriodHours:   35.17,
				DayFraction:   0.5,
			},
		},
		Seed: SeedConfig{
			Seed:  simulation.DefaultSeed,
			Scope: simulation.ScopeRun,
		},
		Output: OutputConfig{
			File:   defaultOutputFile,
			Format: ImagePNG,
		},
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	p, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	c := NewConfig()
	if err = yaml.Unmarshal(p, c); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return c, nil
}

// NewConfigFromCLI parses command line arguments. Parameters given on the command line
// override the ones loaded from the -c configuration file.
func NewConfigFromCLI(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("periodogram", flag.ContinueOnError)
	fs.SetOutput(output)

	defaults := NewConfig()

	var (
		configPath   string
		logLevel     string
		outputFile   string
		imageFormat  string
		logPower     bool
		seed         uint64
		seedScope    string
		legacy       bool
		duration     float64
		durationDays float64
		observations int
		period       float64
		phase        float64
		yNoise       float64
		tNoise       float64
		dayFraction  float64
		irregular    bool
		uncertainty  float64
	)
	fs.StringVar(&configPath, "c", "", "Path to the configuration file")
	fs.StringVar(&logLevel, "log-level", defaults.Settings.LogLevel, "Log level [debug, info, warn, error]")
	fs.StringVar(&outputFile, "o", defaults.Output.File, "Path to the output file, without extension")
	fs.StringVar(&imageFormat, "f", string(defaults.Output.Format), "Output image format. [png, jpeg]")
	fs.BoolVar(&logPower, "log-power", false, "Use a logarithmic power axis")
	fs.Uint64Var(&seed, "seed", defaults.Seed.Seed, "Random seed")
	fs.StringVar(&seedScope, "seed-scope", string(defaults.Seed.Scope), "Draws covered by the seed. [run, noise]")
	fs.BoolVar(&legacy, "legacy-aliases", false, "Compute sampling aliases from the 35.17 h reference period")
	fs.Float64Var(&duration, "duration", defaults.Simulation.DurationHours, "Length of observation in hours (10-1000)")
	fs.Float64Var(&durationDays, "duration-days", 0, "Length of observation in days (1-730), overrides -duration")
	fs.IntVar(&observations, "n", defaults.Simulation.Observations, "Number of observations (10-10000)")
	fs.Float64Var(&period, "period", defaults.Simulation.PeriodHours, "Period in hours (0.1-100)")
	fs.Float64Var(&phase, "phase", defaults.Simulation.PhaseRadians, "Phase in radians (0-2π)")
	fs.Float64Var(&yNoise, "y-noise", defaults.Simulation.AmplitudeNoiseStd, "Amplitude noise standard deviation (0-10)")
	fs.Float64Var(&tNoise, "t-noise", defaults.Simulation.TimeNoiseStd, "Timing noise standard deviation in hours (0-10)")
	fs.Float64Var(&dayFraction, "day-fraction", defaults.Simulation.DayFraction, "Day/night duty cycle (0.05-1)")
	fs.BoolVar(&irregular, "irregular", false, "Irregular spacing")
	fs.Float64Var(&uncertainty, "uncertainty", 0, "Measurement uncertainty passed to the periodogram")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := defaults
	if configPath != "" {
		var err error
		if c, err = LoadConfig(configPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			c.Settings.LogLevel = logLevel
		case "o":
			c.Output.File = outputFile
		case "f":
			c.Output.Format = ImageFormat(strings.ToLower(imageFormat))
		case "log-power":
			c.Output.LogPower = logPower
		case "seed":
			c.Seed.Seed = seed
		case "seed-scope":
			c.Seed.Scope = simulation.SeedScope(seedScope)
		case "legacy-aliases":
			c.Simulation.LegacyAliases = legacy
		case "duration":
			c.Simulation.DurationHours = duration
		case "duration-days":
			c.Simulation.DurationDays = durationDays
		case "n":
			c.Simulation.Observations = observations
		case "period":
			c.Simulation.PeriodHours = period
		case "phase":
			c.Simulation.PhaseRadians = phase
		case "y-noise":
			c.Simulation.AmplitudeNoiseStd = yNoise
		case "t-noise":
			c.Simulation.TimeNoiseStd = tNoise
		case "day-fraction":
			c.Simulation.DayFraction = dayFraction
		case "irregular":
			c.Simulation.Irregular = irregular
		case "uncertainty":
			c.Simulation.Uncertainty = uncertainty
		}
	})

	if err := c.Validate(); err != nil {
		fs.Usage()
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration against the ranges offered to users
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Output.File == "" {
		return errors.New("output file is required")
	}
	if _, ok := validImageFormats[c.Output.Format]; !ok {
		return fmt.Errorf("invalid image format: %s", c.Output.Format)
	}
	if _, err := simulation.ParseSeedScope(string(c.Seed.Scope)); err != nil {
		return err
	}

	s := c.Simulation
	checks := []error{
		param.AtLeast("observations", s.Observations, 10),
		param.Between("period", s.PeriodHours, 0.1, 100),
		param.Between("phase", s.PhaseRadians, 0, 2*math.Pi),
		param.Between("amplitudeNoiseStd", s.AmplitudeNoiseStd, 0, 10),
		param.Between("timeNoiseStd", s.TimeNoiseStd, 0, 10),
		param.Between("dayFraction", s.DayFraction, 0.05, 1),
		param.NonNegative("uncertainty", s.Uncertainty),
	}
	if s.Observations > 10_000 {
		checks = append(checks, param.NewError("observations", float64(s.Observations), "must be <= 10000"))
	}
	if s.DurationDays != 0 {
		checks = append(checks, param.Between("durationDays", s.DurationDays, 1, 730))
	} else {
		checks = append(checks, param.Between("duration", s.DurationHours, 10, 1000))
	}

	return errors.Join(checks...)
}

// Level parses the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Settings.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level '%s': %w", c.Settings.LogLevel, err)
	}
	return level, nil
}

// OutputPath returns the output file with the image format extension
func (c *Config) OutputPath() string {
	return fmt.Sprintf("%s.%s", c.Output.File, c.Output.Format)
}

// Params returns the simulation parameters with DurationDays folded into DurationHours
func (c *Config) Params() simulation.Params {
	p := c.Simulation.Params
	if c.Simulation.DurationDays != 0 {
		p.DurationHours = c.Simulation.DurationDays * 24
	}
	return p
}
