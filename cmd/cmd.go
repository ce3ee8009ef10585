/*package cmd contains code for running randlib in its various command line
modes.*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/parse"
	"github.com/phil-mansfield/randlib/version"
)

// GlobalConfigEnv names the environment variable which may hold the path of
// the global config file.
const GlobalConfigEnv = "RANDLIB_GLOBAL_CONFIG"

// ModeOrder lists the command line modes in the order help shows them.
var ModeOrder = []string{"families", "dump", "check", "checkpoint", "serve"}

// NewModes returns a fresh instance of every mode, keyed by name.
func NewModes() map[string]Mode {
	return map[string]Mode{
		"families":   NewFamiliesConfig(),
		"dump":       NewDumpConfig(),
		"check":      NewCheckConfig(),
		"checkpoint": NewCheckpointConfig(),
		"serve":      NewServeConfig(),
	}
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// Vars returns the variables of the mode. They can be set in the mode's
	// config file, through the environment or with flags.
	Vars() *parse.ConfigVars
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode. An empty fname only applies the environment and flags.
	ReadConfig(fname string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes the positional command line arguments
	// which are not config files and an initialized GlobalConfig, and writes
	// its output to out.
	Run(args []string, gConfig *GlobalConfig, out io.Writer) error
}

// GlobalConfig is a config file used by every mode. It contains the family
// and seed of the generator the modes draw from and the logging setup.
type GlobalConfig struct {
	Version   string
	LogMode   string
	LogFormat string
	Family    string
	Seed      uint64
	TimeSeed  bool

	vars    *parse.ConfigVars
	family  rand.Family
	logFlag logging.Flag
}

var _ Mode = &GlobalConfig{}

// NewGlobalConfig returns a GlobalConfig holding the default values.
func NewGlobalConfig() *GlobalConfig {
	config := &GlobalConfig{}
	vars := parse.NewConfigVars("config")
	vars.String(&config.Version, "Version", version.SourceVersion)
	vars.String(&config.LogMode, "LogMode", "nil")
	vars.String(&config.LogFormat, "LogFormat", "console")
	vars.String(&config.Family, "Family", rand.Xoroshiro256.String())
	vars.Uint(&config.Seed, "Seed", 0)
	vars.Bool(&config.TimeSeed, "TimeSeed", false)
	config.vars = vars
	return config
}

func (config *GlobalConfig) Vars() *parse.ConfigVars { return config.vars }

// ReadConfig reads a config file and returns an error, if applicable.
func (config *GlobalConfig) ReadConfig(fname string) error {
	if err := parse.ReadConfig(fname, config.vars); err != nil {
		return err
	}
	return config.validate()
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set.
func (config *GlobalConfig) validate() error {
	major, minor, patch, err := version.Parse(config.Version)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %s",
			err.Error())
	}
	smajor, sminor, spatch, _ := version.Parse(version.SourceVersion)
	if major != smajor || minor != sminor || patch != spatch {
		return fmt.Errorf("The 'Version' variable is set to %s, but the "+
			"version of the source is %s",
			config.Version, version.SourceVersion)
	}

	if config.logFlag, err = logging.ParseFlag(config.LogMode); err != nil {
		return fmt.Errorf("The 'LogMode' variable is set to '%s', which I "+
			"don't recognize.", config.LogMode)
	}

	switch config.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("The 'LogFormat' variable is set to '%s', which I "+
			"don't recognize.", config.LogFormat)
	}

	if config.family, err = rand.Lookup(config.Family); err != nil {
		return fmt.Errorf("The 'Family' variable is set to '%s', which I "+
			"don't recognize. Try 'randlib families'.", config.Family)
	}

	return nil
}

// Generator returns a new generator of the configured family and seed.
func (config *GlobalConfig) Generator() (*rand.Generator, error) {
	if config.TimeSeed {
		return rand.NewTimeSeed(config.family)
	}
	return rand.New(config.family, config.Seed)
}

// setupLogging points the shared logger at w in the configured mode and
// format.
func (config *GlobalConfig) setupLogging(w io.Writer) {
	logging.SetMode(config.logFlag)
	if config.LogFormat == "json" {
		logging.SetJSONWriter(w)
		return
	}
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	logging.SetConsoleWriter(w, !color)
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[config]
# Target version of randlib. This option merely allows randlib to notice
# when its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# How much randlib reports about what it's doing: nil, performance or debug.
LogMode = nil
# Either console or json. Logs are always written to stderr.
LogFormat = console

# The generator family used by every mode. 'randlib families' lists them.
Family = xoroshiro256
# The seed of the generator. If TimeSeed is true, the seed is instead taken
# from the clock and the system entropy source and runs are not repeatable.
Seed = 0
# TimeSeed = false`, version.SourceVersion)
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	panic("GlobalConfig.Run() should never be executed.")
}
