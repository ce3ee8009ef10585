package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/match"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/parse"
)

type FamiliesConfig struct {
	pattern string
	vars    *parse.ConfigVars
}

var _ Mode = &FamiliesConfig{}

func NewFamiliesConfig() *FamiliesConfig {
	config := &FamiliesConfig{}
	config.vars = parse.NewConfigVars("families.config")
	config.vars.String(&config.pattern, "Pattern", "*")
	return config
}

func (config *FamiliesConfig) Vars() *parse.ConfigVars { return config.vars }

func (config *FamiliesConfig) ExampleConfig() string {
	return `[families.config]

#####################
## Optional Fields ##
#####################

# Pattern is a glob which family names must match to be listed. A pattern
# given on the command line takes precedence.
#
# Pattern = xoroshiro*`
}

func (config *FamiliesConfig) ReadConfig(fname string) error {
	return parse.ReadConfig(fname, config.vars)
}

// Run prints one line per matching family: its name, output width and the
// base-2 logarithms of its jump distances, with - for none.
func (config *FamiliesConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	pattern := config.pattern
	if len(args) > 1 {
		return fmt.Errorf("The families mode takes at most one pattern, "+
			"but was given %d.", len(args))
	} else if len(args) == 1 {
		pattern = args[0]
	}
	pattern = strings.ToLower(pattern)

	n := 0
	for _, name := range rand.Names() {
		if !match.Match(name, pattern) {
			continue
		}
		f, _ := rand.Lookup(name)
		gen, err := rand.New(f, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-14s %3d %4s %4s\n", name, gen.Bits(),
			exponent(gen.JumpExponent()), exponent(gen.LongJumpExponent()))
		n++
	}
	logging.Log().Debug().Str("pattern", pattern).Int("matched", n).
		Msg("families")

	if n == 0 {
		return fmt.Errorf("No family matches the pattern '%s'.", pattern)
	}
	return nil
}

func exponent(e int) string {
	if e == 0 {
		return "-"
	}
	return fmt.Sprintf("2^%d", e)
}
