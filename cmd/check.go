package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/match"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/parse"
	"github.com/phil-mansfield/randlib/quality"
)

type CheckConfig struct {
	families    string
	draws, bins int64
	bound       int64
	alpha       float64
	vars        *parse.ConfigVars
}

var _ Mode = &CheckConfig{}

func NewCheckConfig() *CheckConfig {
	config := &CheckConfig{}
	def := quality.DefaultConfig()
	vars := parse.NewConfigVars("check.config")
	vars.String(&config.families, "Families", "")
	vars.Int(&config.draws, "Draws", int64(def.Draws))
	vars.Int(&config.bins, "Bins", int64(def.Bins))
	vars.Int(&config.bound, "Bound", int64(def.Bound))
	vars.Float(&config.alpha, "Alpha", def.Alpha)
	config.vars = vars
	return config
}

func (config *CheckConfig) Vars() *parse.ConfigVars { return config.vars }

func (config *CheckConfig) ExampleConfig() string {
	return `[check.config]

# All fields are optional.

# Families is a glob selecting the families to check. If it isn't set, only
# the family in the global config file is checked. Use * for all of them.
# Families = pcg*

# Draws is the number of values drawn for each statistical test, Bins the
# number of chi-square bins and Bound the bound used to test Intn.
# Draws = 100000
# Bins = 64
# Bound = 1000

# A test fails when its p-value is at or below Alpha.
# Alpha = 0.001`
}

func (config *CheckConfig) ReadConfig(fname string) error {
	if err := parse.ReadConfig(fname, config.vars); err != nil {
		return err
	}
	return config.validate()
}

func (config *CheckConfig) validate() error {
	if config.bins < 2 {
		return fmt.Errorf("'Bins' must be at least 2, but is %d.", config.bins)
	} else if config.draws < 5*config.bins {
		return fmt.Errorf("'Draws' is %d, but it must be at least five "+
			"times 'Bins', %d.", config.draws, config.bins)
	} else if config.bound < 1 {
		return fmt.Errorf("'Bound' must be positive, but is %d.", config.bound)
	} else if config.alpha <= 0 || config.alpha >= 1 {
		return fmt.Errorf("'Alpha' must be in (0, 1), but is %g.", config.alpha)
	}
	return nil
}

// Run checks every selected family and prints one line for each. It returns
// an error if any family fails.
func (config *CheckConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	pattern := config.families
	if len(args) > 1 {
		return fmt.Errorf("The check mode takes at most one pattern, "+
			"but was given %d.", len(args))
	} else if len(args) == 1 {
		pattern = args[0]
	}

	families := []rand.Family{gConfig.family}
	if pattern != "" {
		families = families[:0]
		for _, f := range rand.Families() {
			if match.Match(f.String(), strings.ToLower(pattern)) {
				families = append(families, f)
			}
		}
		if len(families) == 0 {
			return fmt.Errorf("No family matches the pattern '%s'.", pattern)
		}
	}

	c := quality.Config{
		Seed:  gConfig.Seed,
		Draws: int(config.draws),
		Bins:  int(config.bins),
		Bound: int(config.bound),
		Alpha: config.alpha,
	}

	failed := 0
	for _, f := range families {
		t := time.Now()
		r := quality.Suite(f, c)
		status := "PASS"
		if !r.Pass() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%-14s %s chi2 = %.2f (%d dof) p = %.4f\n",
			f, status, r.Chi.Statistic, r.Chi.DF, r.Chi.P)
		for _, err := range r.Errors {
			fmt.Fprintf(out, "    %s\n", err.Error())
		}
		logging.Log().Info().Str("family", f.String()).
			Dur("elapsed", time.Since(t)).Bool("pass", r.Pass()).Msg("check")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d families failed: %w",
			failed, len(families), quality.ErrFailed)
	}
	return nil
}
