package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/parse"
	"github.com/phil-mansfield/randlib/server"
)

type ServeConfig struct {
	addr    string
	streams []string
	vars    *parse.ConfigVars
}

var _ Mode = &ServeConfig{}

func NewServeConfig() *ServeConfig {
	config := &ServeConfig{}
	vars := parse.NewConfigVars("serve.config")
	vars.String(&config.addr, "Addr", "127.0.0.1:6380")
	vars.Strings(&config.streams, "Streams", []string{})
	config.vars = vars
	return config
}

func (config *ServeConfig) Vars() *parse.ConfigVars { return config.vars }

func (config *ServeConfig) ExampleConfig() string {
	return `[serve.config]

# Addr is the TCP address the Redis-protocol server listens on.
Addr = 127.0.0.1:6380

#####################
## Optional Fields ##
#####################

# Streams are opened before the server accepts connections. Each is written
# as name:family:seed, and the seed may be left off to seed from the clock.
#
# Streams = jobs:pcg64_32:42, noise:xoroshiro256`
}

type streamDef struct {
	name   string
	family rand.Family
	seed   *uint64
}

func parseStream(s string) (streamDef, error) {
	toks := strings.Split(s, ":")
	if len(toks) < 2 || len(toks) > 3 || toks[0] == "" {
		return streamDef{}, fmt.Errorf("The stream '%s' does not take the "+
			"form name:family or name:family:seed.", s)
	}
	f, err := rand.Lookup(toks[1])
	if err != nil {
		return streamDef{}, fmt.Errorf("The stream '%s' uses the family "+
			"'%s', which I don't recognize.", s, toks[1])
	}
	def := streamDef{name: toks[0], family: f}
	if len(toks) == 3 {
		seed, err := strconv.ParseUint(toks[2], 0, 64)
		if err != nil {
			return streamDef{}, fmt.Errorf("The stream '%s' has the seed "+
				"'%s', which isn't an unsigned integer.", s, toks[2])
		}
		def.seed = &seed
	}
	return def, nil
}

func (config *ServeConfig) ReadConfig(fname string) error {
	if err := parse.ReadConfig(fname, config.vars); err != nil {
		return err
	}
	if config.addr == "" {
		return fmt.Errorf("The 'Addr' variable isn't set.")
	}
	for _, s := range config.streams {
		if _, err := parseStream(s); err != nil {
			return err
		}
	}
	return nil
}

// open creates the server and its configured streams.
func (config *ServeConfig) open() (*server.Server, error) {
	s := server.New()
	for _, str := range config.streams {
		def, _ := parseStream(str)
		var (
			gen *rand.Generator
			err error
		)
		if def.seed == nil {
			gen, err = rand.NewTimeSeed(def.family)
		} else {
			gen, err = rand.New(def.family, *def.seed)
		}
		if err != nil {
			return nil, err
		}
		if err := s.Open(def.name, gen); err != nil {
			return nil, fmt.Errorf("%w: '%s'", err, def.name)
		}
	}
	return s, nil
}

// Run serves until the process is interrupted.
func (config *ServeConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	if len(args) != 0 {
		return fmt.Errorf("The serve mode takes no arguments besides its "+
			"config file, but was given %v.", args)
	}
	s, err := config.open()
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	done := make(chan struct{})
	defer close(done)
	go stopOnSignal(s, sig, done)

	fmt.Fprintf(out, "serving %d streams on %s\n", s.Len(), config.addr)
	err = s.ListenAndServe(config.addr)
	if errors.Is(err, server.ErrClosed) {
		return nil
	}
	return err
}

// stopOnSignal closes s when sig fires. It returns without closing s once
// done is closed.
func stopOnSignal(s *server.Server, sig <-chan os.Signal, done <-chan struct{}) {
	select {
	case <-sig:
		logging.Log().Warn().Msg("interrupted, shutting down")
		s.Close()
	case <-done:
	}
}
