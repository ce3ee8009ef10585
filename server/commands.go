package server

import (
	"strconv"
	"strings"

	"github.com/tidwall/match"
	"github.com/tidwall/redcon"
	"github.com/tidwall/rhh"

	"github.com/phil-mansfield/randlib/math/rand"
)

// maxCount caps the number of values a single NEXT or FLOAT returns.
const maxCount = 1 << 16

type command struct {
	// arity is the exact number of args including the command name, or
	// the negated minimum when the command takes optional args.
	arity int
	max   int
	fn    func(s *Server, args []string) (interface{}, error)
}

var commands = newCommandTable()

func newCommandTable() *rhh.Map {
	m := rhh.New(32)
	m.Set("ping", command{-1, 2, cmdPING})
	m.Set("families", command{-1, 2, cmdFAMILIES})
	m.Set("open", command{-3, 4, cmdOPEN})
	m.Set("close", command{2, 2, cmdCLOSE})
	m.Set("streams", command{-1, 2, cmdSTREAMS})
	m.Set("info", command{2, 2, cmdINFO})
	m.Set("next", command{-2, 3, cmdNEXT})
	m.Set("float", command{-2, 3, cmdFLOAT})
	m.Set("intn", command{3, 3, cmdINTN})
	m.Set("range", command{4, 4, cmdRANGE})
	m.Set("jump", command{-2, 3, cmdJUMP})
	m.Set("state", command{2, 2, cmdSTATE})
	m.Set("restore", command{3, 3, cmdRESTORE})
	m.Set("clone", command{3, 3, cmdCLONE})
	return m
}

func lookupCommand(args []string) (command, error) {
	v, ok := commands.Get(args[0])
	if !ok {
		return command{}, errUnknownCommand(args)
	}
	cmd := v.(command)
	if cmd.arity >= 0 && len(args) != cmd.arity ||
		cmd.arity < 0 && (len(args) < -cmd.arity || len(args) > cmd.max) {
		return command{}, errWrongNumArgs(args)
	}
	return cmd, nil
}

// PING [message]
// help: returns PONG, or message if one is given.
func cmdPING(s *Server, args []string) (interface{}, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	return redcon.SimpleString("PONG"), nil
}

// FAMILIES [pattern]
// help: returns the sorted names of the supported families, optionally
//       filtered by a glob pattern.
func cmdFAMILIES(s *Server, args []string) (interface{}, error) {
	pattern := "*"
	if len(args) == 2 {
		pattern = strings.ToLower(args[1])
	}
	out := []string{}
	for _, name := range rand.Names() {
		if match.Match(name, pattern) {
			out = append(out, name)
		}
	}
	return out, nil
}

// OPEN name family [seed]
// help: creates a stream. Without a seed the stream is seeded from the
//       clock and the system entropy source.
func cmdOPEN(s *Server, args []string) (interface{}, error) {
	f, err := rand.Lookup(args[2])
	if err != nil {
		return nil, err
	}
	var gen *rand.Generator
	if len(args) == 4 {
		seed, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return nil, ErrSyntax
		}
		gen, err = rand.New(f, seed)
		if err != nil {
			return nil, err
		}
	} else if gen, err = rand.NewTimeSeed(f); err != nil {
		return nil, err
	}
	if err := s.open(args[1], gen); err != nil {
		return nil, err
	}
	return redcon.SimpleString("OK"), nil
}

// CLOSE name
// help: removes a stream; returns 1 if it existed and 0 otherwise.
func cmdCLOSE(s *Server, args []string) (interface{}, error) {
	if s.close(args[1]) {
		return 1, nil
	}
	return 0, nil
}

// STREAMS [pattern]
// help: returns the sorted names of open streams matching pattern.
func cmdSTREAMS(s *Server, args []string) (interface{}, error) {
	pattern := "*"
	if len(args) == 2 {
		pattern = args[1]
	}
	return s.names(pattern), nil
}

// INFO name
// help: returns the family, output width and jump exponents of a stream.
func cmdINFO(s *Server, args []string) (interface{}, error) {
	var out []interface{}
	err := s.with(args[1], func(gen *rand.Generator) error {
		out = []interface{}{
			gen.Family().String(), gen.Bits(),
			gen.JumpExponent(), gen.LongJumpExponent(),
		}
		return nil
	})
	return out, err
}

func parseCount(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 || n > maxCount {
		return 0, ErrSyntax
	}
	return n, nil
}

// NEXT name [count]
// help: returns the next raw output of a stream as a decimal string, or an
//       array of count outputs.
func cmdNEXT(s *Server, args []string) (interface{}, error) {
	n, err := parseCount(args, 2)
	if err != nil {
		return nil, err
	}
	var out interface{}
	err = s.with(args[1], func(gen *rand.Generator) error {
		if n == 0 {
			out = strconv.FormatUint(gen.Next(), 10)
			return nil
		}
		vals := make([]string, n)
		for i := range vals {
			vals[i] = strconv.FormatUint(gen.Next(), 10)
		}
		out = vals
		return nil
	})
	return out, err
}

// FLOAT name [count]
// help: returns uniform floats in [0, 1).
func cmdFLOAT(s *Server, args []string) (interface{}, error) {
	n, err := parseCount(args, 2)
	if err != nil {
		return nil, err
	}
	var out interface{}
	err = s.with(args[1], func(gen *rand.Generator) error {
		if n == 0 {
			out = strconv.FormatFloat(gen.Float64(), 'g', -1, 64)
			return nil
		}
		vals := make([]string, n)
		for i := range vals {
			vals[i] = strconv.FormatFloat(gen.Float64(), 'g', -1, 64)
		}
		out = vals
		return nil
	})
	return out, err
}

// INTN name bound
// help: returns an integer in [0, bound).
func cmdINTN(s *Server, args []string) (interface{}, error) {
	bound, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, ErrSyntax
	}
	var out int
	err = s.with(args[1], func(gen *rand.Generator) (err error) {
		out, err = gen.Intn(bound)
		return err
	})
	return out, err
}

// RANGE name low high
// help: returns an integer in [low, high).
func cmdRANGE(s *Server, args []string) (interface{}, error) {
	low, err1 := strconv.Atoi(args[2])
	high, err2 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil {
		return nil, ErrSyntax
	}
	var out int
	err := s.with(args[1], func(gen *rand.Generator) (err error) {
		out, err = gen.IntRange(low, high)
		return err
	})
	return out, err
}

// JUMP name [LONG]
// help: advances a stream by its jump distance, or its long jump distance.
func cmdJUMP(s *Server, args []string) (interface{}, error) {
	long := false
	if len(args) == 3 {
		if strings.ToLower(args[2]) != "long" {
			return nil, ErrSyntax
		}
		long = true
	}
	err := s.with(args[1], func(gen *rand.Generator) error {
		if long {
			return gen.LongJump()
		}
		return gen.Jump()
	})
	if err != nil {
		return nil, err
	}
	return redcon.SimpleString("OK"), nil
}

// STATE name
// help: returns the binary snapshot of a stream.
func cmdSTATE(s *Server, args []string) (interface{}, error) {
	var out []byte
	err := s.with(args[1], func(gen *rand.Generator) error {
		out = gen.State()
		return nil
	})
	return out, err
}

// RESTORE name snapshot
// help: replaces the state of a stream. The stream is left untouched if the
//       snapshot is rejected.
func cmdRESTORE(s *Server, args []string) (interface{}, error) {
	err := s.with(args[1], func(gen *rand.Generator) error {
		return gen.SetState([]byte(args[2]))
	})
	if err != nil {
		return nil, err
	}
	return redcon.SimpleString("OK"), nil
}

// CLONE source destination
// help: opens destination as an independent copy of source.
func cmdCLONE(s *Server, args []string) (interface{}, error) {
	var c *rand.Generator
	err := s.with(args[1], func(gen *rand.Generator) error {
		c = gen.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.open(args[2], c); err != nil {
		return nil, err
	}
	return redcon.SimpleString("OK"), nil
}
