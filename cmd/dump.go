package cmd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/parse"
)

type DumpConfig struct {
	count  int64
	format string
	skip   int64
	jumps  int64
	vars   *parse.ConfigVars
}

var _ Mode = &DumpConfig{}

func NewDumpConfig() *DumpConfig {
	config := &DumpConfig{}
	vars := parse.NewConfigVars("dump.config")
	vars.Int(&config.count, "Count", 1000)
	vars.String(&config.format, "Format", "hex")
	vars.Int(&config.skip, "Skip", 0)
	vars.Int(&config.jumps, "Jumps", 0)
	config.vars = vars
	return config
}

func (config *DumpConfig) Vars() *parse.ConfigVars { return config.vars }

func (config *DumpConfig) ExampleConfig() string {
	return `[dump.config]

#####################
## Optional Fields ##
#####################

# Count is the number of values written.
Count = 1000

# Format is one of:
#   hex     - one zero-padded hexadecimal value per line
#   decimal - one decimal value per line
#   float   - one uniform float in [0, 1) per line
#   binary  - raw little-endian values, 4, 8 or 16 bytes each depending on
#             the width of the family. Refused when stdout is a terminal.
Format = hex

# Skip discards this many values before writing.
# Skip = 0

# Jumps calls the family's jump function this many times before writing,
# which selects a non-overlapping substream.
# Jumps = 0`
}

func (config *DumpConfig) ReadConfig(fname string) error {
	if err := parse.ReadConfig(fname, config.vars); err != nil {
		return err
	}
	return config.validate()
}

func (config *DumpConfig) validate() error {
	if config.count < 0 {
		return fmt.Errorf("'Count' set to the negative value %d.", config.count)
	} else if config.skip < 0 {
		return fmt.Errorf("'Skip' set to the negative value %d.", config.skip)
	} else if config.jumps < 0 {
		return fmt.Errorf("'Jumps' set to the negative value %d.", config.jumps)
	}
	return validateFormat(config.format)
}

func validateFormat(format string) error {
	switch format {
	case "hex", "decimal", "float", "binary":
		return nil
	}
	return fmt.Errorf("The 'Format' variable is set to '%s', which I don't "+
		"recognize.", format)
}

func (config *DumpConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	if len(args) != 0 {
		return fmt.Errorf("The dump mode takes no arguments besides its "+
			"config file, but was given %v.", args)
	}

	gen, err := gConfig.Generator()
	if err != nil {
		return err
	}
	for i := int64(0); i < config.jumps; i++ {
		if err := gen.Jump(); err != nil {
			return err
		}
	}
	for i := int64(0); i < config.skip; i++ {
		gen.Next()
	}

	t := time.Now()
	if err := writeValues(out, gen, config.format, config.count); err != nil {
		return err
	}
	logging.Log().Info().Str("family", gen.Family().String()).
		Int64("count", config.count).Dur("elapsed", time.Since(t)).
		Msg("dump")
	return nil
}

// writeValues writes count outputs of gen to out in the given format.
func writeValues(out io.Writer, gen *rand.Generator, format string, count int64) error {
	if format == "binary" {
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return fmt.Errorf("I won't write binary output to a terminal. " +
				"Redirect stdout to a file or a pipe.")
		}
	}

	w := bufio.NewWriter(out)
	bits := gen.Bits()
	var buf [16]byte
	for i := int64(0); i < count; i++ {
		switch {
		case format == "float":
			w.WriteString(strconv.FormatFloat(gen.Float64(), 'g', 17, 64))
			w.WriteByte('\n')
		case bits == 128:
			x := gen.Next128()
			switch format {
			case "hex":
				fmt.Fprintf(w, "%016x%016x\n", x.Hi, x.Lo)
			case "decimal":
				w.WriteString(x.String())
				w.WriteByte('\n')
			case "binary":
				binary.LittleEndian.PutUint64(buf[:8], x.Lo)
				binary.LittleEndian.PutUint64(buf[8:], x.Hi)
				w.Write(buf[:16])
			}
		default:
			x := gen.Next()
			switch format {
			case "hex":
				if bits <= 32 {
					fmt.Fprintf(w, "%08x\n", x)
				} else {
					fmt.Fprintf(w, "%016x\n", x)
				}
			case "decimal":
				w.WriteString(strconv.FormatUint(x, 10))
				w.WriteByte('\n')
			case "binary":
				if bits <= 32 {
					binary.LittleEndian.PutUint32(buf[:4], uint32(x))
					w.Write(buf[:4])
				} else {
					binary.LittleEndian.PutUint64(buf[:8], x)
					w.Write(buf[:8])
				}
			}
		}
	}
	return w.Flush()
}
