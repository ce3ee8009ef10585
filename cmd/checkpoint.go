package cmd

import (
	"fmt"
	"io"

	"github.com/phil-mansfield/randlib/checkpoint"
	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/parse"
)

type CheckpointConfig struct {
	file   string
	codec  string
	count  int64
	format string
	vars   *parse.ConfigVars
}

var _ Mode = &CheckpointConfig{}

func NewCheckpointConfig() *CheckpointConfig {
	config := &CheckpointConfig{}
	vars := parse.NewConfigVars("checkpoint.config")
	vars.String(&config.file, "File", "randlib.checkpoint")
	vars.String(&config.codec, "Codec", string(checkpoint.LZ4))
	vars.Int(&config.count, "Count", 0)
	vars.String(&config.format, "Format", "hex")
	config.vars = vars
	return config
}

func (config *CheckpointConfig) Vars() *parse.ConfigVars { return config.vars }

func (config *CheckpointConfig) ExampleConfig() string {
	return `[checkpoint.config]

# The checkpoint mode is run as either
#   randlib checkpoint save   - seeds the generator from the global config
#                               file, discards Count values and saves it.
#   randlib checkpoint resume - loads the generator from File, writes Count
#                               values and saves the advanced state back.

# File holds the checkpoint. A leading ~ is expanded to the home directory.
File = randlib.checkpoint

# Codec compresses the saved state: none, lz4, snappy or zstd.
Codec = lz4

# Count = 0

# Format of the values written by resume, as in the dump mode.
# Format = hex`
}

func (config *CheckpointConfig) ReadConfig(fname string) error {
	if err := parse.ReadConfig(fname, config.vars); err != nil {
		return err
	}
	if _, err := checkpoint.ParseCodec(config.codec); err != nil {
		return fmt.Errorf("The 'Codec' variable is set to '%s', which I "+
			"don't recognize.", config.codec)
	}
	if config.count < 0 {
		return fmt.Errorf("'Count' set to the negative value %d.", config.count)
	}
	if config.file == "" {
		return fmt.Errorf("The 'File' variable isn't set.")
	}
	return validateFormat(config.format)
}

func (config *CheckpointConfig) Run(
	args []string, gConfig *GlobalConfig, out io.Writer,
) error {
	if len(args) != 1 || (args[0] != "save" && args[0] != "resume") {
		return fmt.Errorf("The checkpoint mode must be run as " +
			"'randlib checkpoint save' or 'randlib checkpoint resume'.")
	}
	codec, _ := checkpoint.ParseCodec(config.codec)

	if args[0] == "save" {
		gen, err := gConfig.Generator()
		if err != nil {
			return err
		}
		for i := int64(0); i < config.count; i++ {
			gen.Next()
		}
		c, err := checkpoint.SaveFile(config.file, gen, codec)
		if err != nil {
			return err
		}
		logging.Log().Info().Str("id", c.ID.String()).
			Str("family", c.Family.String()).Str("codec", string(c.Codec)).
			Int("size", c.Size).Msg("saved checkpoint")
		fmt.Fprintf(out, "%s %s %s\n", c.ID, c.Family, config.file)
		return nil
	}

	gen, c, err := checkpoint.LoadFile(config.file)
	if err != nil {
		return err
	}
	logging.Log().Info().Str("id", c.ID.String()).
		Str("family", c.Family.String()).Time("created", c.Created).
		Msg("resumed checkpoint")
	if err := writeValues(out, gen, config.format, config.count); err != nil {
		return err
	}
	_, err = checkpoint.SaveFile(config.file, gen, codec)
	return err
}
