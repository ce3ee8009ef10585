package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/version"
)

var modeShort = map[string]string{
	"families":   "list the generator families",
	"dump":       "write values from the configured generator",
	"check":      "run statistical and consistency checks on families",
	"checkpoint": "save a generator to a checkpoint file or resume one",
	"serve":      "serve named generator streams over the Redis protocol",
}

var modeArgs = map[string]string{
	"families":   "[pattern]",
	"dump":       "",
	"check":      "[pattern]",
	"checkpoint": "save|resume",
	"serve":      "",
}

// NewRootCommand returns the randlib command with one subcommand per mode.
// Each subcommand takes the variables of its mode as flags and an optional
// ____.<mode>.config file as its last argument.
func NewRootCommand() *cobra.Command {
	gConfig := NewGlobalConfig()
	modes := NewModes()
	var gConfigName string

	root := &cobra.Command{
		Use:   "randlib",
		Short: "randlib generates deterministic pseudo-random streams",
		Long: "randlib generates deterministic pseudo-random streams.\n\n" +
			"Every mode reads the global config file given by --config or $" +
			GlobalConfigEnv + ",\nif either is set. Try 'randlib help config'.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&gConfigName, "config", "",
		"global config file (env "+GlobalConfigEnv+")")
	gConfig.Vars().AddFlags(root.PersistentFlags())

	for _, name := range ModeOrder {
		name, mode := name, modes[name]
		use := name
		if modeArgs[name] != "" {
			use += " " + modeArgs[name]
		}
		c := &cobra.Command{
			Use:   use + " [flags] [____." + name + ".config]",
			Short: modeShort[name],
			Long:  modeShort[name] + "\n\n" + mode.ExampleConfig(),
			RunE: func(c *cobra.Command, args []string) error {
				return runMode(name, mode, gConfig, gConfigName, args,
					c.OutOrStdout(), c.ErrOrStderr())
			},
		}
		mode.Vars().AddFlags(c.Flags())
		root.AddCommand(c)
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the version of randlib",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintf(c.OutOrStdout(), "randlib version %s\n",
				version.SourceVersion)
		},
	})
	root.SetHelpCommand(helpCommand(gConfig, modes))
	return root
}

// helpCommand prints usage for modes and example config files for
// 'config' and '<mode>.config' targets.
func helpCommand(gConfig *GlobalConfig, modes map[string]Mode) *cobra.Command {
	return &cobra.Command{
		Use:   "help [mode | config | mode.config]",
		Short: "print help for a mode or an example config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			root := c.Root()
			if len(args) == 0 {
				return root.Help()
			}
			target := args[0]
			if target == "config" {
				fmt.Fprintln(c.OutOrStdout(), gConfig.ExampleConfig())
				return nil
			}
			if mode, ok := modes[strings.TrimSuffix(target, ".config")]; ok &&
				strings.HasSuffix(target, ".config") {
				fmt.Fprintln(c.OutOrStdout(), mode.ExampleConfig())
				return nil
			}
			sub, _, err := root.Find([]string{target})
			if err != nil || sub == root {
				return fmt.Errorf("I don't recognize the help target '%s'.",
					target)
			}
			return sub.Help()
		},
	}
}

// runMode reads the global and mode config files, sets up logging and runs
// the mode.
func runMode(
	name string, mode Mode, gConfig *GlobalConfig, gConfigName string,
	args []string, out, errOut io.Writer,
) error {
	if gConfigName == "" {
		gConfigName = os.Getenv(GlobalConfigEnv)
	}
	if err := gConfig.ReadConfig(gConfigName); err != nil {
		return err
	}
	gConfig.setupLogging(errOut)

	configName, args := splitConfig(args)
	if err := mode.ReadConfig(configName); err != nil {
		return err
	}

	logging.Log().Debug().Str("mode", name).Str("config", configName).
		Str("global", gConfigName).Str("family", gConfig.Family).
		Msg("running")
	if logging.Mode == logging.Performance {
		defer logging.Mem(name)
	}
	return mode.Run(args, gConfig, out)
}

// splitConfig removes a trailing config file name from args.
func splitConfig(args []string) (string, []string) {
	if len(args) > 0 && isConfig(args[len(args)-1]) {
		return args[len(args)-1], args[:len(args)-1]
	}
	return "", args
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return strings.HasSuffix(s, ".config")
}

// Execute runs the randlib command on the process arguments. The returned
// name is the mode which failed.
func Execute() (string, error) {
	c, err := NewRootCommand().ExecuteC()
	if err != nil {
		return c.Name(), err
	}
	return "", nil
}
