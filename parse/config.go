/*package parse reads the variables of randlib's ini-style config files. A
variable can also be set by an environment variable or a command line flag,
which take precedence over the file:

	[dump.config]
	Family = pcg64_32
	Count = 1000

can be overridden by RANDLIB_DUMP_COUNT=10 or --count 10.*/
package parse

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix starts the name of every environment variable read by parse.
const EnvPrefix = "RANDLIB"

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	uintVar
	floatVar
	stringVar
	stringsVar
	boolVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case uintVar:
		return "unsigned int"
	case floatVar:
		return "float"
	case stringVar:
		return "string"
	case stringsVar:
		return "string list"
	case boolVar:
		return "bool"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

// ConfigVars is the set of variables in one section of a config file.
type ConfigVars struct {
	name            string
	v               *viper.Viper
	names           []string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return false
		}
		*ptr = i
		return true
	}
}

func uintConv(ptr *uint64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return false
		}
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.Trim(s, " ")
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false
		}
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	if strings.TrimSpace(a) == "" {
		return []string{}
	}
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.Trim(strs[i], " ")
	}
	return strs
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		*ptr = strToList(s)
		return true
	}
}

// NewConfigVars returns an empty set of variables for the config section
// name, e.g. "config" or "dump.config".
func NewConfigVars(name string) *ConfigVars {
	v := viper.New()
	v.SetConfigType("ini")
	return &ConfigVars{name: name, v: v}
}

func (vars *ConfigVars) add(name string, t varType, f conversionFunc, value string) {
	vars.names = append(vars.names, name)
	vars.varNames = append(vars.varNames, strings.ToLower(name))
	vars.varTypes = append(vars.varTypes, t)
	vars.conversionFuncs = append(vars.conversionFuncs, f)

	key := vars.key(name)
	vars.v.SetDefault(key, value)
	if err := vars.v.BindEnv(key, vars.EnvName(name)); err != nil {
		panic(err.Error())
	}
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr), strconv.FormatInt(value, 10))
}

func (vars *ConfigVars) Uint(ptr *uint64, name string, value uint64) {
	*ptr = value
	vars.add(name, uintVar, uintConv(ptr), strconv.FormatUint(value, 10))
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr),
		strconv.FormatFloat(value, 'g', -1, 64))
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr), value)
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr), strconv.FormatBool(value))
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr), strings.Join(value, ", "))
}

func (vars *ConfigVars) key(name string) string {
	return vars.name + "." + strings.ToLower(name)
}

// words splits a CamelCase variable name.
func words(name string) []string {
	var out []string
	start := 0
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(name[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				out = append(out, name[start:i])
				start = i
			}
		}
	}
	return append(out, name[start:])
}

// FlagName returns the command line flag which sets the variable name:
// LogMode is set by --log-mode.
func (vars *ConfigVars) FlagName(name string) string {
	return strings.ToLower(strings.Join(words(name), "-"))
}

// EnvName returns the environment variable which sets the variable name:
// LogMode in [config] is set by RANDLIB_LOG_MODE and Count in [dump.config]
// by RANDLIB_DUMP_COUNT.
func (vars *ConfigVars) EnvName(name string) string {
	parts := []string{EnvPrefix}
	if section := strings.TrimSuffix(vars.name, ".config"); section != "config" {
		parts = append(parts, strings.ReplaceAll(section, ".", "_"))
	}
	parts = append(parts, words(name)...)
	return strings.ToUpper(strings.Join(parts, "_"))
}

// AddFlags adds a flag for every variable to fs. Flags which are set on the
// command line override the config file and the environment.
func (vars *ConfigVars) AddFlags(fs *pflag.FlagSet) {
	for i, name := range vars.names {
		key := vars.key(name)
		flag := vars.FlagName(name)
		fs.String(flag, vars.v.GetString(key), fmt.Sprintf(
			"sets %s (%s, env %s)", name, vars.varTypes[i], vars.EnvName(name),
		))
		if err := vars.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err.Error())
		}
	}
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into vars and then converts every
// variable, applying environment variables and flags. An empty fname skips
// the file. A leading ~ in fname is expanded to the home directory.
func ReadConfig(fname string, vars *ConfigVars) error {
	if fname != "" {
		path, err := homedir.Expand(fname)
		if err != nil {
			return err
		}
		bs, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := checkValidNames(fname, bs, vars); err != nil {
			return err
		}
		if err := vars.v.ReadConfig(bytes.NewReader(bs)); err != nil {
			return fmt.Errorf("I could not parse the config file %s: %s",
				fname, err.Error())
		}
	}

	for i, name := range vars.varNames {
		val := vars.v.GetString(vars.key(name))
		if !vars.conversionFuncs[i](val) {
			typeName := vars.varTypes[i].String()
			a := "a"
			if typeName[0] == 'i' || typeName[0] == 'u' {
				a = "an"
			}
			return fmt.Errorf(
				"The variable '%s' expects values of type %s and '%s' "+
					"cannot be converted to %s %s.",
				vars.names[i], typeName, val, a, typeName,
			)
		}
	}
	return nil
}

// checkValidNames returns an error if the file assigns to anything other
// than the variables of vars.
func checkValidNames(fname string, bs []byte, vars *ConfigVars) error {
	fv := viper.New()
	fv.SetConfigType("ini")
	if err := fv.ReadConfig(bytes.NewReader(bs)); err != nil {
		return fmt.Errorf("I could not parse the config file %s: %s",
			fname, err.Error())
	}

	prefix := vars.name + "."
	for _, key := range fv.AllKeys() {
		if !strings.HasPrefix(key, prefix) {
			return fmt.Errorf(
				"The config file %s sets '%s' outside of the [%s] section.",
				fname, key, vars.name,
			)
		}
		if !vars.has(strings.TrimPrefix(key, prefix)) {
			return fmt.Errorf(
				"The config file %s assigns a value to the variable '%s', "+
					"but config files of type %s don't have that variable.",
				fname, strings.TrimPrefix(key, prefix), vars.name,
			)
		}
	}
	return nil
}

func (vars *ConfigVars) has(name string) bool {
	for _, n := range vars.varNames {
		if n == name {
			return true
		}
	}
	return false
}
