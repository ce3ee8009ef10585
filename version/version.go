/*package version holds the semantic version of randlib and the rules for
deciding whether data written by one version can be read by another.*/
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the version string representing the semantic version number
// of the source code. It is stamped into every checkpoint.
const SourceVersion = "1.2.0"

// ErrInvalid is returned for strings which are not semantic versions.
var ErrInvalid = errors.New("version string does not take the form of " +
	"three period-separated non-negative numbers")

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("%w: '%s'", ErrInvalid, s)
	}

	var vals [3]int
	for i, tok := range toks {
		vals[i], err = strconv.Atoi(tok)
		if err != nil || vals[i] < 0 {
			return -1, -1, -1, fmt.Errorf("%w: '%s'", ErrInvalid, s)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	if major1 == major2 {
		if minor1 == minor2 {
			return patch1 > patch2, nil
		}
		return minor1 > minor2, nil
	}
	return major1 > major2, nil
}

// Readable returns true if data written by version written can be read by
// this source: the writer must share the major version and must not be
// later than SourceVersion.
func Readable(written string) (bool, error) {
	later, err := Later(written, SourceVersion)
	if err != nil {
		return false, err
	}
	major, _, _, _ := Parse(written)
	current, _, _, _ := Parse(SourceVersion)
	return !later && major == current, nil
}
