/*randlib writes, checks, checkpoints and serves deterministic pseudo-random
streams. Run 'randlib help' for its modes.*/
package main

import (
	"fmt"
	"os"

	"github.com/phil-mansfield/randlib/cmd"
)

func main() {
	mode, err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running mode %s:\n%s\n", mode, err.Error())
		os.Exit(1)
	}
}
