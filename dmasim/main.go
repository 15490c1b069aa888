// Command dmasim runs the DMA controller on a simulated MSP430F5437.
package main

import (
	"github.com/sarchlab/mcusim/dmasim/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	code := 0
	if err := cmd.Execute(); err != nil {
		code = 1
	}

	atexit.Exit(code)
}
