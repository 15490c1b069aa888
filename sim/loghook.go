package sim

import (
	"log"
)

// LogHookBase is embedded by hooks that print what they observe, such as the
// event logger and the DMA logger.
type LogHookBase struct {
	*log.Logger
}
