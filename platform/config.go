package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/mcusim/sim"
)

// Config describes the simulated machine.
type Config struct {
	DMABase        uint32
	DMAVector      int
	UseMultiplexer bool
	MultiplexerBit int

	// USCITriggers lists the serial units whose RX and TX flags are bound
	// into the DMA trigger table, e.g. "USCIB0".
	USCITriggers []string

	RAMStart uint32
	RAMSize  uint32

	ClockFreq sim.Freq
	BaudRate  sim.Freq

	MaxVector int
}

// DefaultConfig returns the MSP430F5437 setup.
func DefaultConfig() Config {
	return Config{
		DMABase:        0x0500,
		DMAVector:      50,
		MultiplexerBit: 0,
		USCITriggers:   []string{"USCIB0"},
		RAMStart:       0x1C00,
		RAMSize:        0x4000,
		ClockFreq:      8 * sim.MHz,
		BaudRate:       115200 * sim.Hz,
		MaxVector:      63,
	}
}

// TransmitCycles returns how many clock cycles a serial byte takes, with one
// start and one stop bit.
func (c Config) TransmitCycles() sim.VTimeInCycle {
	return c.ClockFreq.CyclesPerTick(c.BaudRate / 10)
}

// LoadConfig starts from DefaultConfig, applies the given dotenv files and
// then the process environment. Missing files are skipped.
func LoadConfig(files ...string) (Config, error) {
	values := make(map[string]string)

	for _, f := range files {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}

		for k, v := range m {
			values[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, envPrefix) {
			values[k] = v
		}
	}

	cfg := DefaultConfig()
	err := cfg.apply(values)

	return cfg, err
}

const envPrefix = "MCUSIM_"

func (c *Config) apply(values map[string]string) error {
	var errs []error

	set := func(key string, parse func(string) error) {
		v, ok := values[envPrefix+key]
		if !ok {
			return
		}

		if err := parse(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		}
	}

	set("DMA_BASE", uint32Parser(&c.DMABase))
	set("DMA_VECTOR", intParser(&c.DMAVector))
	set("DMA_USE_MUX", func(s string) (err error) {
		c.UseMultiplexer, err = strconv.ParseBool(s)
		return err
	})
	set("DMA_MUX_BIT", intParser(&c.MultiplexerBit))
	set("DMA_USCI_TRIGGERS", func(s string) error {
		c.USCITriggers = nil

		for _, name := range strings.Split(s, ",") {
			name = strings.ToUpper(strings.TrimSpace(name))
			if name != "" {
				c.USCITriggers = append(c.USCITriggers, name)
			}
		}

		return nil
	})
	set("RAM_START", uint32Parser(&c.RAMStart))
	set("RAM_SIZE", uint32Parser(&c.RAMSize))
	set("CLOCK_HZ", freqParser(&c.ClockFreq))
	set("BAUD_RATE", freqParser(&c.BaudRate))
	set("MAX_VECTOR", intParser(&c.MaxVector))

	return errors.Join(errs...)
}

func uint32Parser(dst *uint32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return err
		}

		*dst = uint32(v)

		return nil
	}
}

func intParser(dst *int) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(s, 0, 0)
		if err != nil {
			return err
		}

		*dst = int(v)

		return nil
	}
}

func freqParser(dst *sim.Freq) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}

		if v <= 0 {
			return errors.New("must be positive")
		}

		*dst = sim.Freq(v)

		return nil
	}
}
