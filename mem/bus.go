package mem

import "fmt"

// AddressMask keeps the 20 bits that the MSP430X address bus carries.
const AddressMask uint32 = 0xFFFFF

// AccessMode tells if a bus access moves a byte or a 16-bit word.
type AccessMode int

// The access modes the bus supports.
const (
	AccessByte AccessMode = iota
	AccessWord
)

// Bytes returns the number of bytes an access of this mode moves.
func (m AccessMode) Bytes() uint32 {
	if m == AccessWord {
		return 2
	}

	return 1
}

func (m AccessMode) String() string {
	switch m {
	case AccessByte:
		return "byte"
	case AccessWord:
		return "word"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// A Bus reads and writes the address space of the chip. Word accesses are
// little-endian and ignore the lowest address bit.
type Bus interface {
	Read(address uint32, mode AccessMode) (uint16, error)
	Write(address uint32, value uint16, mode AccessMode) error
}

// An IOUnit is a peripheral whose registers are mapped into the address space.
// It receives the full bus address.
type IOUnit interface {
	Name() string
	Read(address uint32, word bool) (uint16, error)
	Write(address uint32, value uint16, word bool) error
}
