package mem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// ErrUnmapped is returned when no memory or IO unit answers an address.
var ErrUnmapped = errors.New("address not mapped")

// ErrOverlap is returned when a new region overlaps an existing one.
var ErrOverlap = errors.New("region overlaps an existing region")

// ErrDumpTooLarge is returned by Dump for more bytes than the address space
// holds.
var ErrDumpTooLarge = errors.New("dump larger than the address space")

// An AccessError tells which bus access failed.
type AccessError struct {
	Address uint32
	Mode    AccessMode
	Write   bool
	Err     error
}

func (e *AccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}

	return fmt.Sprintf("%s %s at 0x%05x: %v", e.Mode, op, e.Address, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// A Region is a range of the address space backed by RAM/flash or an IO unit.
type Region struct {
	Name  string
	Start uint32
	Size  uint32

	storage *Storage
	io      IOUnit
}

func (r *Region) contains(address uint32) bool {
	return address >= r.Start && address-r.Start < r.Size
}

// IsIO returns true if the region forwards to a peripheral.
func (r *Region) IsIO() bool {
	return r.io != nil
}

// AddressSpace is the Bus of the simulated chip. It dispatches every access to
// the memory region or peripheral that covers the address.
type AddressSpace struct {
	regions []*Region
}

// NewAddressSpace returns an empty address space.
func NewAddressSpace() *AddressSpace {
	return &AddressSpace{}
}

// MapMemory adds a RAM or flash region and returns its storage.
func (s *AddressSpace) MapMemory(name string, start, size uint32) (*Storage, error) {
	r := &Region{
		Name:    name,
		Start:   start & AddressMask,
		Size:    size,
		storage: NewStorage(uint64(size)),
	}

	if err := s.addRegion(r); err != nil {
		return nil, err
	}

	return r.storage, nil
}

// MapIO maps the registers of a peripheral.
func (s *AddressSpace) MapIO(start, size uint32, unit IOUnit) error {
	return s.addRegion(&Region{
		Name:  unit.Name(),
		Start: start & AddressMask,
		Size:  size,
		io:    unit,
	})
}

func (s *AddressSpace) addRegion(r *Region) error {
	for _, other := range s.regions {
		if r.Start < other.Start+other.Size && other.Start < r.Start+r.Size {
			return fmt.Errorf("%w: %s and %s", ErrOverlap, r.Name, other.Name)
		}
	}

	s.regions = append(s.regions, r)
	sort.Slice(s.regions, func(i, j int) bool {
		return s.regions[i].Start < s.regions[j].Start
	})

	return nil
}

// Regions returns the mapped regions, ordered by start address.
func (s *AddressSpace) Regions() []*Region {
	return s.regions
}

func (s *AddressSpace) find(address uint32) *Region {
	i := sort.Search(len(s.regions), func(i int) bool {
		r := s.regions[i]
		return r.Start+r.Size > address
	})

	if i < len(s.regions) && s.regions[i].contains(address) {
		return s.regions[i]
	}

	return nil
}

func alignedAddress(address uint32, mode AccessMode) uint32 {
	address &= AddressMask
	if mode == AccessWord {
		address &^= 1
	}

	return address
}

// Read reads a byte or a word.
func (s *AddressSpace) Read(address uint32, mode AccessMode) (uint16, error) {
	address = alignedAddress(address, mode)

	value, err := s.read(address, mode)
	if err != nil {
		return 0, &AccessError{Address: address, Mode: mode, Err: err}
	}

	return value, nil
}

func (s *AddressSpace) read(address uint32, mode AccessMode) (uint16, error) {
	r := s.find(address)
	if r == nil {
		return 0, ErrUnmapped
	}

	if r.io != nil {
		return r.io.Read(address, mode == AccessWord)
	}

	data, err := r.storage.Read(uint64(address-r.Start), uint64(mode.Bytes()))
	if err != nil {
		return 0, err
	}

	if mode == AccessWord {
		return binary.LittleEndian.Uint16(data), nil
	}

	return uint16(data[0]), nil
}

// Write writes a byte or a word.
func (s *AddressSpace) Write(address uint32, value uint16, mode AccessMode) error {
	address = alignedAddress(address, mode)

	err := s.write(address, value, mode)
	if err != nil {
		return &AccessError{Address: address, Mode: mode, Write: true, Err: err}
	}

	return nil
}

func (s *AddressSpace) write(address uint32, value uint16, mode AccessMode) error {
	r := s.find(address)
	if r == nil {
		return ErrUnmapped
	}

	if r.io != nil {
		return r.io.Write(address, value, mode == AccessWord)
	}

	offset := uint64(address - r.Start)
	if mode == AccessWord {
		data := make([]byte, 2)
		binary.LittleEndian.PutUint16(data, value)

		return r.storage.Write(offset, data)
	}

	return r.storage.Write(offset, []byte{byte(value)})
}

// Load copies a block of bytes into memory regions, e.g. to place a firmware
// image or test data. IO regions are not accepted.
func (s *AddressSpace) Load(address uint32, data []byte) error {
	for i, b := range data {
		addr := (address + uint32(i)) & AddressMask

		r := s.find(addr)
		if r == nil || r.io != nil {
			return &AccessError{
				Address: addr, Mode: AccessByte, Write: true, Err: ErrUnmapped,
			}
		}

		err := r.storage.Write(uint64(addr-r.Start), []byte{b})
		if err != nil {
			return err
		}
	}

	return nil
}

// Dump reads n bytes of memory regions without side effects on peripherals.
func (s *AddressSpace) Dump(address uint32, n int) ([]byte, error) {
	if n > int(AddressMask)+1 {
		return nil, ErrDumpTooLarge
	}

	out := make([]byte, 0, n)

	for i := 0; i < n; i++ {
		addr := (address + uint32(i)) & AddressMask

		r := s.find(addr)
		if r == nil || r.io != nil {
			return nil, &AccessError{Address: addr, Mode: AccessByte, Err: ErrUnmapped}
		}

		data, err := r.storage.Read(uint64(addr-r.Start), 1)
		if err != nil {
			return nil, err
		}

		out = append(out, data[0])
	}

	return out, nil
}
