package dma

import (
	"errors"
	"fmt"
)

// ErrUndecodedRegister is wrapped by every AddressError.
var ErrUndecodedRegister = errors.New("undecoded DMA register")

// ErrInvalidTrigger is returned when binding an unusable trigger.
var ErrInvalidTrigger = errors.New("invalid DMA trigger")

// An AddressError reports an access to an address the controller does not
// decode. Such an access is a firmware or platform bug.
type AddressError struct {
	Address uint32
	Offset  uint32
	Write   bool
}

func (e *AddressError) Error() string {
	op := "read from"
	if e.Write {
		op = "write to"
	}

	return fmt.Sprintf("%v: %s 0x%05x (offset 0x%02x)",
		ErrUndecodedRegister, op, e.Address, e.Offset)
}

func (e *AddressError) Unwrap() error {
	return ErrUndecodedRegister
}
