package lora

import "errors"

// Sentinel error kinds, comparable with errors.Is. Component-boundary
// errors (file I/O, CLI flag parsing) wrap these with fmt.Errorf("...: %w").
var (
	// ErrInvalidParam reports sf/osr/coding-rate out of range or an
	// internally inconsistent header configuration.
	ErrInvalidParam = errors.New("lora: invalid parameter")

	// ErrCapacity reports an output buffer too small to hold the result.
	ErrCapacity = errors.New("lora: output capacity exceeded")

	// ErrSizeMismatch reports an input length that is not a multiple of
	// the size the operation requires (N*osr samples for demodulate, 4+cr
	// symbols for DeinterleaveCodewords).
	ErrSizeMismatch = errors.New("lora: input size mismatch")

	// ErrBadHeader reports an explicit-header CRC failure or a header
	// length field inconsistent with the input.
	ErrBadHeader = errors.New("lora: bad header")

	// ErrUncorrectable reports a Hamming codeword that decoded bad
	// (uncorrectable); the packet carrying it is dropped.
	ErrUncorrectable = errors.New("lora: uncorrectable codeword")
)
