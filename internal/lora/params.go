// Package lora implements the LoRa physical-layer signal chain: payload
// framing, whitening, Hamming coding, diagonal interleaving, Gray mapping,
// chirp modulation/demodulation, and coarse CFO/timing offset compensation.
//
// Every exported entry point operates on a caller-owned Workspace and its
// caller-owned buffers; after Init returns, none of Encode, Decode,
// Modulate, or Demodulate allocate.
package lora

import "fmt"

// Bandwidth is one of the three LoRa channel bandwidths the core supports.
type Bandwidth int

const (
	BW125k Bandwidth = iota
	BW250k
	BW500k
)

// Hz returns the bandwidth in Hz.
func (b Bandwidth) Hz() float64 {
	switch b {
	case BW125k:
		return 125000
	case BW250k:
		return 250000
	case BW500k:
		return 500000
	default:
		return 0
	}
}

func (b Bandwidth) String() string {
	switch b {
	case BW125k:
		return "125k"
	case BW250k:
		return "250k"
	case BW500k:
		return "500k"
	default:
		return fmt.Sprintf("BW(%d)", int(b))
	}
}

// BandwidthFromHz maps a raw Hz value to one of the supported tags.
func BandwidthFromHz(hz float64) (Bandwidth, error) {
	switch hz {
	case 125000:
		return BW125k, nil
	case 250000:
		return BW250k, nil
	case 500000:
		return BW500k, nil
	default:
		return 0, fmt.Errorf("lora: unsupported bandwidth %gHz: %w", hz, ErrInvalidParam)
	}
}

// CodingRate selects one of the four Hamming rates used for the payload
// block. The header (when explicit) is always coded at CR4 regardless of
// the configured payload rate.
type CodingRate int

const (
	CR1 CodingRate = 1 // 4/5, parity only
	CR2 CodingRate = 2 // 4/6, parity only
	CR3 CodingRate = 3 // 4/7, Hamming SEC
	CR4 CodingRate = 4 // 4/8, Hamming SECDED
)

// CodewordBits returns 4+cr, the width in bits of one coded nibble.
func (cr CodingRate) CodewordBits() int {
	return 4 + int(cr)
}

func (cr CodingRate) valid() bool {
	return cr >= CR1 && cr <= CR4
}

// Window selects an optional pre-FFT window applied to dechirped symbols.
type Window int

const (
	WindowNone Window = iota
	WindowHann
)

// Params is the immutable configuration of a Workspace. It is copied into
// the workspace by Init and never mutated afterward.
type Params struct {
	SF int // spread factor, 7..12

	BW Bandwidth
	CR CodingRate
	OSR int // oversampling ratio, 1..256

	ExplicitHeader bool
	CRCEnabled     bool
	Whitening      bool
	Interleaving   bool

	PreambleLen int // number of preamble upchirp symbols, >= 2
	SyncWord    [2]uint16

	Win Window
}

// DefaultParams returns a Params with conservative, commonly-used defaults:
// the given spread factor, 125kHz, CR 4/5, OSR 1, explicit header, CRC and
// whitening enabled.
func DefaultParams(sf int) Params {
	return Params{
		SF:             sf,
		BW:             BW125k,
		CR:             CR1,
		OSR:            1,
		ExplicitHeader: true,
		CRCEnabled:     true,
		Whitening:      true,
		Interleaving:   true,
		PreambleLen:    8,
		SyncWord:       [2]uint16{0x12, 0x34},
		Win:            WindowNone,
	}
}

// N returns the number of base (non-oversampled) samples per symbol, 1<<SF.
func (p Params) N() int {
	return 1 << uint(p.SF)
}

// SamplesPerSymbol returns N()*OSR, the number of IQ samples one symbol
// occupies on the wire.
func (p Params) SamplesPerSymbol() int {
	return p.N() * p.OSR
}

// Validate checks the configuration against the ranges the core supports.
func (p Params) Validate() error {
	if p.SF < 7 || p.SF > 12 {
		return fmt.Errorf("lora: sf %d out of range [7,12]: %w", p.SF, ErrInvalidParam)
	}
	if p.OSR < 1 || p.OSR > 256 {
		return fmt.Errorf("lora: osr %d out of range [1,256]: %w", p.OSR, ErrInvalidParam)
	}
	if !p.CR.valid() {
		return fmt.Errorf("lora: coding rate index %d out of range [1,4]: %w", p.CR, ErrInvalidParam)
	}
	if p.PreambleLen < 2 {
		return fmt.Errorf("lora: preamble length %d must be >= 2: %w", p.PreambleLen, ErrInvalidParam)
	}
	return nil
}
