// Package vectors formats the named intermediate artifacts the core PHY
// can emit for interop testing: payload, pre_interleave, post_interleave,
// iq_samples, demod_symbols, deinterleave, and decoded. Each is a plain
// text rendering the bundled vector generator (cmd/lora-vectors) writes to
// its own file so a byte-for-byte diff against an external reference is
// straightforward.
package vectors

import (
	"bufio"
	"fmt"
	"io"
)

// Name enumerates the artifacts defined by the interop surface.
type Name string

const (
	Payload        Name = "payload"
	PreInterleave  Name = "pre_interleave"
	PostInterleave Name = "post_interleave"
	IQSamples      Name = "iq_samples"
	DemodSymbols   Name = "demod_symbols"
	Deinterleave   Name = "deinterleave"
	Decoded        Name = "decoded"
)

// All lists every artifact name, in the order the TX/RX pipeline produces
// them.
var All = []Name{Payload, PreInterleave, PostInterleave, IQSamples, DemodSymbols, Deinterleave, Decoded}

// WriteBytes writes raw bytes as newline-separated decimal values, used
// for the payload and decoded artifacts.
func WriteBytes(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for _, b := range data {
		if _, err := fmt.Fprintln(bw, b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteU8 writes a decimal value per line, used for pre_interleave and
// deinterleave (Hamming codewords, one byte each).
func WriteU8(w io.Writer, values []uint8) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteU16 writes a decimal value per line, used for post_interleave and
// demod_symbols.
func WriteU16(w io.Writer, values []uint16) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteIQ writes one "real,imag" line per complex sample, used for the
// iq_samples artifact.
func WriteIQ(w io.Writer, samples []complex64) error {
	bw := bufio.NewWriter(w)
	for _, c := range samples {
		if _, err := fmt.Fprintf(bw, "%g,%g\n", real(c), imag(c)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
