package lora

// Hamming codec for the four LoRa coding rates. CR3 (4/7) and CR4 (4/8) are
// true Hamming codes with single-error correction; CR4 additionally carries
// an overall parity bit for double-error detection (SECDED). CR1 (4/5) and
// CR2 (4/6) are parity-only: they detect but never correct.
//
// Bit layout for all rates: the low 4 bits of the codeword are the data
// nibble d0..d3 (d0 = LSB); parity bits occupy the bits above that.
//
// The (7,4)/(8,4) parity-check assignment below is a standard Hamming
// construction (each of the 7 data+parity bit positions maps to a distinct
// nonzero 3-bit syndrome column); it is not cross-checked against the
// project's bit-exact lora_sdr_reference vectors, which were not available
// to this implementation. See DESIGN.md.

// hamming74Parity computes the three parity bits (p0,p1,p2) for a 4-bit
// nibble under the standard (7,4) construction.
func hamming74Parity(d0, d1, d2, d3 uint8) (p0, p1, p2 uint8) {
	p0 = d1 ^ d2 ^ d3
	p1 = d0 ^ d2 ^ d3
	p2 = d0 ^ d1 ^ d3
	return
}

// encodeHamming74 encodes a nibble (bits 0..3 significant) into a 7-bit
// codeword: bits 0..3 are the data nibble, bits 4..6 are parity.
func encodeHamming74(nibble uint8) uint8 {
	d0, d1, d2, d3 := nibble&1, (nibble>>1)&1, (nibble>>2)&1, (nibble>>3)&1
	p0, p1, p2 := hamming74Parity(d0, d1, d2, d3)
	return nibble&0xF | p0<<4 | p1<<5 | p2<<6
}

// encodeHamming84 extends encodeHamming74 with an 8th overall-parity bit
// covering all 7 lower bits, giving single-error-correct/double-error-detect.
func encodeHamming84(nibble uint8) uint8 {
	cw7 := encodeHamming74(nibble)
	overall := parity8(cw7)
	return cw7 | overall<<7
}

// hamming74Syndrome computes the 3-bit syndrome of a received 7-bit
// codeword. Zero means no detected error; otherwise the value identifies
// exactly one of the 7 bits via the column table documented alongside
// syndromeToBit.
func hamming74Syndrome(cw uint8) uint8 {
	r0, r1, r2, r3 := cw&1, (cw>>1)&1, (cw>>2)&1, (cw>>3)&1
	r4, r5, r6 := (cw>>4)&1, (cw>>5)&1, (cw>>6)&1
	s0 := r1 ^ r2 ^ r3 ^ r4
	s1 := r0 ^ r2 ^ r3 ^ r5
	s2 := r0 ^ r1 ^ r3 ^ r6
	return s0 | s1<<1 | s2<<2
}

// syndromeToBit maps a nonzero hamming74Syndrome value to the index (0..6)
// of the bit it identifies as flipped, following the column assignment
// fixed by hamming74Parity: bit4->1, bit5->2, bit6->4, bit0->6, bit1->5,
// bit2->3, bit3->7.
var syndromeToBit = [8]int{
	0: -1,
	1: 4,
	2: 5,
	4: 6,
	6: 0,
	5: 1,
	3: 2,
	7: 3,
}

func parity8(b uint8) uint8 {
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b & 1
}

// decodeHamming74 decodes a 7-bit codeword, correcting a single-bit error
// when the syndrome is nonzero. CR3 has no double-error detection, so bad
// is always false.
func decodeHamming74(cw uint8) (nibble uint8, corrected bool) {
	s := hamming74Syndrome(cw)
	if s != 0 {
		bit := syndromeToBit[s]
		cw ^= 1 << uint(bit)
		corrected = true
	}
	return cw & 0xF, corrected
}

// decodeHamming84 decodes an 8-bit SECDED codeword. error reports a
// corrected single-bit error (including a flipped overall-parity bit);
// bad reports a detected but uncorrectable double-bit error.
func decodeHamming84(cw uint8) (nibble uint8, errFlag, bad bool) {
	cw7 := cw & 0x7F
	overallReceived := cw >> 7
	s := hamming74Syndrome(cw7)
	overallExpected := parity8(cw7)
	mismatch := overallReceived != overallExpected

	switch {
	case s == 0 && !mismatch:
		// clean
	case s == 0 && mismatch:
		// only the overall parity bit is wrong
		errFlag = true
	case s != 0 && mismatch:
		bit := syndromeToBit[s]
		cw7 ^= 1 << uint(bit)
		errFlag = true
	default: // s != 0 && !mismatch
		bad = true
	}
	return cw7 & 0xF, errFlag, bad
}

// encodeHamming64 appends 2 detection-only parity bits to a nibble.
func encodeHamming64(nibble uint8) uint8 {
	d0, d1, d2, d3 := nibble&1, (nibble>>1)&1, (nibble>>2)&1, (nibble>>3)&1
	p0 := d1 ^ d2 ^ d3
	p1 := d0 ^ d2 ^ d3
	return nibble&0xF | p0<<4 | p1<<5
}

// decodeHamming64 checks (but never corrects) the 2 parity bits.
func decodeHamming64(cw uint8) (nibble uint8, bad bool) {
	d0, d1, d2, d3 := cw&1, (cw>>1)&1, (cw>>2)&1, (cw>>3)&1
	p0 := d1 ^ d2 ^ d3
	p1 := d0 ^ d2 ^ d3
	bad = p0 != (cw>>4)&1 || p1 != (cw>>5)&1
	return cw & 0xF, bad
}

// encodeHamming54 appends a single overall even-parity bit to a nibble.
func encodeHamming54(nibble uint8) uint8 {
	p := parity8(nibble & 0xF)
	return nibble&0xF | p<<4
}

// decodeHamming54 checks (but never corrects) the overall parity bit.
func decodeHamming54(cw uint8) (nibble uint8, bad bool) {
	p := parity8(cw & 0xF)
	bad = p != (cw>>4)&1
	return cw & 0xF, bad
}

// hammingEncode encodes one nibble at the given coding rate.
func hammingEncode(cr CodingRate, nibble uint8) uint8 {
	switch cr {
	case CR1:
		return encodeHamming54(nibble)
	case CR2:
		return encodeHamming64(nibble)
	case CR3:
		return encodeHamming74(nibble)
	case CR4:
		return encodeHamming84(nibble)
	default:
		return nibble & 0xF
	}
}

// hammingDecode decodes one codeword at the given coding rate, reporting
// whether a correctable error was found and fixed (errFlag) and whether an
// uncorrectable error was detected (bad).
func hammingDecode(cr CodingRate, cw uint8) (nibble uint8, errFlag, bad bool) {
	switch cr {
	case CR1:
		n, b := decodeHamming54(cw)
		return n, false, b
	case CR2:
		n, b := decodeHamming64(cw)
		return n, false, b
	case CR3:
		n, c := decodeHamming74(cw)
		return n, c, false
	case CR4:
		return decodeHamming84(cw)
	default:
		return cw & 0xF, false, false
	}
}
