package lora

// The explicit on-air header occupies exactly one diagonal-interleave
// block: sf codewords, each a nibble Hamming-encoded at CR4 (rate 4/8),
// interleaved into headerSymbols = 4+4 = 8 symbols regardless of sf. Only
// the first 5 nibbles carry information; the rest of the block (present
// whenever sf > 5, i.e. always, since sf >= 7) is zero padding. This
// mirrors the real SX127x explicit-header layout (length high/low nibble,
// coding-rate+CRC-enable nibble, checksum split across two nibbles), since
// a 5-bit checksum and an 8-bit length cannot both fit into 3 nibbles; see
// DESIGN.md for this resolution.
const headerCR = CR4
const headerSymbols = 4 + int(headerCR)

type headerFields struct {
	payloadLen uint8
	cr         CodingRate
	crcEnabled bool
}

func buildHeaderNibbles(sf int, hf headerFields) [12]uint8 {
	var nibbles [12]uint8
	nibbles[0] = hf.payloadLen >> 4
	nibbles[1] = hf.payloadLen & 0xF
	crcBit := uint8(0)
	if hf.crcEnabled {
		crcBit = 1
	}
	nibbles[2] = uint8(hf.cr)&0x7 | crcBit<<3
	chk := crc5Header([3]uint8{nibbles[0], nibbles[1], nibbles[2]})
	nibbles[3] = chk & 0xF
	nibbles[4] = (chk >> 4) & 0x1
	for i := 5; i < sf; i++ {
		nibbles[i] = 0
	}
	return nibbles
}

// parseHeaderNibbles validates the checksum and extracts the fields. If sf
// < 5 the header cannot carry a checksum at all; callers never hit this
// since sf is validated to be >= 7.
func parseHeaderNibbles(nibbles [12]uint8) (headerFields, error) {
	chk := crc5Header([3]uint8{nibbles[0], nibbles[1], nibbles[2]})
	got := nibbles[3]&0xF | (nibbles[4]&0x1)<<4
	if chk != got {
		return headerFields{}, ErrBadHeader
	}
	hf := headerFields{
		payloadLen: nibbles[0]<<4 | nibbles[1],
		cr:         CodingRate(nibbles[2] & 0x7),
		crcEnabled: nibbles[2]&0x8 != 0,
	}
	if !hf.cr.valid() {
		return headerFields{}, ErrBadHeader
	}
	return hf, nil
}

// encodeHeaderBlock writes the header's 8 Gray-inverse symbols into out
// (len(out) must be >= headerSymbols).
func encodeHeaderBlock(sf int, hf headerFields, out []uint16) {
	nibbles := buildHeaderNibbles(sf, hf)
	var cw [12]uint8
	for i := 0; i < sf; i++ {
		cw[i] = hammingEncode(headerCR, nibbles[i])
	}
	var sym [12]uint16
	interleaveBlock(cw[:sf], sym[:headerSymbols], sf, headerSymbols)
	for i := 0; i < headerSymbols; i++ {
		out[i] = grayDecode(sym[i], sf)
	}
}

// decodeHeaderBlock is the inverse of encodeHeaderBlock. rawSymbols are
// the raw (pre-Gray) symbol decisions from the demodulator.
func decodeHeaderBlock(sf int, rawSymbols []uint16) (headerFields, int, int, error) {
	var sym [12]uint16
	for i := 0; i < headerSymbols; i++ {
		sym[i] = grayEncode(rawSymbols[i])
	}
	var cw [12]uint8
	deinterleaveBlock(sym[:headerSymbols], cw[:sf], sf, headerSymbols)
	var nibbles [12]uint8
	errs, bad := 0, 0
	for i := 0; i < sf; i++ {
		n, e, b := hammingDecode(headerCR, cw[i])
		nibbles[i] = n
		if e {
			errs++
		}
		if b {
			bad++
		}
	}
	hf, err := parseHeaderNibbles(nibbles)
	return hf, errs, bad, err
}
