package lora

// Encode runs the full byte-to-symbol pipeline: optional header prepend,
// optional payload CRC, optional whitening, Hamming coding, diagonal
// interleaving, and the inverse-Gray step, writing symbols into
// symbolsOut. It returns the number of symbols produced, or an error if
// symbolsOut (or the workspace's internal payload scratch) is too small.
//
// The explicit header block from header.go is always coded at rate 4/8;
// CRC and whitening apply to the payload only, and the payload block that
// follows the header is Hamming-coded at p.CR. No dynamic
// memory is requested once Init has returned (all scratch is
// ws.byteScratch plus fixed-size stack arrays sized by the sf<=12, cr<=4
// bounds Params.Validate enforces).
func (ws *Workspace) Encode(payload []byte, symbolsOut []uint16) (int, error) {
	p := ws.params
	if len(payload) > ws.maxPayload-2 {
		return 0, ErrCapacity
	}
	if p.ExplicitHeader && len(payload) > 255 {
		return 0, ErrInvalidParam
	}

	total := len(payload)
	copy(ws.byteScratch, payload)
	if p.CRCEnabled {
		crc := crc16Payload(payload)
		ws.byteScratch[total] = byte(crc >> 8)
		ws.byteScratch[total+1] = byte(crc)
		total += 2
	}
	if p.Whitening {
		whiten(ws.byteScratch[:total], ws.byteScratch[:total])
	}

	symOffset := 0
	if p.ExplicitHeader {
		if symOffset+headerSymbols > len(symbolsOut) {
			return 0, ErrCapacity
		}
		hf := headerFields{payloadLen: uint8(len(payload)), cr: p.CR, crcEnabled: p.CRCEnabled}
		encodeHeaderBlock(p.SF, hf, symbolsOut[symOffset:])
		symOffset += headerSymbols
	}

	nibbleCount := total * 2
	r := p.CR.CodewordBits()
	sf := p.SF
	for nibbleIdx := 0; nibbleIdx < nibbleCount; nibbleIdx += sf {
		var cw [12]uint8
		for i := 0; i < sf; i++ {
			var nib uint8
			if nibbleIdx+i < nibbleCount {
				nib = nibbleAt(ws.byteScratch, nibbleIdx+i)
			}
			cw[i] = hammingEncode(p.CR, nib)
		}
		if symOffset+r > len(symbolsOut) {
			return 0, ErrCapacity
		}
		var sym [12]uint16
		interleaveBlock(cw[:sf], sym[:r], sf, r)
		for i := 0; i < r; i++ {
			symbolsOut[symOffset+i] = grayDecode(sym[i], sf)
		}
		symOffset += r
	}
	return symOffset, nil
}
