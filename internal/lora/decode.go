package lora

// Decode runs the inverse of Encode: Gray map, diagonal deinterleave,
// Hamming decode with per-codeword error/bad aggregation into metrics,
// dewhitening, and payload-CRC verification, writing bytes into
// payloadOut. Uncorrectable codewords drop the packet (returns
// ErrUncorrectable); a payload-CRC mismatch does not -- the bytes are
// still returned and Metrics.CRCOk reports the mismatch.
func (ws *Workspace) Decode(symbols []uint16, payloadOut []byte) (int, error) {
	p := ws.params
	sf := p.SF

	symOffset := 0
	cr := p.CR
	crcEnabled := p.CRCEnabled
	explicitLen := -1

	ws.metrics.HammingErrors = 0
	ws.metrics.HammingBad = 0

	if p.ExplicitHeader {
		if len(symbols) < headerSymbols {
			return 0, ErrBadHeader
		}
		hf, errs, bad, err := decodeHeaderBlock(sf, symbols[:headerSymbols])
		ws.metrics.HammingErrors += errs
		ws.metrics.HammingBad += bad
		if err != nil {
			return 0, ErrBadHeader
		}
		if bad > 0 {
			return 0, ErrUncorrectable
		}
		cr = hf.cr
		crcEnabled = hf.crcEnabled
		explicitLen = int(hf.payloadLen)
		symOffset = headerSymbols
	}

	remaining := symbols[symOffset:]
	r := cr.CodewordBits()
	nChunks := len(remaining) / r
	totalNibbles := nChunks * sf
	totalBytes := totalNibbles / 2
	if totalBytes > len(ws.byteScratch) {
		return 0, ErrCapacity
	}

	totalBad := 0
	for chunk := 0; chunk < nChunks; chunk++ {
		symChunk := remaining[chunk*r : chunk*r+r]
		var sym [12]uint16
		for i := 0; i < r; i++ {
			sym[i] = grayEncode(symChunk[i])
		}
		var cw [12]uint8
		deinterleaveBlock(sym[:r], cw[:sf], sf, r)
		for i := 0; i < sf; i++ {
			n, e, b := hammingDecode(cr, cw[i])
			if e {
				ws.metrics.HammingErrors++
			}
			if b {
				ws.metrics.HammingBad++
				totalBad++
			}
			writeNibble(ws.byteScratch, chunk*sf+i, n)
		}
	}
	if totalBad > 0 {
		return 0, ErrUncorrectable
	}

	if p.Whitening {
		whiten(ws.byteScratch[:totalBytes], ws.byteScratch[:totalBytes])
	}

	var dataLen int
	if explicitLen >= 0 {
		need := explicitLen
		if crcEnabled {
			need += 2
		}
		if need > totalBytes {
			return 0, ErrBadHeader
		}
		dataLen = explicitLen
	} else {
		dataLen = totalBytes
		if crcEnabled {
			if dataLen < 2 {
				return 0, ErrCapacity
			}
			dataLen -= 2
		}
	}

	if crcEnabled {
		provided := uint16(ws.byteScratch[dataLen])<<8 | uint16(ws.byteScratch[dataLen+1])
		calc := crc16Payload(ws.byteScratch[:dataLen])
		ws.metrics.CRCOk = provided == calc
	} else {
		ws.metrics.CRCOk = true
	}

	if dataLen > len(payloadOut) {
		return 0, ErrCapacity
	}
	copy(payloadOut, ws.byteScratch[:dataLen])
	return dataLen, nil
}
