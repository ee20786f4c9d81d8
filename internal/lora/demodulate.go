package lora

// Demodulate accepts a sample stream whose length must be a positive
// multiple of N*osr, estimates and compensates carrier-frequency and
// timing offsets from the leading symbols, then dechirps and FFTs every
// symbol in turn, writing its raw (pre-Gray) dominant bin into
// symbolsOut. It mutates iq in place (the offset compensation rotation
// and shift) and never allocates.
func (ws *Workspace) Demodulate(iq []complex64, symbolsOut []uint16) (int, error) {
	n := ws.params.N()
	osr := ws.params.OSR
	s := n * osr
	if len(iq) == 0 || len(iq)%s != 0 {
		return 0, ErrSizeMismatch
	}
	numSymbols := len(iq) / s
	if numSymbols > len(symbolsOut) {
		return 0, ErrCapacity
	}

	ws.EstimateOffsets(iq)
	ws.CompensateOffsets(iq)

	for sym := 0; sym < numSymbols; sym++ {
		symSamples := iq[sym*s : sym*s+s]
		dechirpSubsample(ws.dechirpScratch[:n], symSamples, osr, ws.baseDown, osr, n)
		idx, _, _, _ := ws.detectSymbol(ws.dechirpScratch[:n])
		symbolsOut[sym] = uint16(idx)
	}
	return numSymbols, nil
}
