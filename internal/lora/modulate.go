package lora

// Modulate writes a full packet's IQ waveform into iqOut: PreambleLen
// base upchirps, a two-symbol sync word, a two-symbol downchirp SFD, then
// one upchirp per entry in symbols. Phase is threaded continuously across
// every chirp via ws.modPhase so the waveform has no phase discontinuity
// at symbol boundaries. It returns the number of samples written.
func (ws *Workspace) Modulate(symbols []uint16, iqOut []complex64) (int, error) {
	p := ws.params
	n := p.N()
	osr := p.OSR
	s := n * osr

	total := (p.PreambleLen + 2 + 2 + len(symbols)) * s
	if total > len(iqOut) {
		return 0, ErrCapacity
	}

	ws.modPhase = 0
	off := 0

	for i := 0; i < p.PreambleLen; i++ {
		genChirp(iqOut[off:off+s], n, osr, s, 0, false, 1.0, &ws.modPhase)
		off += s
	}

	for i := 0; i < 2; i++ {
		genChirp(iqOut[off:off+s], n, osr, s, float64(p.SyncWord[i]), false, 1.0, &ws.modPhase)
		off += s
	}

	for i := 0; i < 2; i++ {
		genChirp(iqOut[off:off+s], n, osr, s, 0, true, 1.0, &ws.modPhase)
		off += s
	}

	for _, sym := range symbols {
		genChirp(iqOut[off:off+s], n, osr, s, float64(sym), false, 1.0, &ws.modPhase)
		off += s
	}

	return off, nil
}
