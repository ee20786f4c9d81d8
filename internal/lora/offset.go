package lora

import "math"

// EstimateOffsets consumes the first one or two symbols of iq (assumed
// preamble upchirps) and writes the coarse carrier-frequency and timing
// offset estimate into Metrics. It does not modify iq.
//
// Grounded on original_source/src/phy/LoRaDemod.cpp's lora_demodulate,
// generalized from that reference's implicit osr=1 to arbitrary
// oversampling: for each estimation symbol, the best candidate across the
// osr sub-sample starts is whichever of the osr phase-aligned subsamplings
// of that symbol's N*osr raw samples gives the strongest dechirped power;
// ties prefer the earliest start.
func (ws *Workspace) EstimateOffsets(iq []complex64) {
	n := ws.params.N()
	osr := ws.params.OSR
	s := n * osr
	numSymbols := len(iq) / s
	estSyms := numSymbols
	if estSyms > 2 {
		estSyms = 2
	}
	if estSyms == 0 {
		ws.metrics.CFO = 0
		ws.metrics.TimeOffset = 0
		return
	}

	var sumIndex float32
	var phaseDiff float32
	var prevPhase float32
	havePrev := false
	bestSubSample := 0

	for sym := 0; sym < estSyms; sym++ {
		symSamples := iq[sym*s : sym*s+s]
		bestPower := float32(-1)
		bestIdx := 0
		var bestFindex float32
		var bestBin complex64
		bestC := 0
		for c := 0; c < osr; c++ {
			dechirpSubsample(ws.dechirpScratch[:n], symSamples[c:], osr, ws.baseDown, osr, n)
			idx, power, _, findex := ws.detectSymbol(ws.dechirpScratch[:n])
			if power > bestPower {
				bestPower = power
				bestIdx = idx
				bestFindex = findex
				bestBin = ws.fftBuf[idx]
				bestC = c
			}
		}
		if sym == 0 {
			bestSubSample = bestC
		}
		sumIndex += float32(bestIdx) + bestFindex
		phase := float32(math.Atan2(float64(imag(bestBin)), float64(real(bestBin))))
		if havePrev {
			d := phase - prevPhase
			for d > math.Pi {
				d -= 2 * math.Pi
			}
			for d < -math.Pi {
				d += 2 * math.Pi
			}
			phaseDiff += d
		}
		prevPhase = phase
		havePrev = true
	}

	avgIndex := sumIndex / float32(estSyms)
	cfoCoarse := avgIndex / float32(n)
	var cfoFine float32
	if estSyms > 1 {
		cfoFine = (phaseDiff / float32(estSyms-1)) / (2 * math.Pi * float32(n))
	}
	ws.metrics.CFO = cfoCoarse + cfoFine

	frac := avgIndex - float32(math.Floor(float64(avgIndex)+0.5))
	ws.metrics.TimeOffset = float32(bestSubSample) - frac*float32(n*osr)
}

// dechirpSubsample multiplies n samples of src, taken with stride osr
// starting at src[0], by the osr-strided reference chirp, writing into out.
func dechirpSubsample(out []complex64, src []complex64, stride int, ref []complex64, refStride, n int) {
	for i := 0; i < n; i++ {
		si := i * stride
		if si >= len(src) {
			out[i] = 0
			continue
		}
		out[i] = src[si] * ref[i*refStride]
	}
}

// CompensateOffsets rotates iq by the carrier-frequency offset and shifts
// it by the rounded timing offset (zero-filled at the exposed end), both
// from the most recent EstimateOffsets call. It mutates iq in place and
// never allocates: the shift uses Go's overlap-safe copy rather than a
// second buffer.
func (ws *Workspace) CompensateOffsets(iq []complex64) {
	n := ws.params.N()
	osr := ws.params.OSR
	cfo := float64(ws.metrics.CFO)
	rate := -2 * math.Pi * cfo / float64(n*osr)
	for i := range iq {
		ph := rate * float64(i)
		rot := complex64(complex(math.Cos(ph), math.Sin(ph)))
		iq[i] *= rot
	}

	off := int(math.Round(float64(ws.metrics.TimeOffset)))
	if off > 0 && off < len(iq) {
		copy(iq[off:], iq[:len(iq)-off])
		for i := 0; i < off; i++ {
			iq[i] = 0
		}
	} else if off < 0 {
		k := -off
		if k < len(iq) {
			copy(iq[:len(iq)-k], iq[k:])
			for i := len(iq) - k; i < len(iq); i++ {
				iq[i] = 0
			}
		}
	}
}
