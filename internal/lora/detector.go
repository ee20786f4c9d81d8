package lora

import "math"

// detectSymbol runs the forward FFT over N dechirped samples and returns
// the dominant bin, its power, the mean power across all bins, and a
// fractional-bin refinement from three-tap interpolation around the peak.
// Ties in peak power resolve to the lowest index because the scan below
// only replaces the incumbent on a strict >.
//
// The FFT output is left in ws.fftBuf, which the workspace owns; callers
// needing the raw bin (e.g. offset estimation's phase-difference step)
// read it from there before the next detectSymbol call overwrites it.
func (ws *Workspace) detectSymbol(samples []complex64) (idx int, power, powerAvg, fIndex float32) {
	n := ws.params.N()
	copy(ws.fftBuf, samples[:n])
	if ws.params.Win == WindowHann {
		for i := range ws.fftBuf {
			ws.fftBuf[i] *= complex64(complex(float64(ws.windowCoef[i]), 0))
		}
	}
	ws.planFwd.transform(ws.fftBuf)

	var maxPow float32
	maxIdx := 0
	var sumPow float32
	for i, c := range ws.fftBuf {
		p := real(c)*real(c) + imag(c)*imag(c)
		sumPow += p
		if p > maxPow {
			maxPow = p
			maxIdx = i
		}
	}
	powerAvg = sumPow / float32(n)

	m0 := float32(math.Sqrt(float64(maxPow)))
	mm1 := magAt(ws.fftBuf, maxIdx-1, n)
	mp1 := magAt(ws.fftBuf, maxIdx+1, n)
	denom := mm1 - 2*m0 + mp1
	var frac float32
	if denom != 0 {
		frac = 0.5 * (mm1 - mp1) / denom
	}
	return maxIdx, maxPow, powerAvg, frac
}

func magAt(buf []complex64, idx, n int) float32 {
	i := mod(idx, n)
	c := buf[i]
	return float32(math.Sqrt(float64(real(c)*real(c) + imag(c)*imag(c))))
}
