package lora

import (
	"math"
	"testing"
)

func cabs32(c complex64) float64 {
	return math.Sqrt(float64(real(c))*float64(real(c)) + float64(imag(c))*float64(imag(c)))
}

func TestFFTKnownValues(t *testing.T) {
	buf := []complex64{1, 1, 1, 1}
	p := newFFTPlan(4, false)
	p.transform(buf)

	if cabs32(buf[0]-4) > 1e-4 {
		t.Errorf("FFT([1,1,1,1])[0] = %v, want 4", buf[0])
	}
	for i := 1; i < 4; i++ {
		if cabs32(buf[i]) > 1e-4 {
			t.Errorf("FFT([1,1,1,1])[%d] = %v, want 0", i, buf[i])
		}
	}
}

func TestFFTInverseRoundTrip(t *testing.T) {
	n := 128
	orig := make([]complex64, n)
	for i := range orig {
		orig[i] = complex64(complex(math.Sin(2*math.Pi*float64(i)/float64(n)), 0))
	}
	buf := append([]complex64(nil), orig...)

	fwd := newFFTPlan(n, false)
	inv := newFFTPlan(n, true)
	fwd.transform(buf)
	inv.transform(buf)

	for i := range orig {
		if cabs32(buf[i]-orig[i]) > 1e-3 {
			t.Fatalf("IFFT(FFT(x))[%d] = %v, want %v", i, buf[i], orig[i])
		}
	}
}

func TestFFTPeakAtToneFrequency(t *testing.T) {
	n := 256
	freq := 10
	buf := make([]complex64, n)
	for i := range buf {
		ang := 2 * math.Pi * float64(freq) * float64(i) / float64(n)
		buf[i] = complex64(complex(math.Cos(ang), math.Sin(ang)))
	}
	p := newFFTPlan(n, false)
	p.transform(buf)

	maxMag := 0.0
	maxIdx := 0
	for i, c := range buf {
		m := cabs32(c)
		if m > maxMag {
			maxMag = m
			maxIdx = i
		}
	}
	if maxIdx != freq {
		t.Errorf("peak at bin %d, want %d", maxIdx, freq)
	}
}
