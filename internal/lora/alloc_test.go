package lora

import "testing"

// TestZeroAllocationSteadyState pins the contract that Encode, Decode,
// Modulate, and Demodulate never allocate once Init has returned. All
// scratch is sized up front by NewWorkspace/Init; callers supply their own
// output buffers here exactly as a real caller would.
func TestZeroAllocationSteadyState(t *testing.T) {
	p := DefaultParams(7)
	ws := NewWorkspace(0, 0)
	if err := ws.Init(p); err != nil {
		t.Fatalf("Init: %v", err)
	}

	payload := []byte("zero-alloc")
	symbols := make([]uint16, ws.maxSymbols)
	iq := make([]complex64, (p.PreambleLen+2+2+ws.maxSymbols)*p.SamplesPerSymbol())
	demodSymbols := make([]uint16, len(iq)/p.SamplesPerSymbol())
	out := make([]byte, ws.maxPayload)

	n, err := ws.Encode(payload, symbols)
	if err != nil {
		t.Fatalf("Encode (warmup): %v", err)
	}

	encodeAllocs := testing.AllocsPerRun(20, func() {
		if _, err := ws.Encode(payload, symbols); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	})
	if encodeAllocs != 0 {
		t.Errorf("Encode allocated %v times per run, want 0", encodeAllocs)
	}

	modulateAllocs := testing.AllocsPerRun(20, func() {
		if _, err := ws.Modulate(symbols[:n], iq); err != nil {
			t.Fatalf("Modulate: %v", err)
		}
	})
	if modulateAllocs != 0 {
		t.Errorf("Modulate allocated %v times per run, want 0", modulateAllocs)
	}

	frameSamples := (p.PreambleLen + 2 + 2 + n) * p.SamplesPerSymbol()
	demodulateAllocs := testing.AllocsPerRun(20, func() {
		if _, err := ws.Demodulate(iq[:frameSamples], demodSymbols); err != nil {
			t.Fatalf("Demodulate: %v", err)
		}
	})
	if demodulateAllocs != 0 {
		t.Errorf("Demodulate allocated %v times per run, want 0", demodulateAllocs)
	}

	skip := p.PreambleLen + 2 + 2
	decodeAllocs := testing.AllocsPerRun(20, func() {
		if _, err := ws.Decode(demodSymbols[skip:frameSamples/p.SamplesPerSymbol()], out); err != nil {
			t.Fatalf("Decode: %v", err)
		}
	})
	if decodeAllocs != 0 {
		t.Errorf("Decode allocated %v times per run, want 0", decodeAllocs)
	}
}
