package lorawan

import (
	"bytes"
	"testing"

	"github.com/jeongseonghan/lora-phy/internal/lora"
)

func newTestWorkspace(t *testing.T) *lora.Workspace {
	t.Helper()
	p := lora.DefaultParams(9)
	p.CR = lora.CR3
	ws := lora.NewWorkspace(0, 0)
	if err := ws.Init(p); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return ws
}

func TestBuildParseFrameRoundTrip(t *testing.T) {
	ws := newTestWorkspace(t)

	frame := Frame{
		MHDR: MHDR{MType: UnconfirmedDataUp, Major: 0},
		FHDR: FHDR{
			DevAddr: 0x01020304,
			FCtrl:   0x00,
			FCnt:    1,
			FOpts:   nil,
		},
		Payload: []byte("hello lorawan"),
	}

	symbols := make([]uint16, 512)
	n, err := BuildFrame(ws, frame, symbols)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}

	var parsed Frame
	pn, err := ParseFrame(ws, symbols[:n], &parsed)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if pn != len(frame.Payload) {
		t.Fatalf("ParseFrame returned %d, want %d", pn, len(frame.Payload))
	}
	if !bytes.Equal(parsed.Payload, frame.Payload) {
		t.Fatalf("payload = %q, want %q", parsed.Payload, frame.Payload)
	}
	if parsed.MHDR.MType != frame.MHDR.MType {
		t.Errorf("MType = %v, want %v", parsed.MHDR.MType, frame.MHDR.MType)
	}
	if parsed.FHDR.DevAddr != frame.FHDR.DevAddr {
		t.Errorf("DevAddr = %#x, want %#x", parsed.FHDR.DevAddr, frame.FHDR.DevAddr)
	}
	if parsed.FHDR.FCnt != frame.FHDR.FCnt {
		t.Errorf("FCnt = %d, want %d", parsed.FHDR.FCnt, frame.FHDR.FCnt)
	}
}

func TestParseFrameRejectsMICMismatch(t *testing.T) {
	ws := newTestWorkspace(t)

	frame := Frame{
		MHDR:    MHDR{MType: ConfirmedDataUp, Major: 0},
		FHDR:    FHDR{DevAddr: 0xAABBCCDD, FCtrl: 0x01, FCnt: 42},
		Payload: []byte{0x01, 0x02, 0x03},
	}
	symbols := make([]uint16, 512)
	n, err := BuildFrame(ws, frame, symbols)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}

	// Header codewords use CR4 (SECDED): a single corrupted symbol always
	// spreads its error across distinct codewords, so one bad codeword
	// needs two symbols each contributing a bit to it. Flipping raw bit 0
	// of symbol 0 lands one error in codeword 0; flipping raw bit 1 of
	// symbol 1 turns into a two-bit Gray-domain flip whose second bit also
	// lands in codeword 0, making it uncorrectable.
	symbols[0] ^= 0x1
	symbols[1] ^= 0x2

	var parsed Frame
	_, err = ParseFrame(ws, symbols[:n], &parsed)
	if err == nil {
		t.Fatal("ParseFrame: expected an error for a corrupted frame, got nil")
	}
}

func TestFHDRFOptsLength(t *testing.T) {
	ws := newTestWorkspace(t)
	frame := Frame{
		MHDR:    MHDR{MType: UnconfirmedDataUp},
		FHDR:    FHDR{DevAddr: 1, FOpts: []byte{0xAA, 0xBB}},
		Payload: []byte("x"),
	}
	symbols := make([]uint16, 512)
	n, err := BuildFrame(ws, frame, symbols)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	var parsed Frame
	if _, err := ParseFrame(ws, symbols[:n], &parsed); err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if !bytes.Equal(parsed.FHDR.FOpts, frame.FHDR.FOpts) {
		t.Fatalf("FOpts = %v, want %v", parsed.FHDR.FOpts, frame.FHDR.FOpts)
	}
}
