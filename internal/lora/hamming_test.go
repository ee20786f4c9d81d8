package lora

import "testing"

func TestHammingRoundTripAllRates(t *testing.T) {
	for _, cr := range []CodingRate{CR1, CR2, CR3, CR4} {
		for nibble := uint8(0); nibble < 16; nibble++ {
			cw := hammingEncode(cr, nibble)
			got, errFlag, bad := hammingDecode(cr, cw)
			if bad {
				t.Fatalf("cr=%d nibble=%d: unexpected bad on clean codeword", cr, nibble)
			}
			if errFlag {
				t.Fatalf("cr=%d nibble=%d: unexpected errFlag on clean codeword", cr, nibble)
			}
			if got != nibble {
				t.Fatalf("cr=%d nibble=%d: decoded %d", cr, nibble, got)
			}
		}
	}
}

func TestHammingSingleBitCorrectionCR3AndCR4(t *testing.T) {
	for _, cr := range []CodingRate{CR3, CR4} {
		width := cr.CodewordBits()
		for nibble := uint8(0); nibble < 16; nibble++ {
			cw := hammingEncode(cr, nibble)
			for bit := 0; bit < width; bit++ {
				corrupted := cw ^ (1 << uint(bit))
				got, errFlag, bad := hammingDecode(cr, corrupted)
				if bad {
					t.Fatalf("cr=%d nibble=%d bit=%d: reported bad for single-bit error", cr, nibble, bit)
				}
				if !errFlag {
					t.Fatalf("cr=%d nibble=%d bit=%d: expected errFlag for single-bit error", cr, nibble, bit)
				}
				if got != nibble {
					t.Fatalf("cr=%d nibble=%d bit=%d: corrected to %d, want %d", cr, nibble, bit, got, nibble)
				}
			}
		}
	}
}

func TestHammingCR4DetectsDoubleBitError(t *testing.T) {
	nibble := uint8(0b1010)
	cw := hammingEncode(CR4, nibble)
	corrupted := cw ^ 0b11 // flip bits 0 and 1
	_, _, bad := hammingDecode(CR4, corrupted)
	if !bad {
		t.Fatalf("CR4: expected double-bit error to be reported bad, codeword %08b", corrupted)
	}
}

func TestHammingCR1AndCR2DetectSingleBitError(t *testing.T) {
	for _, cr := range []CodingRate{CR1, CR2} {
		nibble := uint8(0b0110)
		cw := hammingEncode(cr, nibble)
		corrupted := cw ^ 1
		_, _, bad := hammingDecode(cr, corrupted)
		if !bad {
			t.Fatalf("cr=%d: expected parity-only code to flag single-bit error as bad", cr)
		}
	}
}
