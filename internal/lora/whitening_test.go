package lora

import (
	"bytes"
	"testing"
)

func TestWhitenIsSelfInverse(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	whitened := make([]byte, len(data))
	whiten(whitened, data)
	if bytes.Equal(whitened, data) {
		t.Fatal("whitening left data unchanged")
	}

	recovered := make([]byte, len(data))
	whiten(recovered, whitened)
	if !bytes.Equal(recovered, data) {
		t.Fatalf("whiten(whiten(data)) = %v, want %v", recovered, data)
	}
}

func TestWhitenAliasedBuffer(t *testing.T) {
	data := []byte{0x00, 0xFF, 0xAA, 0x55, 0x01}
	orig := append([]byte(nil), data...)
	whiten(data, data)
	whiten(data, data)
	if !bytes.Equal(data, orig) {
		t.Fatalf("in-place double whiten = %v, want %v", data, orig)
	}
}

func TestCRC16PayloadDeterministicAndSensitive(t *testing.T) {
	a := []byte("hello")
	b := []byte("hellp")
	if crc16Payload(a) == crc16Payload(b) {
		t.Fatal("crc16Payload collided on single-byte difference")
	}
	if crc16Payload(a) != crc16Payload(append([]byte(nil), a...)) {
		t.Fatal("crc16Payload not deterministic")
	}
}

func TestCRC5HeaderDetectsBitFlip(t *testing.T) {
	nibbles := [3]uint8{0x1, 0x2, 0x3}
	chk := crc5Header(nibbles)
	nibbles[1] ^= 0x1
	if crc5Header(nibbles) == chk {
		t.Fatal("crc5Header did not change after single nibble bit flip")
	}
}
