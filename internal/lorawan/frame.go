// Package lorawan implements the LoRaWAN MAC frame format as a thin layer
// on top of the lora PHY: it concatenates a MAC header, device address,
// frame control/counter, options, and payload, appends a CRC-32 message
// integrity check, and hands the result to a lora.Workspace for coding into
// symbols. It is a consumer of the PHY, not part of it, and
// carries none of the PHY's zero-allocation contract.
//
// The message integrity check is a plain CRC-32 (IEEE polynomial) rather
// than the real LoRaWAN AES-CMAC MIC, matching the reduced scope of this
// framing layer.
package lorawan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/jeongseonghan/lora-phy/internal/lora"
)

// MType is the LoRaWAN message type carried in the top 3 bits of MHDR.
type MType uint8

const (
	JoinRequest         MType = 0
	JoinAccept          MType = 1
	UnconfirmedDataUp   MType = 2
	UnconfirmedDataDown MType = 3
	ConfirmedDataUp     MType = 4
	ConfirmedDataDown   MType = 5
	RFU                 MType = 6
	Proprietary         MType = 7
)

func (t MType) String() string {
	switch t {
	case JoinRequest:
		return "JoinRequest"
	case JoinAccept:
		return "JoinAccept"
	case UnconfirmedDataUp:
		return "UnconfirmedDataUp"
	case UnconfirmedDataDown:
		return "UnconfirmedDataDown"
	case ConfirmedDataUp:
		return "ConfirmedDataUp"
	case ConfirmedDataDown:
		return "ConfirmedDataDown"
	case Proprietary:
		return "Proprietary"
	default:
		return fmt.Sprintf("RFU(%d)", uint8(t))
	}
}

// MHDR is the one-byte MAC header: message type in bits 7..5, major
// version in bits 1..0.
type MHDR struct {
	MType MType
	Major uint8
}

// FHDR is the frame header: device address, frame control byte, frame
// counter, and piggybacked MAC commands (FOpts).
type FHDR struct {
	DevAddr uint32
	FCtrl   uint8
	FCnt    uint16
	FOpts   []byte
}

// Frame is a complete LoRaWAN MAC payload, built and parsed without
// encryption: this layer concatenates and authenticates only.
type Frame struct {
	MHDR    MHDR
	FHDR    FHDR
	Payload []byte
}

var (
	// ErrFrameTooShort reports a decoded byte stream too short to contain
	// even an empty frame's fixed fields plus MIC.
	ErrFrameTooShort = errors.New("lorawan: frame too short")

	// ErrMICMismatch reports a message-integrity-check failure: the frame
	// was corrupted or the PHY miscorrected it.
	ErrMICMismatch = errors.New("lorawan: MIC mismatch")
)

const minFrameLen = 1 + 4 + 1 + 2 + 4 // mhdr + devaddr + fctrl + fcnt + mic

func computeMIC(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// marshal writes the frame's bytes, sans MIC, into a freshly allocated
// slice sized to exactly fit.
func (f *Frame) marshal() []byte {
	n := 1 + 4 + 1 + 2 + len(f.FHDR.FOpts) + len(f.Payload)
	buf := make([]byte, n)

	buf[0] = uint8(f.MHDR.MType)<<5 | f.MHDR.Major&0x3
	binary.LittleEndian.PutUint32(buf[1:5], f.FHDR.DevAddr)
	fctrl := f.FHDR.FCtrl&0xF0 | uint8(len(f.FHDR.FOpts))&0x0F
	buf[5] = fctrl
	binary.LittleEndian.PutUint16(buf[6:8], f.FHDR.FCnt)
	off := 8
	copy(buf[off:], f.FHDR.FOpts)
	off += len(f.FHDR.FOpts)
	copy(buf[off:], f.Payload)
	return buf
}

// BuildFrame serializes frame, appends its CRC-32 MIC, and encodes the
// result into symbols via ws.Encode. It returns the number of symbols
// written.
func BuildFrame(ws *lora.Workspace, frame Frame, symbolsOut []uint16) (int, error) {
	body := frame.marshal()
	mic := computeMIC(body)

	bytes := make([]byte, len(body)+4)
	copy(bytes, body)
	binary.LittleEndian.PutUint32(bytes[len(body):], mic)

	return ws.Encode(bytes, symbolsOut)
}

// ParseFrame decodes symbols via ws.Decode, verifies the CRC-32 MIC, and
// fills out with the parsed fields. It returns the payload length.
func ParseFrame(ws *lora.Workspace, symbols []uint16, out *Frame) (int, error) {
	scratch := make([]byte, 258) // generously oversized; Decode's own capacity check trims the return
	n, err := ws.Decode(symbols, scratch)
	if err != nil {
		return 0, fmt.Errorf("lorawan: decode: %w", err)
	}
	bytes := scratch[:n]

	if len(bytes) < minFrameLen {
		return 0, ErrFrameTooShort
	}
	body := bytes[:len(bytes)-4]
	gotMIC := binary.LittleEndian.Uint32(bytes[len(bytes)-4:])
	if computeMIC(body) != gotMIC {
		return 0, ErrMICMismatch
	}

	mhdr := body[0]
	out.MHDR.MType = MType(mhdr >> 5)
	out.MHDR.Major = mhdr & 0x3
	out.FHDR.DevAddr = binary.LittleEndian.Uint32(body[1:5])
	out.FHDR.FCtrl = body[5]
	out.FHDR.FCnt = binary.LittleEndian.Uint16(body[6:8])

	foptsLen := int(body[5] & 0x0F)
	if 8+foptsLen > len(body) {
		return 0, ErrFrameTooShort
	}
	out.FHDR.FOpts = append(out.FHDR.FOpts[:0], body[8:8+foptsLen]...)
	out.Payload = append(out.Payload[:0], body[8+foptsLen:]...)
	return len(out.Payload), nil
}
