package dco

import (
	"encoding/binary"
	"math"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// MarkerCode is the two-byte JPEG 2000 Part 2 DCO marker code, as defined
// in ISO/IEC 15444-2 Annex A.3.
const MarkerCode uint16 = 0xFF5C

// OffsetType selects the wire representation of each offset value in a
// Segment: a signed 32-bit integer, or an IEEE-754 single-precision float.
type OffsetType uint8

const (
	// OffsetTypeInteger serialises each offset as a rounded i32.
	OffsetTypeInteger OffsetType = 0
	// OffsetTypeFloatingPoint serialises each offset as an f32.
	OffsetTypeFloatingPoint OffsetType = 1
)

// Segment is a decoded or to-be-encoded DCO marker segment: the wire
// offset type, and the offsets themselves in wire order (each offset's
// ComponentIndex equals its position in the slice).
type Segment struct {
	OffsetType OffsetType
	Offsets    []Value
}

// EncodeSegmentBody serialises seg's Ldco/Sdco/SPdco fields, without the
// leading FF 5C marker code, in the order the offsets are given.
func EncodeSegmentBody(seg Segment) ([]byte, error) {
	n := len(seg.Offsets)
	ldco := 3 + n*4
	if ldco > 0xFFFF {
		return nil, j2k.NewError(j2k.EncodingError, "segment length %d exceeds u16 range for %d offsets", ldco, n)
	}

	buf := make([]byte, 3+n*4)
	binary.BigEndian.PutUint16(buf[0:2], uint16(ldco))
	buf[2] = byte(seg.OffsetType)

	for i, off := range seg.Offsets {
		pos := 3 + i*4
		switch seg.OffsetType {
		case OffsetTypeInteger:
			binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(off.IntegerValue()))
		case OffsetTypeFloatingPoint:
			binary.BigEndian.PutUint32(buf[pos:pos+4], math.Float32bits(float32(off.Value)))
		default:
			return nil, j2k.NewError(j2k.EncodingError, "unknown offset type %d", seg.OffsetType)
		}
	}
	return buf, nil
}

// EncodeSegment serialises seg including the leading FF 5C marker code.
func EncodeSegment(seg Segment) ([]byte, error) {
	body, err := EncodeSegmentBody(seg)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2+len(body))
	binary.BigEndian.PutUint16(out[0:2], MarkerCode)
	copy(out[2:], body)
	return out, nil
}

// DecodeSegmentBody parses a DCO marker segment starting at the Ldco
// field (no leading marker code). It rejects a buffer shorter than Ldco,
// an unrecognized Sdco value, and a segment length whose remainder after
// the fixed 3-byte header is not a multiple of 4.
func DecodeSegmentBody(buf []byte) (Segment, error) {
	if len(buf) < 3 {
		return Segment{}, j2k.NewError(j2k.DecodingError, "buffer of %d bytes too short for Ldco/Sdco", len(buf))
	}
	ldco := binary.BigEndian.Uint16(buf[0:2])
	if len(buf) < int(ldco) {
		return Segment{}, j2k.NewError(j2k.DecodingError, "buffer of %d bytes shorter than Ldco=%d", len(buf), ldco)
	}

	sdco := buf[2]
	if sdco != byte(OffsetTypeInteger) && sdco != byte(OffsetTypeFloatingPoint) {
		return Segment{}, j2k.NewError(j2k.DecodingError, "unknown Sdco value %d", sdco)
	}

	rem := int(ldco) - 3
	if rem%4 != 0 {
		return Segment{}, j2k.NewError(j2k.DecodingError, "Ldco=%d leaves non-multiple-of-4 remainder %d", ldco, rem)
	}
	n := rem / 4

	offsets := make([]Value, n)
	for i := 0; i < n; i++ {
		pos := 3 + i*4
		raw := binary.BigEndian.Uint32(buf[pos : pos+4])
		var v float64
		if OffsetType(sdco) == OffsetTypeInteger {
			v = float64(int32(raw))
		} else {
			v = float64(math.Float32frombits(raw))
		}
		offsets[i] = Value{ComponentIndex: i, Value: v}
	}
	return Segment{OffsetType: OffsetType(sdco), Offsets: offsets}, nil
}

// DecodeSegment parses a DCO marker segment including its leading FF 5C
// marker code, failing with DecodingError if the code does not match.
func DecodeSegment(buf []byte) (Segment, error) {
	if len(buf) < 2 {
		return Segment{}, j2k.NewError(j2k.DecodingError, "buffer of %d bytes too short for marker code", len(buf))
	}
	code := binary.BigEndian.Uint16(buf[0:2])
	if code != MarkerCode {
		return Segment{}, j2k.NewError(j2k.DecodingError, "marker code 0x%04X does not match DCO 0x%04X", code, MarkerCode)
	}
	return DecodeSegmentBody(buf[2:])
}
