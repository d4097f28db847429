// Package sendtable implements the declarative network schema (spec.md
// §3 "SendTable / Property"): the tagged-sum Property hierarchy, the
// SendTable/DataTable ingestion that parses it off the wire, and the
// EntityType flattening that turns a ServerClass's table into a
// concrete, offset-addressed runtime type.
package sendtable

import (
	"math"

	"github.com/icza/csdem"
)

// Kind identifies which of the eight property variants a Property is.
// Modeled as a tagged sum (spec.md §9 "Polymorphic properties") rather
// than an interface hierarchy: the kind-specific fields below all live
// on the one Property struct, and decode dispatches with a switch on
// Kind instead of a virtual call.
type Kind int

// Property kinds, matching the table in spec.md §3.
const (
	KindInt32 Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindString
	KindArray
	KindDataTable
	KindInt64
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "Int32"
	case KindFloat:
		return "Float"
	case KindVec2:
		return "Vec2"
	case KindVec3:
		return "Vec3"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindDataTable:
		return "DataTable"
	case KindInt64:
		return "Int64"
	default:
		return "Kind(?)"
	}
}

// Property describes one field of a SendTable. Only the fields
// relevant to its Kind are meaningful; see the table in spec.md §3.
type Property struct {
	Name     string
	Kind     Kind
	Flags    uint32
	Priority int

	// Int32 / Int64
	NumBits int

	// Float (also used as the per-component encoding for Vec2/Vec3)
	Low, High float32

	// Array
	Element *Property
	Count   int

	// DataTable
	TableName string
	Table     *SendTable // resolved once all tables of the block are parsed
}

// Unsigned reports whether the UNSIGNED flag is set.
func (p *Property) Unsigned() bool { return p.Flags&csdem.FlagUnsigned != 0 }

// ValueType returns the runtime Type a decoded instance of this
// property occupies. For DataTable properties this is only valid once
// Table.EntityType has been materialized.
func (p *Property) ValueType() csdem.Type {
	switch p.Kind {
	case KindInt32:
		return csdem.NewValueType(csdem.KindInt32)
	case KindInt64:
		return csdem.NewValueType(csdem.KindInt64)
	case KindFloat:
		return csdem.NewValueType(csdem.KindFloat32)
	case KindVec2:
		return csdem.NewValueType(csdem.KindVec2)
	case KindVec3:
		return csdem.NewValueType(csdem.KindVec3)
	case KindString:
		return csdem.NewValueType(csdem.KindString)
	case KindArray:
		return csdem.NewArrayType(p.Element.ValueType(), p.Count)
	case KindDataTable:
		if p.Table != nil && p.Table.EntityType != nil {
			return p.Table.EntityType
		}
		return nil
	default:
		return nil
	}
}

// DecodeInto reads this property's value off b and writes it into dst,
// a region of exactly p.ValueType().Size() bytes. This is the dispatch
// named in spec.md §4.4.2: "dispatch on the property kind and flag
// bits to the corresponding BitDecoder float/integer decoder."
func (p *Property) DecodeInto(b *csdem.BitDecoder, dst []byte) error {
	switch p.Kind {
	case KindInt32:
		v, err := p.decodeInt(b, 32)
		if err != nil {
			return err
		}
		putLE32(dst, uint32(v))
		return nil

	case KindInt64:
		v, err := p.decodeInt(b, 64)
		if err != nil {
			return err
		}
		putLE64(dst, uint64(v))
		return nil

	case KindFloat:
		v, err := decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
		if err != nil {
			return err
		}
		putLE32(dst, math.Float32bits(v))
		return nil

	case KindVec2:
		x, err := decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
		if err != nil {
			return err
		}
		y, err := decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
		if err != nil {
			return err
		}
		putLE32(dst[0:4], math.Float32bits(x))
		putLE32(dst[4:8], math.Float32bits(y))
		return nil

	case KindVec3:
		return p.decodeVec3(b, dst)

	case KindString:
		return p.decodeString(b, dst)

	case KindArray:
		return p.decodeArray(b, dst)

	case KindDataTable:
		return csdem.NewGameError("sendtable: property %q (DataTable) has no direct wire decode", p.Name)

	default:
		return csdem.NewGameError("sendtable: property %q has unknown kind %d", p.Name, p.Kind)
	}
}

// decodeInt decodes an Int32/Int64 property: fixed-width
// unsigned/signed, or variable-length zigzag/unsigned when VARINT is set.
func (p *Property) decodeInt(b *csdem.BitDecoder, maxBits int) (int64, error) {
	if p.Flags&csdem.FlagVarInt != 0 {
		if maxBits > 32 {
			v, err := b.ReadVariableUnsigned64()
			if err != nil {
				return 0, err
			}
			if p.Unsigned() {
				return int64(v), nil
			}
			return zigzagDecode64(v), nil
		}
		v, err := b.ReadVariableUnsigned32()
		if err != nil {
			return 0, err
		}
		if p.Unsigned() {
			return int64(v), nil
		}
		return int64(zigzagDecode32(v)), nil
	}

	if p.Unsigned() {
		v, err := b.Read(p.NumBits)
		return int64(v), err
	}
	return b.ReadSigned(p.NumBits)
}

func zigzagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }
func zigzagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }

// decodeVec3 decodes x and y normally; when the XYZ flag is set, z's
// sign bit is read explicitly and its magnitude reconstructed from the
// unit-length constraint (x, y, z) forms a normalized vector, per
// spec.md §3's "Vec3 with XYZ flag decodes Z sign bit + magnitude from
// quadrant of (x,y)".
func (p *Property) decodeVec3(b *csdem.BitDecoder, dst []byte) error {
	x, err := decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
	if err != nil {
		return err
	}
	y, err := decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
	if err != nil {
		return err
	}

	var z float32
	if p.Flags&csdem.FlagXYZ != 0 {
		negative, err := b.ReadBit()
		if err != nil {
			return err
		}
		mag := 1 - x*x - y*y
		if mag < 0 {
			mag = 0
		}
		z = float32(math.Sqrt(float64(mag)))
		if negative {
			z = -z
		}
	} else {
		z, err = decodeFloat(b, p.Low, p.High, p.NumBits, p.Flags)
		if err != nil {
			return err
		}
	}

	putLE32(dst[0:4], math.Float32bits(x))
	putLE32(dst[4:8], math.Float32bits(y))
	putLE32(dst[8:12], math.Float32bits(z))
	return nil
}

const stringLengthBits = 9
const stringMaxWireBytes = 512

// decodeString reads a 9-bit length then that many raw bytes (spec.md
// §3: "9-bit length then raw bytes, bounded by 512").
func (p *Property) decodeString(b *csdem.BitDecoder, dst []byte) error {
	n, err := b.Read32(stringLengthBits)
	if err != nil {
		return err
	}
	if n > stringMaxWireBytes {
		return csdem.NewGameError("sendtable: property %q string length %d exceeds bound %d", p.Name, n, stringMaxWireBytes)
	}
	raw, err := b.ReadUnalignedBytes(int(n))
	if err != nil {
		return err
	}
	csdem.PutString(dst, string(raw))
	return nil
}

// decodeArray reads a ceil(log2(Count+1))-bit element count, then
// decodes that many elements of p.Element in turn (spec.md §3:
// "repeat element decode ceil(log2(length+1))-bit prefix times").
// Elements beyond the decoded count keep whatever value construction
// left (or a previous update left) in place.
func (p *Property) decodeArray(b *csdem.BitDecoder, dst []byte) error {
	countBits := bitsForCount(p.Count)
	n, err := b.Read32(countBits)
	if err != nil {
		return err
	}
	elemSize := p.Element.ValueType().Size()
	for i := 0; i < int(n) && i < p.Count; i++ {
		if err := p.Element.DecodeInto(b, dst[i*elemSize:(i+1)*elemSize]); err != nil {
			return err
		}
	}
	return nil
}

// bitsForCount returns ceil(log2(n+1)), the width of the prefix needed
// to represent any count in [0, n].
func bitsForCount(n int) int {
	bits := 0
	for (1 << uint(bits)) <= n {
		bits++
	}
	return bits
}

func putLE32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

func putLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * uint(i)))
	}
}

// decodeFloat dispatches to the BitDecoder float decoder selected by
// flags, following the precedence spec.md §3's Float row lists exactly
// (resolved per spec.md §9's open question on the two "coord
// multiplayer" variants): bit-coord, coord-multiplayer, no-scale,
// normal, cell-coord, then scaled quantization as the default.
func decodeFloat(b *csdem.BitDecoder, low, high float32, numBits int, flags uint32) (float32, error) {
	switch {
	case flags&csdem.FlagCoord != 0:
		return b.ReadBitCoord()
	case flags&(csdem.FlagCoordMP|csdem.FlagCoordMPLow|csdem.FlagCoordMPInt) != 0:
		return b.ReadBitCoordMP(flags&csdem.FlagCoordMPInt != 0, flags&csdem.FlagCoordMPLow != 0)
	case flags&csdem.FlagNoScale != 0:
		return b.ReadNoScale()
	case flags&csdem.FlagNormal != 0:
		return b.ReadBitNormal()
	case flags&(csdem.FlagCell|csdem.FlagCellLow|csdem.FlagCellInt) != 0:
		return b.ReadBitCellCoord(numBits, flags&csdem.FlagCellInt != 0, flags&csdem.FlagCellLow != 0)
	default:
		return b.ReadScaled(low, high, numBits, flags)
	}
}
