package csdem

import "encoding/binary"

// Type is a polymorphic runtime value description. Every Type knows its
// own size and alignment, can construct/destroy a region of memory it
// owns, and can render itself for debugging.
//
// Three concrete kinds exist (spec.md §3): ValueType for leaf
// primitives, ArrayType for fixed-length homogeneous repetition, and
// ObjectType for named, offset-addressed member lists (with optional
// single inheritance). Types are immutable once built and are shared
// by reference among every entity of a given schema; Instances own
// their own backing byte buffer but share their Type.
type Type interface {
	// Size returns the number of bytes an instance of this type occupies.
	Size() int
	// Align returns the required alignment, in bytes, of this type.
	Align() int
	// Construct zero-initializes a region of Size() bytes at buf.
	Construct(buf []byte)
	// Destroy releases any resources an instance owns. Destruction
	// order is the reverse of construction order for composite types.
	Destroy(buf []byte)
	// Represent returns a short human-readable description, used by
	// debug dumps and error messages.
	Represent() string
}

// align rounds offset up to the next multiple of alignment (alignment
// must be a power of two, as in standard struct packing rules).
func align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	return (offset + alignment - 1) &^ (alignment - 1)
}

// ---- ValueType ----

// ValueKind enumerates the scalar kinds ValueType can hold.
type ValueKind int

// Scalar value kinds.
const (
	KindInt32 ValueKind = iota
	KindInt64
	KindUint32
	KindUint64
	KindFloat32
	KindBool
	KindString
	KindVec2
	KindVec3
	KindInt16
	KindUint8
	KindWString
)

// scalarInfo describes the size, alignment and display name of a ValueKind.
type scalarInfo struct {
	size  int
	align int
	name  string
}

// stringMaxBytes bounds an inline String value's payload, matching the
// wire format's own 9-bit length prefix (spec.md §3: "9-bit length then
// raw bytes, bounded by 512"). Storing strings as a fixed-capacity
// inline buffer (4-byte length + stringMaxBytes payload) rather than a
// native Go string header lets String values live directly inside an
// Instance's raw byte buffer without relying on unsafe pointer tricks
// the garbage collector can't see through a plain []byte backing array.
const stringMaxBytes = 512

var scalarInfos = map[ValueKind]scalarInfo{
	KindInt32:   {4, 4, "int32"},
	KindInt64:   {8, 8, "int64"},
	KindUint32:  {4, 4, "uint32"},
	KindUint64:  {8, 8, "uint64"},
	KindFloat32: {4, 4, "float32"},
	KindBool:    {1, 1, "bool"},
	KindString:  {4 + stringMaxBytes, 4, "string"},
	KindVec2:    {8, 4, "vec2"},
	KindVec3:    {12, 4, "vec3"},
	KindInt16:   {2, 2, "int16"},
	KindUint8:   {1, 1, "uint8"},
	KindWString: {4 + stringMaxBytes, 4, "wstring"},
}

// ValueType is a leaf primitive: an integer, float, bool, string, or
// small fixed vector. Construction zero-initializes the region; a
// string is stored inline (length plus fixed-capacity payload), so its
// zero value is the empty string.
type ValueType struct {
	Kind ValueKind
}

// NewValueType creates a ValueType of the given kind.
func NewValueType(kind ValueKind) *ValueType {
	return &ValueType{Kind: kind}
}

func (v *ValueType) info() scalarInfo { return scalarInfos[v.Kind] }

// Size implements Type.
func (v *ValueType) Size() int { return v.info().size }

// Align implements Type.
func (v *ValueType) Align() int { return v.info().align }

// Construct implements Type.
func (v *ValueType) Construct(buf []byte) {
	for i := range buf[:v.Size()] {
		buf[i] = 0
	}
}

// Destroy implements Type.
func (v *ValueType) Destroy(buf []byte) {
	// Every value, strings included, lives entirely inline in buf;
	// nothing to release.
}

// Represent implements Type.
func (v *ValueType) Represent() string { return v.info().name }

// PutString writes s into dst, a region of Size() bytes belonging to a
// KindString ValueType. s is truncated to stringMaxBytes if longer.
func PutString(dst []byte, s string) {
	if len(s) > stringMaxBytes {
		s = s[:stringMaxBytes]
	}
	binary.LittleEndian.PutUint32(dst, uint32(len(s)))
	copy(dst[4:], s)
}

// GetString reads back a string previously written by PutString from
// src, a region of Size() bytes belonging to a KindString ValueType.
func GetString(src []byte) string {
	n := binary.LittleEndian.Uint32(src)
	if int(n) > stringMaxBytes {
		n = stringMaxBytes
	}
	return string(src[4 : 4+n])
}

// ---- ArrayType ----

// ArrayType is a fixed-length, homogeneous repetition of an element Type.
type ArrayType struct {
	Element Type
	Length  int
}

// NewArrayType creates an ArrayType of length elements of type element.
func NewArrayType(element Type, length int) *ArrayType {
	return &ArrayType{Element: element, Length: length}
}

// Size implements Type.
func (a *ArrayType) Size() int { return a.Element.Size() * a.Length }

// Align implements Type.
func (a *ArrayType) Align() int { return a.Element.Align() }

// Construct implements Type.
func (a *ArrayType) Construct(buf []byte) {
	es := a.Element.Size()
	for i := 0; i < a.Length; i++ {
		a.Element.Construct(buf[i*es : (i+1)*es])
	}
}

// Destroy implements Type. Elements are destroyed in reverse order.
func (a *ArrayType) Destroy(buf []byte) {
	es := a.Element.Size()
	for i := a.Length - 1; i >= 0; i-- {
		a.Element.Destroy(buf[i*es : (i+1)*es])
	}
}

// Represent implements Type.
func (a *ArrayType) Represent() string {
	return "[" + itoa(a.Length) + "]" + a.Element.Represent()
}

// At returns a View onto element index, or a GameError if out of bounds.
func (a *ArrayType) At(index int) (View, error) {
	if index < 0 || index >= a.Length {
		return View{}, NewGameError("array index error: %d out of bounds [0,%d)", index, a.Length)
	}
	es := a.Element.Size()
	return View{Type: a.Element, Offset: es * index}, nil
}

// ---- ObjectType ----

// Member describes one field of an ObjectType.
type Member struct {
	Name   string
	Type   Type
	Offset int
}

// ObjectType is a named, offset-addressed member list with optional
// single inheritance (Base). Member offsets respect each member's own
// alignment, following standard packing rules. Builder.Build never
// sets Base and no method reads it; a child inherits a base's members
// through Builder.Embed, which copies them into the child's layout and
// lookup, where later member declarations may shadow them.
type ObjectType struct {
	Name    string
	Base    *ObjectType
	Members []Member

	size   int
	align  int
	lookup map[string]int // name -> index into Members
}

// Size implements Type.
func (o *ObjectType) Size() int { return o.size }

// Align implements Type.
func (o *ObjectType) Align() int { return o.align }

// Construct implements Type.
func (o *ObjectType) Construct(buf []byte) {
	for _, m := range o.Members {
		m.Type.Construct(buf[m.Offset : m.Offset+m.Type.Size()])
	}
}

// Destroy implements Type. Members are destroyed in reverse declaration order.
func (o *ObjectType) Destroy(buf []byte) {
	for i := len(o.Members) - 1; i >= 0; i-- {
		m := o.Members[i]
		m.Type.Destroy(buf[m.Offset : m.Offset+m.Type.Size()])
	}
}

// Represent implements Type.
func (o *ObjectType) Represent() string {
	if o.Name != "" {
		return o.Name
	}
	return "<object>"
}

// MemberError is returned when a named member doesn't exist.
type MemberError struct{ Name string }

func (e *MemberError) Error() string { return "no such member: " + e.Name }

// At returns a View onto the named member, walking the lookup table
// (which already accounts for inherited-then-shadowed names).
func (o *ObjectType) At(name string) (View, error) {
	idx, ok := o.lookup[name]
	if !ok {
		return View{}, &MemberError{Name: name}
	}
	m := o.Members[idx]
	return View{Type: m.Type, Offset: m.Offset}, nil
}

// Index returns a View onto the member at the given declaration index.
func (o *ObjectType) Index(i int) (View, error) {
	if i < 0 || i >= len(o.Members) {
		return View{}, NewGameError("object member index error: %d out of bounds [0,%d)", i, len(o.Members))
	}
	m := o.Members[i]
	return View{Type: m.Type, Offset: m.Offset}, nil
}

// Builder incrementally constructs an ObjectType, offset-packing
// members as they are added and letting later additions of the same
// name shadow earlier ones in the lookup table (this is how a child
// object's declared members take priority over an embedded base's).
type Builder struct {
	name    string
	size    int
	align   int
	members []Member
	lookup  map[string]int
}

// NewBuilder creates an empty Builder for an object named name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, align: 1, lookup: make(map[string]int)}
}

// Member appends a single named member, placed at the next offset
// that satisfies typ's alignment.
func (b *Builder) Member(name string, typ Type) {
	offset := align(b.size, typ.Align())
	b.members = append(b.members, Member{Name: name, Type: typ, Offset: offset})
	b.size = offset + typ.Size()
	if typ.Align() > b.align {
		b.align = typ.Align()
	}
	// Member addition always overwrites the name -> index lookup so
	// child declarations shadow base declarations of the same name.
	b.lookup[name] = len(b.members) - 1
}

// Embed copies all members of another ObjectType into this builder,
// preserving their relative layout exactly: the embedded block starts
// at the next offset aligned to other's own alignment, and each
// member keeps its offset relative to that block's start. This is how
// COLLAPSIBLE properties and base-class inheritance both fold a
// referenced object's fields into the current layout without
// disturbing the sub-layout the other Type was built (and is also
// shared/addressed) with.
func (b *Builder) Embed(other *ObjectType) {
	base := align(b.size, other.Align())
	for _, m := range other.Members {
		offset := base + m.Offset
		b.members = append(b.members, Member{Name: m.Name, Type: m.Type, Offset: offset})
		if end := offset + m.Type.Size(); end > b.size {
			b.size = end
		}
		b.lookup[m.Name] = len(b.members) - 1
	}
	if other.Align() > b.align {
		b.align = other.Align()
	}
}

// Build finalizes the Builder into an immutable ObjectType.
func (b *Builder) Build() *ObjectType {
	members := make([]Member, len(b.members))
	copy(members, b.members)
	lookup := make(map[string]int, len(b.lookup))
	for k, v := range b.lookup {
		lookup[k] = v
	}
	align := b.align
	if align < 1 {
		align = 1
	}
	return &ObjectType{
		Name:    b.name,
		Members: members,
		size:    b.size,
		align:   align,
		lookup:  lookup,
	}
}

// itoa is a tiny helper to avoid pulling in strconv
// just for Represent()'s array-length formatting.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
