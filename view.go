package csdem

import "math"

// View is a (type, offset) pair produced by indexing into a Type.
// Chained indexing (View of a View) composes offsets and type-checks
// at each step.
type View struct {
	Type   Type
	Offset int
}

// Member projects further into view, failing with a GameError if the
// underlying type is not an ObjectType, or a MemberError if it has no
// such member.
func (v View) Member(name string) (View, error) {
	obj, ok := v.Type.(*ObjectType)
	if !ok {
		return View{}, NewGameError("type error: %q is not an object", v.Type.Represent())
	}
	sub, err := obj.At(name)
	if err != nil {
		return View{}, err
	}
	return View{Type: sub.Type, Offset: v.Offset + sub.Offset}, nil
}

// Index projects into an array element, failing with a GameError if
// the underlying type is not an ArrayType or the index is out of range.
func (v View) Index(i int) (View, error) {
	arr, ok := v.Type.(*ArrayType)
	if !ok {
		return View{}, NewGameError("type error: %q is not an array", v.Type.Represent())
	}
	sub, err := arr.At(i)
	if err != nil {
		return View{}, err
	}
	return View{Type: sub.Type, Offset: v.Offset + sub.Offset}, nil
}

// end returns the exclusive upper bound of the byte interval v covers.
func (v View) end() int { return v.Offset + v.Type.Size() }

// Contains reports whether v's byte interval fully contains other's
// (v >= other, using the interval-containment ordering spec.md §4.2
// defines for View/Lens comparisons).
func (v View) Contains(other View) bool {
	return v.Offset <= other.Offset && other.end() <= v.end()
}

// Overlaps reports whether v's and other's byte intervals intersect at all.
func (v View) Overlaps(other View) bool {
	return v.Offset < other.end() && other.Offset < v.end()
}

// Equal reports whether v and other denote the exact same byte interval.
func (v View) Equal(other View) bool {
	return v.Offset == other.Offset && v.end() == other.end()
}

// TypeError is returned when a Lens is applied to an Instance whose
// type doesn't match the Lens's recorded origin.
type TypeError struct {
	Origin, Got string
}

func (e *TypeError) Error() string {
	return "type error: expected " + e.Origin + ", got " + e.Got
}

// Lens records a root type together with a View into it, so that the
// same projection can later be applied to any Instance of that root
// type. This is what lets an observer ask "did this update touch the
// sub-region I care about?" without re-deriving the path through the
// schema on every call.
type Lens struct {
	Origin Type
	View   View
}

// NewLens creates a Lens with the given origin type and an identity
// view over the whole of it.
func NewLens(origin Type) Lens {
	return Lens{Origin: origin, View: View{Type: origin, Offset: 0}}
}

// Member returns a new Lens that additionally projects into the named
// member of the current view's type.
func (l Lens) Member(name string) (Lens, error) {
	v, err := l.View.Member(name)
	if err != nil {
		return Lens{}, err
	}
	return Lens{Origin: l.Origin, View: v}, nil
}

// Index returns a new Lens that additionally projects into an array element.
func (l Lens) Index(i int) (Lens, error) {
	v, err := l.View.Index(i)
	if err != nil {
		return Lens{}, err
	}
	return Lens{Origin: l.Origin, View: v}, nil
}

// Apply checks that inst's type equals the Lens's origin and, if so,
// returns a Reference into inst's backing data.
func (l Lens) Apply(inst *Instance) (*Reference, error) {
	if inst.Type != l.Origin {
		return nil, &TypeError{Origin: l.Origin.Represent(), Got: inst.Type.Represent()}
	}
	return &Reference{Lens: l, Data: inst.Data}, nil
}

// Reference is a Lens applied to a concrete Instance's backing data:
// the pair of "where" (Lens) and "what" (the shared byte buffer).
type Reference struct {
	Lens Lens
	Data []byte
}

// Bytes returns the raw bytes of the referenced region.
func (r *Reference) Bytes() []byte {
	v := r.Lens.View
	return r.Data[v.Offset:v.end()]
}

// Instance is a concrete, exclusively-owned value of a Type: an owned
// byte buffer sharing a (logically immutable) Type by pointer.
type Instance struct {
	Type Type
	Data []byte
}

// NewInstance allocates and constructs a fresh Instance of typ.
func NewInstance(typ Type) *Instance {
	buf := make([]byte, typ.Size())
	typ.Construct(buf)
	return &Instance{Type: typ, Data: buf}
}

// Destroy releases any resources the instance's value owns. The
// Instance must not be used afterwards.
func (i *Instance) Destroy() {
	i.Type.Destroy(i.Data)
}

// Int32 projects through lens and interprets the region as a little-
// endian int32, panicking with the Lens's *TypeError if inst is not of
// the lens's origin type, or a GameError if the projected region is not
// a ValueType. This and Float32 below are the thin ergonomic accessors
// spec_full.md's data-model supplement adds over the raw Lens/Reference
// machinery.
func (i *Instance) Int32(lens Lens) int32 {
	ref, err := lens.Apply(i)
	if err != nil {
		panic(err)
	}
	if _, ok := ref.Lens.View.Type.(*ValueType); !ok {
		panic(NewGameError("Int32: %q is not a value type", ref.Lens.View.Type.Represent()))
	}
	b := ref.Bytes()
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

// Float32 projects through lens and interprets the region as an IEEE754
// float32, panicking with the Lens's *TypeError if inst is not of the
// lens's origin type; the projected region's type is not checked.
func (i *Instance) Float32(lens Lens) float32 {
	ref, err := lens.Apply(i)
	if err != nil {
		panic(err)
	}
	b := ref.Bytes()
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
