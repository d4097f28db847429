package csdem

import "testing"

func buildNested() *ObjectType {
	innerB := NewBuilder("Inner")
	innerB.Member("x", NewValueType(KindFloat32))
	inner := innerB.Build()

	outerB := NewBuilder("Outer")
	outerB.Member("pos", inner)
	outerB.Member("list", NewArrayType(NewValueType(KindInt32), 2))
	return outerB.Build()
}

func TestLensMemberAndApply(t *testing.T) {
	outer := buildNested()
	lens := NewLens(outer)
	posX, err := lens.Member("pos")
	if err != nil {
		t.Fatal(err)
	}
	posX, err = posX.Member("x")
	if err != nil {
		t.Fatal(err)
	}

	inst := NewInstance(outer)
	ref, err := posX.Apply(inst)
	if err != nil {
		t.Fatal(err)
	}
	if len(ref.Bytes()) != 4 {
		t.Errorf("got %d bytes, want 4", len(ref.Bytes()))
	}
}

func TestLensTypeMismatch(t *testing.T) {
	outer := buildNested()
	other := NewBuilder("Other").Build()
	lens := NewLens(other)

	inst := NewInstance(outer)
	if _, err := lens.Apply(inst); err == nil {
		t.Fatal("expected TypeError applying mismatched lens")
	}
}

func TestViewContainsAndOverlaps(t *testing.T) {
	outer := buildNested()
	whole := View{Type: outer, Offset: 0}
	posView, _ := whole.Member("pos")
	listView, _ := whole.Member("list")

	if !whole.Contains(posView) {
		t.Error("whole should contain pos")
	}
	if whole.Overlaps(listView) == false {
		t.Error("whole should overlap list")
	}
	if posView.Overlaps(listView) {
		t.Error("pos and list are disjoint, should not overlap")
	}
}
