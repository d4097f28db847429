package sendtable

import (
	"sort"

	"github.com/icza/csdem"
)

// ParentLink is a singly linked list from a flattened leaf entry up to
// the root of its EntityType, recording the offset of each nested
// DataTable member along the way. Sibling entries under the same
// parent share the same tail node (spec.md §9 "Parent chains").
type ParentLink struct {
	Property *Property
	Offset   int
	Parent   *ParentLink
}

// PrioritizedEntry is one leaf of the flattened, priority-ordered
// field list an EntityType exposes for delta decoding (spec.md §3
// "prioritized vector"). Offset is local to the entry's immediate
// parent object; AbsoluteOffset walks Parent to recover the address
// within the entity's own backing buffer.
type PrioritizedEntry struct {
	Property *Property
	Offset   int
	Parent   *ParentLink
}

// AbsoluteOffset sums this entry's offset with every ParentLink's
// offset up to the root, per spec.md §8's quantified invariant.
func (e PrioritizedEntry) AbsoluteOffset() int {
	off := e.Offset
	for p := e.Parent; p != nil; p = p.Parent {
		off += p.Offset
	}
	return off
}

type exclKey struct {
	Table, Prop string
}

// MaterializeEntityType builds sc.EntityType and sc.Prioritized from
// sc.Table (and, recursively, sc.Base), per spec.md §4.3. Safe to call
// more than once; later calls are no-ops once EntityType is set.
func MaterializeEntityType(sc *ServerClass) error {
	if sc.EntityType != nil {
		return nil
	}
	if sc.Base != nil {
		if err := MaterializeEntityType(sc.Base); err != nil {
			return err
		}
	}

	b := csdem.NewBuilder(sc.Name)
	if sc.Base != nil {
		b.Embed(sc.Base.EntityType)
	}
	if err := materializeInto(b, sc.Table); err != nil {
		return err
	}
	sc.EntityType = b.Build()
	sc.Table.EntityType = sc.EntityType

	excludes := gatherAllExcludes(sc)
	var entries []PrioritizedEntry
	if sc.Base != nil {
		entries = append(entries, sc.Base.Prioritized...)
	}
	if err := flattenTable(sc.EntityType, sc.Table, nil, excludes, &entries); err != nil {
		return err
	}
	sortPrioritized(entries)
	sc.Prioritized = entries
	return nil
}

// materializeTableType lazily builds and caches table.EntityType for a
// data table that is not itself bound to a server class (an ordinary
// nested or array sub-table).
func materializeTableType(table *SendTable) (*csdem.ObjectType, error) {
	if table.EntityType != nil {
		return table.EntityType, nil
	}
	b := csdem.NewBuilder(table.Name)
	if err := materializeInto(b, table); err != nil {
		return nil, err
	}
	table.EntityType = b.Build()
	return table.EntityType, nil
}

// materializeInto adds table's properties as members of b, per
// spec.md §4.3's construct_type rules: skip baseclass; COLLAPSIBLE
// data tables embed inline; is_array data tables become a single
// array member; other data tables become a nested object member;
// everything else becomes a plain leaf member.
func materializeInto(b *csdem.Builder, table *SendTable) error {
	for _, p := range table.Properties {
		if p.Name == "baseclass" {
			continue
		}
		if p.Kind != KindDataTable {
			b.Member(p.Name, p.ValueType())
			continue
		}
		if p.Table == nil {
			return csdem.NewGameError("sendtable: property %q has no resolved data table", p.Name)
		}
		if p.Flags&csdem.FlagCollapsible != 0 {
			sub, err := materializeTableType(p.Table)
			if err != nil {
				return err
			}
			b.Embed(sub)
			continue
		}
		if p.Table.IsArray {
			elems := nonBaseclassProps(p.Table.Properties)
			b.Member(p.Name, csdem.NewArrayType(elems[0].ValueType(), len(elems)))
			continue
		}
		sub, err := materializeTableType(p.Table)
		if err != nil {
			return err
		}
		b.Member(p.Name, sub)
	}
	return nil
}

// flattenTable walks table's properties in the same order and with
// the same collapse/array/nest rules as materializeInto, emitting one
// PrioritizedEntry per leaf field (spec.md §3's flattening algorithm).
// obj is the already-materialized ObjectType whose member offsets
// correspond to this call's level of nesting.
func flattenTable(obj *csdem.ObjectType, table *SendTable, parent *ParentLink, excludes map[exclKey]bool, out *[]PrioritizedEntry) error {
	for _, p := range table.Properties {
		if p.Name == "baseclass" {
			continue
		}
		if excludes[exclKey{Table: table.Name, Prop: p.Name}] {
			continue
		}

		if p.Kind != KindDataTable {
			v, err := obj.At(p.Name)
			if err != nil {
				return err
			}
			*out = append(*out, PrioritizedEntry{Property: p, Offset: v.Offset, Parent: parent})
			continue
		}

		if p.Table == nil {
			return csdem.NewGameError("sendtable: property %q has no resolved data table", p.Name)
		}
		if p.Flags&csdem.FlagCollapsible != 0 {
			if err := flattenTable(obj, p.Table, parent, excludes, out); err != nil {
				return err
			}
			continue
		}
		if p.Table.IsArray {
			v, err := obj.At(p.Name)
			if err != nil {
				return err
			}
			elems := nonBaseclassProps(p.Table.Properties)
			synth := &Property{
				Name: p.Name, Kind: KindArray, Flags: p.Flags, Priority: p.Priority,
				Element: elems[0], Count: len(elems),
			}
			*out = append(*out, PrioritizedEntry{Property: synth, Offset: v.Offset, Parent: parent})
			continue
		}

		v, err := obj.At(p.Name)
		if err != nil {
			return err
		}
		sub, ok := v.Type.(*csdem.ObjectType)
		if !ok {
			return csdem.NewGameError("sendtable: member %q is not an object", p.Name)
		}
		newParent := &ParentLink{Property: p, Offset: v.Offset, Parent: parent}
		if err := flattenTable(sub, p.Table, newParent, excludes, out); err != nil {
			return err
		}
	}
	return nil
}

// collectExcludes gathers every Exclude declared anywhere in the data
// table DAG reachable from table (spec.md §8 scenario 5: a base
// table's exclude reaches into a child table's properties).
func collectExcludes(table *SendTable, visited map[*SendTable]bool, out map[exclKey]bool) {
	if table == nil || visited[table] {
		return
	}
	visited[table] = true
	for _, e := range table.Excludes {
		out[exclKey{Table: e.TableName, Prop: e.PropName}] = true
	}
	for _, p := range table.Properties {
		if p.Kind == KindDataTable {
			collectExcludes(p.Table, visited, out)
		}
	}
}

func gatherAllExcludes(sc *ServerClass) map[exclKey]bool {
	out := make(map[exclKey]bool)
	visited := make(map[*SendTable]bool)
	for s := sc; s != nil; s = s.Base {
		collectExcludes(s.Table, visited, out)
	}
	return out
}

// sortPrioritized applies the priority reorder of spec.md §3: entries
// are stably grouped by priority; a CHANGES_OFTEN-flagged entry is
// only pulled forward into the priority-64 catch-all bucket if its own
// declared priority hadn't already swept it at an earlier pass. A
// single stable sort by this effective key reproduces the repeated
// front-extraction the spec describes.
func sortPrioritized(entries []PrioritizedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return effectivePriority(entries[i]) < effectivePriority(entries[j])
	})
}

func effectivePriority(e PrioritizedEntry) int {
	if e.Property.Flags&csdem.FlagChangesOften != 0 && e.Property.Priority > 64 {
		return 64
	}
	return e.Property.Priority
}
