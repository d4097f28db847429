package sendtable

// IsArrayIndex reports whether name is the canonical array-table
// member name for index idx: its decimal representation, left-padded
// with zeros to at least 3 digits (spec.md §8 boundary behaviors).
func IsArrayIndex(name string, idx int) bool {
	if idx < 0 {
		return false
	}
	return name == arrayIndexName(idx)
}

func arrayIndexName(idx int) string {
	s := decimal(idx)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

func decimal(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// nonBaseclassProps returns table properties excluding any named
// "baseclass" (array detection and flattening both ignore it).
func nonBaseclassProps(props []*Property) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.Name == "baseclass" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// detectArrayTable sets table.IsArray per spec.md §4.3 step 2: every
// non-baseclass property must be named after its own index and be
// structurally identical to the first property.
func detectArrayTable(table *SendTable) {
	props := nonBaseclassProps(table.Properties)
	if len(props) == 0 {
		table.IsArray = false
		return
	}
	first := props[0]
	for i, p := range props {
		if !IsArrayIndex(p.Name, i) {
			table.IsArray = false
			return
		}
		if i > 0 && !structurallyEqual(p, first) {
			table.IsArray = false
			return
		}
	}
	table.IsArray = true
}

// structurallyEqual compares two properties ignoring Name and
// Priority: same kind, same flags, same kind-specific parameters.
func structurallyEqual(a, b *Property) bool {
	if a.Kind != b.Kind || a.Flags != b.Flags {
		return false
	}
	switch a.Kind {
	case KindInt32, KindInt64:
		return a.NumBits == b.NumBits
	case KindFloat, KindVec2, KindVec3:
		return a.NumBits == b.NumBits && a.Low == b.Low && a.High == b.High
	case KindArray:
		return a.Count == b.Count && structurallyEqual(a.Element, b.Element)
	case KindDataTable:
		return a.TableName == b.TableName
	default:
		return true
	}
}
