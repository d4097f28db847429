package demo

import (
	"strconv"

	"github.com/icza/csdem"
	"github.com/icza/csdem/stringtable"
)

// stringTables indexes every StringTable a demo has created, both by
// its creation-order wire index (what svc_UpdateStringTable's table_id
// targets) and by name (what the instance baseline and userinfo
// special cases look up by, spec.md §4.4 step 3 / §4.5.1 step 6).
type stringTables struct {
	byIndex []*stringtable.StringTable
	byName  map[string]*stringtable.StringTable
}

func newStringTables() *stringTables {
	return &stringTables{byName: make(map[string]*stringtable.StringTable)}
}

func (s *stringTables) add(t *stringtable.StringTable) {
	s.byIndex = append(s.byIndex, t)
	s.byName[t.Name] = t
}

func (s *stringTables) byID(id int) (*stringtable.StringTable, error) {
	if id < 0 || id >= len(s.byIndex) {
		return nil, csdem.NewGameError("demo: string table update targets unknown table id %d", id)
	}
	return s.byIndex[id], nil
}

// InstanceBaseline implements entity.BaselineSource: the "instance_baseline"
// table's entries are keyed by the server class index, stringified
// (spec.md §4.4 step 3).
func (s *stringTables) InstanceBaseline(classIndex int) ([]byte, bool) {
	t, ok := s.byName["instance_baseline"]
	if !ok {
		return nil, false
	}
	key := strconv.Itoa(classIndex)
	for _, e := range t.Entries {
		if e != nil && e.Name == key {
			return e.Data, true
		}
	}
	return nil, false
}
