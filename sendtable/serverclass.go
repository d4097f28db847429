package sendtable

import "github.com/icza/csdem"

// ServerClass binds a name/index to a SendTable: effectively "the type
// of an entity" (spec.md §3). Base is resolved after every table in
// the block has been bound, by scanning for a "baseclass" property.
type ServerClass struct {
	Index         int
	Name          string
	DataTableName string
	Table         *SendTable
	Base          *ServerClass

	EntityType  *csdem.ObjectType
	Prioritized []PrioritizedEntry
}

// ParseServerClasses reads the little-endian u16 count of server
// classes and, for each, a u16 id and two NUL-terminated names,
// binding each class to its data table by exact name (spec.md §4.3).
func ParseServerClasses(cs *csdem.CodedStream, tables map[string]*SendTable) ([]*ServerClass, error) {
	count, err := cs.ReadLittleEndian16()
	if err != nil {
		return nil, err
	}
	classes := make([]*ServerClass, 0, count)
	for i := 0; i < int(count); i++ {
		id, err := cs.ReadLittleEndian16()
		if err != nil {
			return nil, err
		}
		name, err := cs.ReadCString()
		if err != nil {
			return nil, err
		}
		dtName, err := cs.ReadCString()
		if err != nil {
			return nil, err
		}
		table, ok := tables[dtName]
		if !ok {
			return nil, csdem.NewGameError("sendtable: server class %q references unknown data table %q", name, dtName)
		}
		sc := &ServerClass{Index: int(id), Name: name, DataTableName: dtName, Table: table}
		table.ServerClass = sc
		classes = append(classes, sc)
	}
	return classes, nil
}

// ResolveBaseClasses scans each class's table for a DataTable property
// named "baseclass"; the referenced table's bound server class becomes
// the base (spec.md §3/§4.3: "assertion: at most one such").
func ResolveBaseClasses(classes []*ServerClass) error {
	for _, sc := range classes {
		var baseProp *Property
		for _, p := range sc.Table.Properties {
			if p.Name == "baseclass" && p.Kind == KindDataTable {
				if baseProp != nil {
					return csdem.NewGameError("sendtable: server class %q has more than one baseclass property", sc.Name)
				}
				baseProp = p
			}
		}
		if baseProp == nil {
			continue
		}
		if baseProp.Table == nil || baseProp.Table.ServerClass == nil {
			return csdem.NewGameError("sendtable: server class %q's baseclass table %q is not bound to any server class", sc.Name, baseProp.TableName)
		}
		sc.Base = baseProp.Table.ServerClass
	}
	return nil
}

// ResolveDataTableReferences binds every DataTable property's Table
// pointer by name, across all tables in the block. Must run before
// ResolveBaseClasses and before any EntityType materialization.
func ResolveDataTableReferences(tables []*SendTable) error {
	byName := make(map[string]*SendTable, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	for _, t := range tables {
		for _, p := range t.Properties {
			if p.Kind != KindDataTable {
				continue
			}
			target, ok := byName[p.TableName]
			if !ok {
				return csdem.NewGameError("sendtable: table %q references unknown data table %q", t.Name, p.TableName)
			}
			p.Table = target
		}
	}
	return nil
}

// TablesByName indexes tables by name, for ParseServerClasses and
// ResolveDataTableReferences callers that built the slice themselves.
func TablesByName(tables []*SendTable) map[string]*SendTable {
	byName := make(map[string]*SendTable, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	return byName
}
