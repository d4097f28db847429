package sendtable

import (
	"math"

	"github.com/icza/csdem"
)

// Exclude records a (table, property) pair that an EXCLUDE-flagged
// property elsewhere in the hierarchy has asked to be omitted from the
// flattened EntityType.
type Exclude struct {
	TableName string
	PropName  string
}

// SendTable is a parsed CSVCMsg_SendTable: a name, its ordered
// properties, and any excludes it declares. EntityType is filled in
// once MaterializeEntityType has run for the owning ServerClass (or,
// for a nested/array data table, for whichever ServerClass first
// forces its materialization).
type SendTable struct {
	Name        string
	Properties  []*Property
	Excludes    []Exclude
	IsArray     bool
	ServerClass *ServerClass // weak backpointer; nil until bound

	EntityType *csdem.ObjectType
}

// Field tags for the hand-rolled CSVCMsg_SendTable / sendprop_t wire
// schema this package decodes (spec.md §6: "generated protobuf
// messages" the DATA_TABLES frame carries; no .proto file is compiled,
// so this package defines the field numbers itself, grounded directly
// in spec.md §3/§4.3's description of every field a SendTable and its
// properties carry).
const (
	tableFieldIsEnd         = 1
	tableFieldName          = 2
	tableFieldProps         = 3
	tableFieldNeedsDecoder  = 4
	propFieldType           = 1
	propFieldVarName        = 2
	propFieldFlags          = 3
	propFieldPriority       = 4
	propFieldDTName         = 5
	propFieldNumElements    = 6
	propFieldLowValue       = 7
	propFieldHighValue      = 8
	propFieldNumBits        = 9
)

// wireProp is the raw field bag read off one sendprop_t submessage,
// before INSIDE_ARRAY/ARRAY pairing and exclude extraction convert it
// into the table's Properties/Excludes.
type wireProp struct {
	kind     Kind
	name     string
	flags    uint32
	priority int
	dtName   string
	numElems int
	low      float32
	high     float32
	numBits  int
}

// ParseDataTablesBlock reads a run of length-delimited CSVCMsg_SendTable
// messages terminated by one with is_end set (spec.md §4.3), off cs.
// cs is left positioned immediately after the terminator, so a caller
// parsing a whole DATA_TABLES frame body can go on to read the
// trailing server class list from the same stream.
func ParseDataTablesBlock(cs *csdem.CodedStream) ([]*SendTable, error) {
	var tables []*SendTable
	for !cs.AtEnd() {
		msg, err := cs.PushLimitedSubstream()
		if err != nil {
			return nil, csdem.Wrap("data tables block", err)
		}
		table, isEnd, err := parseSendTableMessage(msg)
		if err != nil {
			return nil, err
		}
		if isEnd {
			break
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func parseSendTableMessage(cs *csdem.CodedStream) (*SendTable, bool, error) {
	table := &SendTable{}
	var isEnd bool
	var pendingElement *Property // most recent INSIDE_ARRAY property, awaiting its Array owner

	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, false, err
		}
		switch field {
		case tableFieldIsEnd:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, false, err
			}
			isEnd = v != 0

		case tableFieldName:
			raw, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, false, err
			}
			table.Name = string(raw)

		case tableFieldNeedsDecoder:
			if _, err := cs.ReadVarint64(); err != nil {
				return nil, false, err
			}

		case tableFieldProps:
			sub, err := cs.PushLimitedSubstream()
			if err != nil {
				return nil, false, err
			}
			wp, err := parseSendProp(sub)
			if err != nil {
				return nil, false, err
			}

			if wp.flags&csdem.FlagExclude != 0 {
				table.Excludes = append(table.Excludes, Exclude{TableName: wp.dtName, PropName: wp.name})
				continue
			}

			prop := wireToProperty(wp)

			if wp.flags&csdem.FlagInsideArray != 0 {
				// Held back: the next ARRAY property adopts it as its
				// element, and it is never itself a table member
				// (spec.md §4.3 step 1).
				pendingElement = prop
				continue
			}
			if prop.Kind == KindArray {
				prop.Element = pendingElement
				pendingElement = nil
			}
			table.Properties = append(table.Properties, prop)

		default:
			if err := cs.SkipField(wire); err != nil {
				return nil, false, err
			}
		}
	}

	detectArrayTable(table)
	return table, isEnd, nil
}

func parseSendProp(cs *csdem.CodedStream) (*wireProp, error) {
	wp := &wireProp{}
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case propFieldType:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, err
			}
			wp.kind = Kind(v)
		case propFieldVarName:
			raw, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, err
			}
			wp.name = string(raw)
		case propFieldFlags:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, err
			}
			wp.flags = uint32(v)
		case propFieldPriority:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, err
			}
			wp.priority = int(v)
		case propFieldDTName:
			raw, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, err
			}
			wp.dtName = string(raw)
		case propFieldNumElements:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, err
			}
			wp.numElems = int(v)
		case propFieldLowValue:
			v, err := cs.ReadLittleEndian32()
			if err != nil {
				return nil, err
			}
			wp.low = math.Float32frombits(v)
		case propFieldHighValue:
			v, err := cs.ReadLittleEndian32()
			if err != nil {
				return nil, err
			}
			wp.high = math.Float32frombits(v)
		case propFieldNumBits:
			v, err := cs.ReadVarint64()
			if err != nil {
				return nil, err
			}
			wp.numBits = int(v)
		default:
			if err := cs.SkipField(wire); err != nil {
				return nil, err
			}
		}
	}
	return wp, nil
}

func wireToProperty(wp *wireProp) *Property {
	return &Property{
		Name:      wp.name,
		Kind:      wp.kind,
		Flags:     wp.flags,
		Priority:  wp.priority,
		NumBits:   wp.numBits,
		Low:       wp.low,
		High:      wp.high,
		Count:     wp.numElems,
		TableName: wp.dtName,
	}
}
