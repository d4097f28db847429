package gameevent

import "github.com/icza/csdem"

// Wire field tags for the hand-rolled CSVCMsg_GameEventList shape. Own
// numbering grounded in spec.md §4.6's field list, not a transcription
// of Valve's real .proto numbers (no generated descriptor exists in
// the example pack).
const (
	listFieldDescriptors = 1

	descriptorFieldEventID = 1
	descriptorFieldName    = 2
	descriptorFieldKeys    = 3

	keyFieldName = 1
	keyFieldType = 2
)

// ParseGameEventList decodes a CSVCMsg_GameEventList-shaped message,
// returning one GameEventType per descriptor, in wire order (spec.md
// §4.6: "Named schema from CSVCMsg_GameEventList").
func ParseGameEventList(cs *csdem.CodedStream) ([]*GameEventType, error) {
	var types []*GameEventType
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, err
		}
		if field != listFieldDescriptors {
			if err := cs.SkipField(wire); err != nil {
				return nil, err
			}
			continue
		}
		sub, err := cs.PushLimitedSubstream()
		if err != nil {
			return nil, err
		}
		gt, err := parseDescriptor(sub)
		if err != nil {
			return nil, err
		}
		types = append(types, gt)
	}
	return types, nil
}

func parseDescriptor(cs *csdem.CodedStream) (*GameEventType, error) {
	gt := &GameEventType{}
	b := csdem.NewBuilder("")
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case descriptorFieldEventID:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, err
			}
			gt.ID = int(v)
		case descriptorFieldName:
			name, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, err
			}
			gt.Name = string(name)
		case descriptorFieldKeys:
			sub, err := cs.PushLimitedSubstream()
			if err != nil {
				return nil, err
			}
			m, err := parseKey(sub)
			if err != nil {
				return nil, err
			}
			vt, err := m.Kind.valueType()
			if err != nil {
				return nil, err
			}
			b.Member(m.Name, vt)
			gt.Members = append(gt.Members, m)
		default:
			if err := cs.SkipField(wire); err != nil {
				return nil, err
			}
		}
	}
	gt.Object = b.Build()
	return gt, nil
}

func parseKey(cs *csdem.CodedStream) (Member, error) {
	var m Member
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return Member{}, err
		}
		switch field {
		case keyFieldName:
			name, err := cs.ReadLengthDelimited()
			if err != nil {
				return Member{}, err
			}
			m.Name = string(name)
		case keyFieldType:
			v, err := cs.ReadVarint32()
			if err != nil {
				return Member{}, err
			}
			m.Kind = Kind(v)
		default:
			if err := cs.SkipField(wire); err != nil {
				return Member{}, err
			}
		}
	}
	return m, nil
}
