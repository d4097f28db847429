package entity

import "github.com/icza/csdem"

// indexRunTerminator is the sentinel value that ends an index run
// (spec.md §4.4.1): 0xFFF, the largest 12-bit payload, read as
// "no more indices" whichever width carried it.
const indexRunTerminator = 0xFFF

// decodeIndexRun reads the ordered list of prioritized indices touched
// by one entity update (spec.md §4.4.1).
func decodeIndexRun(b *csdem.BitDecoder) ([]int, error) {
	newWay, err := b.ReadBit()
	if err != nil {
		return nil, err
	}

	var indices []int
	cursor := -1
	for {
		v, err := readIndexDelta(b, newWay)
		if err != nil {
			return nil, err
		}
		if v == indexRunTerminator {
			return indices, nil
		}
		cursor = cursor + int(v) + 1
		indices = append(indices, cursor)
	}
}

func readIndexDelta(b *csdem.BitDecoder, newWay bool) (uint32, error) {
	if newWay {
		small, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if small {
			return 0, nil
		}
		literal, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if literal {
			return b.Read32(3)
		}
	}
	return b.ReadCompressedUnsigned16()
}
