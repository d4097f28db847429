package stringtable

import (
	"strconv"

	"github.com/icza/csdem"
)

const (
	historyCapacity  = 32
	historyIndexBits = 5
	prefixLengthBits = 5
	dataLengthBits   = 14
)

// historyRing is the last-32-strings ring buffer populate maintains
// while decoding one blob (spec.md §4.5.1, `original_source/csgopp`'s
// `Ring<std::string_view, 32>`). It is rebuilt fresh for every call:
// the ring only needs to resolve substring references within the
// entries this one populate call decodes.
type historyRing struct {
	buf []string
}

func (r *historyRing) push(s string) {
	r.buf = append(r.buf, s)
	if len(r.buf) > historyCapacity {
		r.buf = r.buf[1:]
	}
}

func (r *historyRing) at(index int) (string, error) {
	if index < 0 || index >= len(r.buf) {
		return "", csdem.NewGameError("stringtable: history index %d out of range (have %d entries)", index, len(r.buf))
	}
	return r.buf[index], nil
}

// indexBits returns ceil(log2(capacity)): the width of the auto_index
// reload field (spec.md §4.5.1 step 1).
func indexBits(capacity int) int {
	bits := 0
	for (1 << uint(bits)) < capacity {
		bits++
	}
	return bits
}

// UserInfoSink receives (index, data) for every entry decoded into the
// "userinfo" table (spec.md §4.5.1 step 6); the user package binds this
// to its own registry.
type UserInfoSink func(index int, data []byte) error

// Populate decodes count entries off b into t, per spec.md §4.5.1. It is
// used identically for table creation (count = num_entries) and table
// update (count = num_changed_entries): update is a no-op under a
// zero count, satisfying spec.md §8's idempotency invariant.
func (t *StringTable) Populate(b *csdem.BitDecoder, count int, onUserInfo UserInfoSink) error {
	verify, err := b.ReadBit()
	if err != nil {
		return err
	}
	if verify {
		return csdem.NewGameError("stringtable: verification bit set decoding %q", t.Name)
	}

	var history historyRing
	bits := indexBits(t.Capacity)
	autoIndex := 0

	for i := 0; i < count; i++ {
		useAuto, err := b.ReadBit()
		if err != nil {
			return err
		}
		if !useAuto {
			v, err := b.Read32(bits)
			if err != nil {
				return err
			}
			autoIndex = int(v)
		}

		entry := t.entryAt(autoIndex)

		hasString, err := b.ReadBit()
		if err != nil {
			return err
		}
		if hasString {
			entry.Name = ""
			appendExisting, err := b.ReadBit()
			if err != nil {
				return err
			}
			if appendExisting {
				histIdx, err := b.Read32(historyIndexBits)
				if err != nil {
					return err
				}
				prefixLen, err := b.Read32(prefixLengthBits)
				if err != nil {
					return err
				}
				prefix, err := history.at(int(histIdx))
				if err != nil {
					return err
				}
				n := int(prefixLen)
				if n > len(prefix) {
					n = len(prefix)
				}
				entry.Name = prefix[:n]
			}
			suffix, err := b.ReadString()
			if err != nil {
				return err
			}
			entry.Name += suffix
		}
		history.push(entry.Name)

		hasData, err := b.ReadBit()
		if err != nil {
			return err
		}
		if hasData {
			if t.DataFixed {
				if t.DataSizeBits > 8 {
					return csdem.NewGameError("stringtable: fixed data_size_bits=%d exceeds 8", t.DataSizeBits)
				}
				v, err := b.Read32(t.DataSizeBits)
				if err != nil {
					return err
				}
				entry.Data = []byte{byte(v)}
			} else {
				size, err := b.Read32(dataLengthBits)
				if err != nil {
					return err
				}
				data, err := b.ReadUnalignedBytes(int(size))
				if err != nil {
					return err
				}
				entry.Data = data
			}
		}

		if t.Name == "userinfo" && onUserInfo != nil {
			idx, convErr := strconv.Atoi(entry.Name)
			if convErr != nil {
				return csdem.NewGameError("stringtable: userinfo entry name %q is not a decimal index: %v", entry.Name, convErr)
			}
			if err := onUserInfo(idx, entry.Data); err != nil {
				return err
			}
		}

		autoIndex++
	}
	return nil
}
