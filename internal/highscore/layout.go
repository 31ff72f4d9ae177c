// Package highscore keeps the top scores in a fixed byte layout on a
// non-volatile memory region.
//
// The region holds Entries consecutive 5-byte records:
//
//	[score_hi, score_lo, name0, name1, name2]
//
// The score is a big-endian uint16 and the name three ASCII uppercase
// letters. A first byte of 0xFF marks an erased, never initialized region.
package highscore

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// EntrySize is the size of one record in bytes.
	EntrySize = 5
	// NameLen is the number of letters in a name.
	NameLen = 3
	// DefaultEntries is the number of records on the device.
	DefaultEntries = 3
	// Erased is the value of a never-written NVM byte.
	Erased byte = 0xFF
	// MaxScore is the largest score a record can hold.
	MaxScore = 0xFFFF
	// DefaultName fills records of an initialized, empty board.
	DefaultName = "AAA"
)

// ErrInvalidName is returned for names that are not three uppercase letters.
var ErrInvalidName = errors.New("highscore: name must be 3 uppercase letters")

// Entry is one ranked score.
type Entry struct {
	Name  string
	Score uint16
}

// DefaultEntry is the record written into an erased region.
func DefaultEntry() Entry {
	return Entry{Name: DefaultName, Score: 0}
}

// ValidName reports whether name is exactly three ASCII letters A-Z.
func ValidName(name string) bool {
	if len(name) != NameLen {
		return false
	}
	for i := 0; i < NameLen; i++ {
		if name[i] < 'A' || name[i] > 'Z' {
			return false
		}
	}
	return true
}

// Encode lays entries out as consecutive records.
// Names are written byte for byte; callers validate them first.
func Encode(entries []Entry) []byte {
	buf := make([]byte, len(entries)*EntrySize)
	for i, e := range entries {
		rec := buf[i*EntrySize : (i+1)*EntrySize]
		binary.BigEndian.PutUint16(rec[0:2], e.Score)
		copy(rec[2:], e.Name)
	}
	return buf
}

// Decode parses consecutive records. The buffer length must be a multiple
// of EntrySize.
func Decode(buf []byte) ([]Entry, error) {
	if len(buf)%EntrySize != 0 {
		return nil, fmt.Errorf("highscore: image length %d is not a multiple of %d", len(buf), EntrySize)
	}
	entries := make([]Entry, 0, len(buf)/EntrySize)
	for off := 0; off < len(buf); off += EntrySize {
		rec := buf[off : off+EntrySize]
		entries = append(entries, Entry{
			Score: binary.BigEndian.Uint16(rec[0:2]),
			Name:  string(rec[2:EntrySize]),
		})
	}
	return entries, nil
}
