package highscore

import (
	"errors"
	"fmt"
	"slices"
)

// ErrWrite wraps every failure to persist the board.
var ErrWrite = errors.New("highscore: write failed")

// ErrCorrupt is returned when an initialized region does not hold a
// board sorted best first.
var ErrCorrupt = errors.New("highscore: board not sorted")

// Store ranks the best scores on a Region.
// The board is read once at Open and kept in memory; every successful
// Save rewrites all records in a single write.
type Store struct {
	region  Region
	entries int
	board   []Entry
}

// Open initializes the store on region with the given number of records.
// An erased region (first byte 0xFF) is filled with default records
// before anything is read.
func Open(region Region, entries int) (*Store, error) {
	if entries <= 0 {
		entries = DefaultEntries
	}
	s := &Store{region: region, entries: entries}

	first := make([]byte, 1)
	if _, err := region.ReadAt(first, 0); err != nil {
		return nil, fmt.Errorf("highscore: cannot read region: %w", err)
	}
	if first[0] == Erased {
		return Format(region, entries)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Format writes default records over the region regardless of what it
// holds. It is the way back from ErrCorrupt.
func Format(region Region, entries int) (*Store, error) {
	if entries <= 0 {
		entries = DefaultEntries
	}
	s := &Store{region: region, entries: entries}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Entries returns the number of records the store keeps.
func (s *Store) Entries() int {
	return s.entries
}

// Reload re-reads the board from the region.
func (s *Store) Reload() error {
	buf := make([]byte, s.entries*EntrySize)
	if _, err := s.region.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("highscore: cannot read region: %w", err)
	}
	board, err := Decode(buf)
	if err != nil {
		return err
	}
	descending := func(a, b Entry) int { return int(b.Score) - int(a.Score) }
	if !slices.IsSortedFunc(board, descending) {
		return fmt.Errorf("%w: %v", ErrCorrupt, board)
	}
	s.board = board
	return nil
}

// Scores returns the board in storage order, best first.
func (s *Store) Scores() []Entry {
	return slices.Clone(s.board)
}

// Lowest returns the score of the last record.
func (s *Store) Lowest() uint16 {
	return s.board[len(s.board)-1].Score
}

// IsHighScore reports whether score would enter the board, which
// requires beating the lowest record strictly.
func (s *Store) IsHighScore(score int) bool {
	return score > int(s.Lowest())
}

// Save inserts a score into the board. The candidate goes after existing
// records with the same score, the board is cut to size and every record
// is rewritten with one write. Scores are clamped to 0..65535.
// On failure the in-memory board keeps its previous contents.
func (s *Store) Save(score int, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	next := append(slices.Clone(s.board), Entry{Name: name, Score: clampScore(score)})
	slices.SortStableFunc(next, func(a, b Entry) int {
		return int(b.Score) - int(a.Score)
	})
	next = next[:s.entries]

	if err := s.write(next); err != nil {
		return err
	}
	s.board = next
	return nil
}

// Reset rewrites every record with the default entry.
func (s *Store) Reset() error {
	board := make([]Entry, s.entries)
	for i := range board {
		board[i] = DefaultEntry()
	}
	if err := s.write(board); err != nil {
		return err
	}
	s.board = board
	return nil
}

// write encodes the full board into a scratch buffer and writes it in one pass.
func (s *Store) write(board []Entry) error {
	img := Encode(board)
	n, err := s.region.WriteAt(img, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if n != len(img) {
		return fmt.Errorf("%w: short write %d of %d bytes", ErrWrite, n, len(img))
	}
	return nil
}

func clampScore(score int) uint16 {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return uint16(score)
}
