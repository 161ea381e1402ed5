package normalize

import "strings"

// Options controls how raw name lines are canonicalized.
type Options struct {
	// Trim removes leading and trailing whitespace.
	Trim bool
	// CaseInsensitive lower-cases the whole line so comparison ignores case.
	CaseInsensitive bool
}

// DefaultOptions matches the behavior of the CRM export pipeline:
// trimmed, case-insensitive comparison keys.
var DefaultOptions = Options{Trim: true, CaseInsensitive: true}

// Line canonicalizes a single raw name into a comparison key.
// Non-breaking spaces (U+00A0) are always replaced with ordinary spaces;
// pasted spreadsheet data carries them invisibly and they would otherwise
// produce false mismatches. A line that canonicalizes to "" is blank and
// must be excluded from all downstream sets.
func Line(raw string, opts Options) string {
	s := strings.ReplaceAll(raw, " ", " ")
	if opts.Trim {
		s = strings.TrimSpace(s)
	}
	if opts.CaseInsensitive {
		s = strings.ToLower(s)
	}
	return s
}

// Entry groups every original spelling seen for one normalized key.
type Entry struct {
	// Key is the normalized comparison key. Never empty.
	Key string
	// Originals holds the raw lines that produced this key, in first-seen order.
	// Never empty for an entry that exists.
	Originals []string
}

// NameSet is a hash-indexed set of normalized names.
type NameSet struct {
	// Entries maps normalized key to its entry.
	Entries map[string]*Entry
	// TotalCount counts every accepted (non-blank) input line, duplicates included.
	TotalCount int
	// keys preserves first-seen insertion order for deterministic iteration.
	keys []string
}

// NewNameSet returns an empty set.
func NewNameSet() *NameSet {
	return &NameSet{Entries: make(map[string]*Entry)}
}

// Add normalizes raw and records it. Blank lines are discarded and do not
// contribute to any count.
func (s *NameSet) Add(raw string, opts Options) {
	key := Line(raw, opts)
	if key == "" {
		return
	}
	s.TotalCount++
	if e, ok := s.Entries[key]; ok {
		e.Originals = append(e.Originals, raw)
		return
	}
	s.Entries[key] = &Entry{Key: key, Originals: []string{raw}}
	s.keys = append(s.keys, key)
}

// UniqueCount reports the number of distinct normalized keys.
func (s *NameSet) UniqueCount() int {
	return len(s.Entries)
}

// Contains reports whether key is in the set.
func (s *NameSet) Contains(key string) bool {
	_, ok := s.Entries[key]
	return ok
}

// FirstOriginal returns the first recorded original for key, or "" if absent.
func (s *NameSet) FirstOriginal(key string) string {
	if e, ok := s.Entries[key]; ok {
		return e.Originals[0]
	}
	return ""
}

// Keys returns the normalized keys in first-seen order.
func (s *NameSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// BuildNameSet canonicalizes lines into a NameSet.
func BuildNameSet(lines []string, opts Options) *NameSet {
	s := NewNameSet()
	for _, line := range lines {
		s.Add(line, opts)
	}
	return s
}
