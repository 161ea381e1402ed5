package match

import (
	"sort"

	"crm-matcher/core/normalize"
)

// Result holds the three partitions of a reconciliation, as sorted slices of
// normalized keys, plus references back to the input sets for original lookup.
type Result struct {
	// Matches are keys present in both sides.
	Matches []string `json:"matches"`
	// OnlyA are keys present only in side A.
	OnlyA []string `json:"only_a"`
	// OnlyB are keys present only in side B.
	OnlyB []string `json:"only_b"`

	sideA *normalize.NameSet
	sideB *normalize.NameSet
}

// Summary provides the aggregate counts and percentages for a result.
type Summary struct {
	// SideATotal counts every accepted side-A line, duplicates included.
	SideATotal int `json:"side_a_total"`
	// SideAUnique counts distinct normalized side-A keys.
	SideAUnique int `json:"side_a_unique"`
	// SideBTotal counts every accepted side-B line, duplicates included.
	SideBTotal int `json:"side_b_total"`
	// SideBUnique counts distinct normalized side-B keys.
	SideBUnique int `json:"side_b_unique"`
	// MatchCount counts keys present on both sides.
	MatchCount int `json:"match_count"`
	// OnlyACount counts keys present only on side A.
	OnlyACount int `json:"only_a_count"`
	// OnlyBCount counts keys present only on side B.
	OnlyBCount int `json:"only_b_count"`
	// MatchPercentage is MatchCount over SideAUnique, in percent. Zero when side A is empty.
	MatchPercentage float64 `json:"match_percentage"`
	// SideBCoverage is MatchCount over SideBUnique, in percent. Zero when side B is empty.
	SideBCoverage float64 `json:"side_b_coverage"`
}

// Reconcile partitions the keys of two name sets into matches, only-A and only-B.
// Membership tests run against the larger side's hash index while iterating the
// smaller one, bounding intersection work by the smaller set. The result is
// independent of input order: swapping the arguments swaps OnlyA and OnlyB and
// leaves Matches unchanged.
func Reconcile(a, b *normalize.NameSet) *Result {
	small, large := a, b
	if len(b.Entries) < len(a.Entries) {
		small, large = b, a
	}

	matchSet := make(map[string]struct{})
	for key := range small.Entries {
		if large.Contains(key) {
			matchSet[key] = struct{}{}
		}
	}

	r := &Result{
		Matches: make([]string, 0, len(matchSet)),
		OnlyA:   make([]string, 0, len(a.Entries)-len(matchSet)),
		OnlyB:   make([]string, 0, len(b.Entries)-len(matchSet)),
		sideA:   a,
		sideB:   b,
	}

	for key := range matchSet {
		r.Matches = append(r.Matches, key)
	}
	for key := range a.Entries {
		if _, ok := matchSet[key]; !ok {
			r.OnlyA = append(r.OnlyA, key)
		}
	}
	for key := range b.Entries {
		if _, ok := matchSet[key]; !ok {
			r.OnlyB = append(r.OnlyB, key)
		}
	}

	// Sort for deterministic output
	sort.Strings(r.Matches)
	sort.Strings(r.OnlyA)
	sort.Strings(r.OnlyB)

	return r
}

// RepresentativeOriginal resolves a result key back to a displayable string:
// the first original recorded on side A, else side B, else the key itself.
func (r *Result) RepresentativeOriginal(key string) string {
	if r.sideA != nil {
		if orig := r.sideA.FirstOriginal(key); orig != "" {
			return orig
		}
	}
	if r.sideB != nil {
		if orig := r.sideB.FirstOriginal(key); orig != "" {
			return orig
		}
	}
	return key
}

// Summarize computes aggregate counts and percentages for the result.
func (r *Result) Summarize() Summary {
	s := Summary{
		MatchCount: len(r.Matches),
		OnlyACount: len(r.OnlyA),
		OnlyBCount: len(r.OnlyB),
	}
	if r.sideA != nil {
		s.SideATotal = r.sideA.TotalCount
		s.SideAUnique = r.sideA.UniqueCount()
	}
	if r.sideB != nil {
		s.SideBTotal = r.sideB.TotalCount
		s.SideBUnique = r.sideB.UniqueCount()
	}
	if s.SideAUnique > 0 {
		s.MatchPercentage = float64(s.MatchCount) / float64(s.SideAUnique) * 100
	}
	if s.SideBUnique > 0 {
		s.SideBCoverage = float64(s.MatchCount) / float64(s.SideBUnique) * 100
	}
	return s
}
