// Package match computes set-based reconciliations over two normalized name
// sets: the keys present on both sides, the keys only on side A, and the keys
// only on side B.
//
// The three partitions are disjoint by construction and together cover the
// union of both key sets: Matches ∪ OnlyA equals the keys of A, and
// Matches ∪ OnlyB equals the keys of B. Intersection cost is bounded by the
// smaller side since both sets are already hash-indexed by NameSet.
//
// Result keys are normalized; RepresentativeOriginal maps a key back to a
// displayable original spelling for reports and exports.
package match
