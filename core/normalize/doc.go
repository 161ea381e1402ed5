// Package normalize turns raw organization/company name lines into canonical
// comparison keys and builds hash-indexed name sets over them.
//
// Normalization is deterministic and idempotent: applying it twice yields the
// same key. The steps are fixed NBSP replacement plus configurable trimming
// and case folding. Lines that normalize to the empty string are dropped
// before they can reach any count or set.
//
// # NameSet
//
// A NameSet records the distinct normalized keys of its input along with every
// original spelling in first-seen order, so result keys can always be mapped
// back to a displayable original. TotalCount includes duplicates; UniqueCount
// does not.
package normalize
