// Package keylock provides a non-blocking keyed lock table.
//
// It serializes workflows per filter identity: at most one matching run may
// hold a given filter's lock at a time, while runs for different filters
// proceed in parallel. Acquisition never blocks — a caller that loses the race
// is told so immediately and decides whether to retry.
package keylock
