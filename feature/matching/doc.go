// Package matching orchestrates reconciliation runs: it resolves the filter
// identity, pulls or reuses the CRM organization side, reconciles it against
// the pasted lead names, and appends the summary to the history table.
//
// Summaries are cached without expiry; a stale result is replaced only by an
// explicit force refresh. Runs for the same filter identity are mutually
// exclusive, and concurrent cold reads collapse into a single computation.
// Detail lists (matched / CRM-only / leads-only) can be exported to object
// storage as CSV files.
package matching
