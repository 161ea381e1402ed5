// Package leads extracts raw company-name sequences from comparison-side
// inputs: pasted text blocks, CSV lead exports, and XLSX workbooks.
//
// All three sources reduce to the same thing the matcher needs — a sequence of
// raw name strings. No normalization happens here; blank and duplicate
// handling belongs to core/normalize so every source is counted identically.
package leads
