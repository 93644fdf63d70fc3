// Package report renders scan results as Markdown.
//
// # Layout
//
// Every report has the same section order:
//
//  1. Title
//  2. Generation timestamp and run parameters
//  3. Source description
//  4. Fetch errors (omitted when there are none)
//  5. Per-source requirements, in enumeration order
//  6. Aggregate union of all extensions
//  7. Frequency table sorted by extension name
//
// The per-source section comes in two styles. [StyleBlocks] gives each
// source its own heading and suits a handful of frameworks. [StyleList]
// writes one bullet per source and suits a top-100 package scan.
//
// [Render] is deterministic: identical input produces identical output. The
// only line that changes between runs is the timestamp, and it comes from
// [Meta.Generated].
package report
