// Package shisan provides the types and functions for tracking a personal
// investment portfolio. It is local-first: everything lives in plain JSONL
// files the user owns and can inspect, and every report is recomputed from
// them.
//
// The core functionalities include:
//   - Ledger Management: recording purchase lots, sales and dividends in an
//     append-only record, with per-lot quantity netting.
//   - Consolidation: grouping lots into holdings by name or by instrument
//     and computing the weighted-average acquisition cost of each holding.
//   - Valuation: valuing holdings in the JPY reporting currency through an
//     exchange-rate table, keeping unrealized and realized profit apart.
//   - Snapshots and Comparison: daily valuation snapshots and day, week,
//     month, and year-to-date performance measured against them.
//   - Tagging: free-form tags over holdings with per-tag value aggregation.
//   - Data Persistence: encoding and decoding of all records to and from
//     human-readable, version-controllable JSONL files.
//
// This package is the foundational logic for the `shisan` command-line
// tool.
package shisan
