// Package prices provides a local ledger of product prices.
//
// A price observation is a Record: a product, an optional category, a price,
// the link where it was seen, and the time it was recorded. Records live in a
// single comma-separated file managed by a Store, in insertion order.
//
// The core functionalities include:
//   - Persistence: the Store reads files written in the current 5-column
//     layout as well as the legacy 4-column layout without a category, and
//     always writes the current layout back.
//   - Queries: stateless functions over loaded records, like FilterByCategory,
//     Cheapest, or JSONPath selection with Select.
//   - Exports: filtered snapshots in the store format or JSONL, that never
//     touch the store.
//
// Tracker ties these together behind the operations an interactive front-end
// needs, like the `pt` command-line tool.
package prices
