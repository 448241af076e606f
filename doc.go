// Package sheetpulse turns loosely structured spreadsheet text into typed
// financial records and computes derived analytics on them.
//
// The package is the core of a personal finance dashboard. Collaborators
// fetch the raw tab contents (assets, investments, trades, income and
// expense grids, net-worth log, ...) and hand them over as plain delimited
// text; sheetpulse normalizes the mess (currency symbols, parenthesized
// negatives, half a dozen date formats, misnamed columns) into immutable
// value records.
//
// The core functionalities include:
//   - Tokenizing: splitting delimited text into rows while respecting
//     quoting, and sanitizing numbers and dates into canonical forms.
//   - Header Resolution: locating the header row of a user-edited tab and
//     fuzzy-matching column names to semantic fields.
//   - Record Factories: one constructor per domain type (asset, holding,
//     trade, subscription, account, debt, net-worth entry), each rejecting
//     rows that carry no real data.
//   - Grid Ledger Parsing: reading month-by-category cross-tab sheets into
//     a category/subcategory/monthly-values tree.
//   - Portfolio Reconciliation: merging sheet-declared holdings with
//     positions implied by trade history and cash implied by accounts.
//   - Temporal Aggregation: dimensional breakdowns, period-over-period
//     variance and Simple-Dietz attribution over a focus window.
//
// The whole package is synchronous and pure: no I/O, no retries, no hidden
// state. Malformed cells never produce errors, they degrade to typed
// defaults so that presentation code never has to guard a call into the
// core. The only way to get an empty result is to feed it empty input.
package sheetpulse
