// Package cartera implements the valuation and historical-analytics
// engine for a multi-currency personal investment portfolio.
//
// The engine is a pure computation layer. It consumes a normalized feed
// of holdings (cash wallets, fixed-term deposits, cedears, crypto
// assets, fund shares), a table of exchange-rate quotes, user fx
// overrides, and a time-ordered series of previously captured
// snapshots, and it produces display-ready value objects:
//
//   - Aggregate converts every holding into a paired local/counter
//     currency value and rolls it up item → provider → rubro →
//     portfolio, with composition KPIs and unrealized P/L.
//   - EffectiveAnnualRate, Project and ProjectAnnual turn a nominal
//     annual rate into accrual projections for yield-bearing holdings.
//   - ComputeDrivers diffs the current valuation against a snapshot
//     baseline for a requested window and decomposes the change into
//     interest, fees and mark-to-market variation.
//   - Returns, AnnualizedVolatility, MaxDrawdown and SharpeRatio derive
//     risk statistics from a snapshot value series.
//
// The engine performs no I/O. Persistence of snapshots, overrides and
// feeds lives behind small interfaces with JSONL file implementations
// in store.go, used by the `valo` command-line tool.
package cartera
