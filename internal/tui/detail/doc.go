// Package detail provides the fetch lifecycle behind TUI detail views.
//
// A Loader fetches one value by key and tracks which request is current:
//   - A new key supersedes the in-flight request and cancels its context
//   - Every request carries a generation token; results with an old token are dropped
//   - Failures are retained until the next load, and retry is manual ('r' key)
//   - Dispose cancels the in-flight request and makes later results no-ops
//
// Results arrive as Bubble Tea messages, so a Loader is only touched from the
// model's Update loop and needs no locking.
package detail
