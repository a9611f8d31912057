// Package pagination provides paging and sorting for CLI list output.
//
//   - Params: --limit/--offset and --page/--page-size flags and validation
//   - Meta: page metadata for JSON output
//   - GameSorter: ordering of game lists by a named field
package pagination
