// Package pagination holds the paging and sorting primitives shared by every list view:
//   - page-size validation against the fixed set of sizes the API accepts
//   - SortSpec: the ordered multi-column sort with its asc → desc → off toggle cycle
//   - Window: the bounded set of page numbers and ellipses shown by pagination controls
//   - PaginationMeta: page metadata attached to JSON output
//
// Pages are 0-based everywhere except in Window output and PaginationMeta, which are
// what users see and are therefore 1-based.
package pagination
