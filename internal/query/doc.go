// Package query implements the state controller behind every contract list view.
//
// A Controller owns the current page, page size, multi-column sort and filters, and
// turns each user action into a Request for the data source. The API accepts one
// search predicate at a time, so SelectSearch picks exactly one active filter by a
// fixed priority.
//
// Every Request carries a generation number. Only the response to the latest
// generation is applied; responses to superseded requests are dropped, so a slow
// earlier response can never overwrite newer results.
//
// A Controller is not safe for concurrent use. Fetch only reads the request it is
// given, so it may run on another goroutine while the owner keeps handling events.
package query
