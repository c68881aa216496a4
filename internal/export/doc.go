// Package export renders a result page as a CSV or PDF document.
package export
