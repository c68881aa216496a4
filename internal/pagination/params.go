package pagination

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Page size limits and defaults.
const (
	DefaultPageSize = 10
	FirstPage       = 0
)

// AllowedPageSizes are the only page sizes the list views offer.
//
//nolint:gochecknoglobals // Fixed configuration table.
var allowedPageSizes = []int{10, 25, 50, 100}

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page size is not one of the allowed sizes")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'updatedAt:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// AllowedPageSizes returns a copy of the allowed page sizes in ascending order.
func AllowedPageSizes() []int {
	return slices.Clone(allowedPageSizes)
}

// IsAllowedPageSize reports whether n is one of the allowed page sizes.
func IsAllowedPageSize(n int) bool {
	return slices.Contains(allowedPageSizes, n)
}

// ValidatePageSize returns ErrInvalidPageSize when n is not allowed.
func ValidatePageSize(n int) error {
	if !IsAllowedPageSize(n) {
		return fmt.Errorf("%w: got %d, want one of %v", ErrInvalidPageSize, n, allowedPageSizes)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort flag (field:order).
const sortPartsMax = 2

// ParseSort parses a sort flag in the format "field" or "field:order".
// A bare field sorts ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field string, dir Direction, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		dir = Ascending
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		dir, err = ParseDirection(parts[1])
		if err != nil {
			return "", "", err
		}
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	return field, dir, nil
}

// ParseDirection parses "asc" or "desc", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// TotalPages calculates the number of pages needed for totalItems at pageSize.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}
