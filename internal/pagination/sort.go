package pagination

import (
	"slices"
	"strings"
)

// Direction is a sort direction as spelled on the wire.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// MultiSortSeparator joins sort columns in a query string. The API takes one
// repeated "sort" parameter per column.
const MultiSortSeparator = "&sort="

// SortColumn is one entry of a multi-column sort.
type SortColumn struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// String renders the column in wire format, "field,direction".
func (c SortColumn) String() string {
	return c.Field + "," + string(c.Direction)
}

// SortSpec is an ordered multi-column sort. Earlier columns take precedence; the
// order is the order in which columns were first toggled on.
// The zero value is an empty sort.
type SortSpec struct {
	columns []SortColumn
}

// NewSortSpec builds a spec from columns, keeping only the first occurrence of a field.
func NewSortSpec(columns ...SortColumn) SortSpec {
	var s SortSpec
	for _, c := range columns {
		if c.Field == "" || s.index(c.Field) >= 0 {
			continue
		}
		s.columns = append(s.columns, c)
	}
	return s
}

// Toggle advances field through its three-state cycle and returns the new spec:
// absent → ascending (appended), ascending → descending (in place), descending → removed.
// Other columns keep their direction and relative order.
func (s SortSpec) Toggle(field string) SortSpec {
	cols := slices.Clone(s.columns)
	i := s.index(field)
	switch {
	case i < 0:
		cols = append(cols, SortColumn{Field: field, Direction: Ascending})
	case cols[i].Direction == Ascending:
		cols[i].Direction = Descending
	default:
		cols = slices.Delete(cols, i, i+1)
	}
	return SortSpec{columns: cols}
}

// Direction returns the direction of field and whether it is sorted at all.
func (s SortSpec) Direction(field string) (Direction, bool) {
	if i := s.index(field); i >= 0 {
		return s.columns[i].Direction, true
	}
	return "", false
}

// Columns returns a copy of the columns in precedence order.
func (s SortSpec) Columns() []SortColumn {
	return slices.Clone(s.columns)
}

// Len is the number of sorted columns.
func (s SortSpec) Len() int {
	return len(s.columns)
}

// IsEmpty reports whether no column is sorted.
func (s SortSpec) IsEmpty() bool {
	return len(s.columns) == 0
}

// Values returns each column in wire format, one per "sort" parameter.
func (s SortSpec) Values() []string {
	values := make([]string, 0, len(s.columns))
	for _, c := range s.columns {
		values = append(values, c.String())
	}
	return values
}

// QueryString renders the spec as "field,dir&sort=field,dir". An empty spec renders "".
func (s SortSpec) QueryString() string {
	return strings.Join(s.Values(), MultiSortSeparator)
}

func (s SortSpec) index(field string) int {
	return slices.IndexFunc(s.columns, func(c SortColumn) bool { return c.Field == field })
}
