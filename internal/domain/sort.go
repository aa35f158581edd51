package domain

import (
	"slices"
	"strings"
)

type SortField string

const (
	SortByName     SortField = "name"
	SortByPosition SortField = "position"
	SortByHireDate SortField = "hireDate"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig is the column ordering of the list view. The zero value keeps
// the order the service returned.
type SortConfig struct {
	Field     SortField
	Direction SortDirection
}

// ParseSortConfig reads a sort from query values. Unknown fields yield the
// zero config; any direction other than desc means ascending.
func ParseSortConfig(field, direction string) SortConfig {
	f := SortField(field)
	switch f {
	case SortByName, SortByPosition, SortByHireDate:
	default:
		return SortConfig{}
	}
	if SortDirection(direction) == SortDesc {
		return SortConfig{Field: f, Direction: SortDesc}
	}
	return SortConfig{Field: f, Direction: SortAsc}
}

func (c SortConfig) IsZero() bool { return c.Field == "" }

// Toggle returns the config after a click on the header of field.
func (c SortConfig) Toggle(field SortField) SortConfig {
	if c.Field == field {
		if c.Direction == SortAsc {
			return SortConfig{Field: field, Direction: SortDesc}
		}
		return SortConfig{Field: field, Direction: SortAsc}
	}
	return SortConfig{Field: field, Direction: SortAsc}
}

// Arrow is the header decoration for field.
func (c SortConfig) Arrow(field SortField) string {
	if c.Field != field {
		return ""
	}
	if c.Direction == SortDesc {
		return " ▼"
	}
	return " ▲"
}

// SortEmployees returns a sorted copy of in. The input is never modified.
func SortEmployees(in []Employee, c SortConfig) []Employee {
	out := slices.Clone(in)
	if c.IsZero() {
		return out
	}
	cmp := compareBy(c.Field)
	slices.SortStableFunc(out, func(a, b Employee) int {
		if c.Direction == SortDesc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func compareBy(field SortField) func(a, b Employee) int {
	switch field {
	case SortByPosition:
		return func(a, b Employee) int { return strings.Compare(a.Position, b.Position) }
	case SortByHireDate:
		return func(a, b Employee) int { return a.HireDate.Compare(b.HireDate) }
	default:
		return func(a, b Employee) int { return strings.Compare(a.Name, b.Name) }
	}
}
