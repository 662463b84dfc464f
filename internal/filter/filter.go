// Package filter validates the job listing filter controls: region, sort
// selection, and the optional salary limit pair.
package filter

import (
	"fmt"
	"strings"

	"github.com/riya-n/step204-2020/internal/config"
)

// SortField is the closed set of fields listings can be sorted by. Only
// salary is supported so far.
type SortField string

const SortFieldSalary SortField = "SALARY"

// SortOrder is the sort direction as the backend expects it.
type SortOrder string

const (
	OrderAscending  SortOrder = "ASCENDING"
	OrderDescending SortOrder = "DESCENDING"
)

// SortKey is a parsed sort selection.
type SortKey struct {
	Field SortField
	Order SortOrder
}

// ParseSortKey parses a select-control value of the form <FIELD>_<ORDER>,
// e.g. "SALARY_ASCENDING". Unknown fields and orders are rejected.
func ParseSortKey(s string) (SortKey, error) {
	field, order, ok := strings.Cut(s, "_")
	if !ok {
		return SortKey{}, fmt.Errorf("malformed sort key %q", s)
	}

	if SortField(field) != SortFieldSalary {
		return SortKey{}, fmt.Errorf("unsupported sort field %q", field)
	}

	switch SortOrder(order) {
	case OrderAscending, OrderDescending:
		return SortKey{Field: SortFieldSalary, Order: SortOrder(order)}, nil
	}
	return SortKey{}, fmt.Errorf("unknown sort order %q", order)
}

// Field identifies a filter input control, used to mark offending inputs
// with the error visual state.
type Field int

const (
	FieldMinLimit Field = iota
	FieldMaxLimit
)

func (f Field) String() string {
	switch f {
	case FieldMinLimit:
		return "filter-min-limit"
	case FieldMaxLimit:
		return "filter-max-limit"
	}
	return "unknown"
}

// Params is the filter state read from the page controls. A nil limit means
// the input was left empty; empty limits are never range-checked.
type Params struct {
	Region   string
	SortKey  string
	MinLimit *int64
	MaxLimit *int64
}

// Result reports a validation outcome. When Valid is false and Internal is
// nil, Flagged names the inputs to mark and to derive the user-facing
// message from. Internal carries programmer/UI errors (empty region or sort
// selection) which are logged, never surfaced. When Valid is true the
// caller clears the error state from both limit fields.
type Result struct {
	Valid    bool
	Flagged  []Field
	Internal error
}

// Validate checks the filter fields ahead of a listings query.
func Validate(p Params) Result {
	if p.Region == "" || p.SortKey == "" {
		return Result{Internal: fmt.Errorf("region or sorting was empty")}
	}

	if p.MinLimit != nil && outOfRange(*p.MinLimit) {
		return Result{Flagged: []Field{FieldMinLimit}}
	}

	if p.MaxLimit != nil && outOfRange(*p.MaxLimit) {
		return Result{Flagged: []Field{FieldMaxLimit}}
	}

	if p.MinLimit != nil && p.MaxLimit != nil && *p.MaxLimit < *p.MinLimit {
		return Result{Flagged: []Field{FieldMaxLimit}}
	}

	return Result{Valid: true}
}

func outOfRange(v int64) bool {
	return v < 0 || v > config.MaxFilterLimit
}

// Limits substitutes the defaults for unset limits: 0 for the lower bound
// and the backend's max int for the upper. Call only after Validate passes.
func (p Params) Limits() (minLimit, maxLimit int64) {
	minLimit = 0
	maxLimit = config.MaxFilterLimit
	if p.MinLimit != nil {
		minLimit = *p.MinLimit
	}
	if p.MaxLimit != nil {
		maxLimit = *p.MaxLimit
	}
	return minLimit, maxLimit
}
