package services

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MaxListRows caps every list query.
	MaxListRows = 200

	// DefaultRentMax stands in for "no upper bound" on the rent range.
	DefaultRentMax = 9e12
)

// PropertyFilter is an optional-field query descriptor. The zero value
// matches every property.
//
// Values are expected in storage vocabulary (e.g. "occupied", "2BHK");
// controllers translate UI labels before building the filter.
type PropertyFilter struct {
	Search             string   `json:"search"`
	BHKTypes           []string `json:"bhkTypes"`
	RentMin            *float64 `json:"rentMin"`
	RentMax            *float64 `json:"rentMax"`
	Location           string   `json:"location"`
	AvailabilityStatus string   `json:"availability_status"`
}

// likeEscaper makes the search term match literally inside LIKE. '!' is the
// escape character because backslash is itself an escape in MySQL string
// literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Predicate is a conjunction of SQL fragments plus the positional values
// for their placeholders.
type Predicate struct {
	Clauses []string
	Args    []interface{}
}

// SQL joins the clauses with AND.
func (p Predicate) SQL() string {
	return strings.Join(p.Clauses, " AND ")
}

func (p *Predicate) add(clause string, args ...interface{}) {
	p.Clauses = append(p.Clauses, clause)
	p.Args = append(p.Args, args...)
}

// RentRange returns the effective bounds, applying defaults.
func (f PropertyFilter) RentRange() (float64, float64) {
	min, max := 0.0, DefaultRentMax
	if f.RentMin != nil {
		min = *f.RentMin
	}
	if f.RentMax != nil {
		max = *f.RentMax
	}
	return min, max
}

// Validate rejects rent ranges that can never match.
func (f PropertyFilter) Validate() error {
	min, max := f.RentRange()
	for _, v := range []float64{min, max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: rent bounds must be finite numbers", ErrInvalidFilter)
		}
	}
	if min < 0 || max < 0 {
		return fmt.Errorf("%w: rent bounds must be non-negative", ErrInvalidFilter)
	}
	if min > max {
		return fmt.Errorf("%w: rent_min %.2f is greater than rent_max %.2f", ErrInvalidFilter, min, max)
	}
	return nil
}

// BuildPredicate turns the filter into a parameterized WHERE predicate.
// The rent range is always present; every other criterion only appears
// when set. String comparisons are case-insensitive. Arguments are lowered
// with Unicode rules, but the column side uses the database LOWER(): MySQL
// and Postgres fold non-ASCII letters, SQLite folds ASCII only, so on SQLite
// "ZÜRICH" finds "Zürich" while "züRICH" does not find "ZÜRICH".
func BuildPredicate(f PropertyFilter) Predicate {
	var p Predicate

	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		p.add("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(location) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", like, like, like)
	}

	min, max := f.RentRange()
	p.add("rent BETWEEN ? AND ?", min, max)

	if status := strings.TrimSpace(f.AvailabilityStatus); status != "" {
		p.add("LOWER(availability_status) = ?", strings.ToLower(status))
	}

	if location := strings.TrimSpace(f.Location); location != "" {
		p.add("LOWER(location) = ?", strings.ToLower(location))
	}

	bhk := make([]interface{}, 0, len(f.BHKTypes))
	for _, b := range f.BHKTypes {
		if b = strings.TrimSpace(b); b != "" {
			bhk = append(bhk, strings.ToUpper(b))
		}
	}
	if len(bhk) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(bhk)), ", ")
		p.add("UPPER(bhk_type) IN ("+placeholders+")", bhk...)
	}

	return p
}
