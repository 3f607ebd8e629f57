// Package filter builds the predicates used to select close approaches:
// comparisons on approach attributes (date, distance, velocity) and on the
// attributes of the linked body (diameter, hazard flag, designation).
//
// Filters that inspect the linked body never match an unlinked approach.
package filter

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/papapumpkin/neo/internal/database"
	"github.com/papapumpkin/neo/internal/model"
)

// Op is a comparison operator.
type Op int

// Comparison operators.
const (
	OpEq Op = iota // value == threshold
	OpLE           // value <= threshold
	OpGE           // value >= threshold
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpLE:
		return "<="
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

func (o Op) holds(c int) bool {
	switch o {
	case OpEq:
		return c == 0
	case OpLE:
		return c <= 0
	case OpGE:
		return c >= 0
	default:
		return false
	}
}

// Attribute compares one attribute of an approach against a fixed value.
// The getter returns ok=false when the attribute is unavailable (unlinked
// approach, unknown diameter), in which case the filter does not match.
type Attribute[T any] struct {
	name    string
	op      Op
	value   T
	get     func(*model.Approach) (T, bool)
	compare func(a, b T) int
	format  func(T) string
}

var (
	_ database.Predicate = (*Attribute[float64])(nil)
	_ database.Predicate = Hazard(false)
)

// Match reports whether the approach's attribute satisfies the comparison.
func (f *Attribute[T]) Match(a *model.Approach) bool {
	v, ok := f.get(a)
	if !ok {
		return false
	}
	return f.op.holds(f.compare(v, f.value))
}

// String describes the filter, e.g. "distance >= 0.1".
func (f *Attribute[T]) String() string {
	return fmt.Sprintf("%s %s %s", f.name, f.op, f.format(f.value))
}

func number(name string, op Op, value float64, get func(*model.Approach) (float64, bool)) *Attribute[float64] {
	return &Attribute[float64]{
		name:    name,
		op:      op,
		value:   value,
		get:     get,
		compare: cmp.Compare[float64],
		format:  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func date(op Op, day time.Time) *Attribute[time.Time] {
	return &Attribute[time.Time]{
		name:  "date",
		op:    op,
		value: Day(day),
		get: func(a *model.Approach) (time.Time, bool) {
			return Day(a.Time), true
		},
		compare: func(a, b time.Time) int { return a.Compare(b) },
		format:  func(t time.Time) string { return t.Format(time.DateOnly) },
	}
}

// Date matches approaches on the given calendar day (UTC).
func Date(day time.Time) *Attribute[time.Time] { return date(OpEq, day) }

// StartDate matches approaches on or after the given calendar day.
func StartDate(day time.Time) *Attribute[time.Time] { return date(OpGE, day) }

// EndDate matches approaches on or before the given calendar day.
func EndDate(day time.Time) *Attribute[time.Time] { return date(OpLE, day) }

func distance(a *model.Approach) (float64, bool) { return a.Distance, true }
func velocity(a *model.Approach) (float64, bool) { return a.Velocity, true }

func diameter(a *model.Approach) (float64, bool) {
	b := a.Body()
	if b == nil || math.IsNaN(b.Diameter) {
		return 0, false
	}
	return b.Diameter, true
}

// MinDistance matches approaches at least au astronomical units away.
func MinDistance(au float64) *Attribute[float64] { return number("distance", OpGE, au, distance) }

// MaxDistance matches approaches at most au astronomical units away.
func MaxDistance(au float64) *Attribute[float64] { return number("distance", OpLE, au, distance) }

// MinVelocity matches approaches at least kms kilometers per second fast.
func MinVelocity(kms float64) *Attribute[float64] { return number("velocity", OpGE, kms, velocity) }

// MaxVelocity matches approaches at most kms kilometers per second fast.
func MaxVelocity(kms float64) *Attribute[float64] { return number("velocity", OpLE, kms, velocity) }

// MinDiameter matches approaches of bodies with a known diameter of at least
// km kilometers.
func MinDiameter(km float64) *Attribute[float64] { return number("diameter", OpGE, km, diameter) }

// MaxDiameter matches approaches of bodies with a known diameter of at most
// km kilometers.
func MaxDiameter(km float64) *Attribute[float64] { return number("diameter", OpLE, km, diameter) }

// Designation matches approaches of the body with the given designation,
// compared after database.Normalize.
func Designation(designation string) *Attribute[string] {
	return &Attribute[string]{
		name:  "designation",
		op:    OpEq,
		value: database.Normalize(designation),
		get: func(a *model.Approach) (string, bool) {
			if a.Body() == nil {
				return "", false
			}
			return database.Normalize(a.Body().Designation), true
		},
		compare: cmp.Compare[string],
		format:  strconv.Quote,
	}
}

// Hazard matches approaches whose linked body's hazard flag equals the
// receiver.
type Hazard bool

// Match reports whether the linked body's hazard flag equals h.
func (h Hazard) Match(a *model.Approach) bool {
	b := a.Body()
	return b != nil && b.Hazardous == bool(h)
}

// String describes the filter.
func (h Hazard) String() string {
	return "hazardous == " + strconv.FormatBool(bool(h))
}
