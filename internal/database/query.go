package database

import (
	"iter"

	"github.com/papapumpkin/neo/internal/model"
)

// Predicate is a boolean test over a single approach.
type Predicate interface {
	Match(a *model.Approach) bool
}

// PredicateFunc adapts an ordinary function to the Predicate interface.
type PredicateFunc func(a *model.Approach) bool

// Match calls f(a).
func (f PredicateFunc) Match(a *model.Approach) bool {
	return f(a)
}

// Query returns a lazy sequence of the approaches matching every predicate,
// in ingestion order. Predicates are evaluated in order and evaluation stops
// at the first one that fails. With no predicates every approach is yielded.
//
// The sequence can be ranged over any number of times; each range re-scans
// the data. A panicking predicate is not recovered.
func (d *Database) Query(preds ...Predicate) iter.Seq[*model.Approach] {
	return func(yield func(*model.Approach) bool) {
		for _, a := range d.approaches {
			if !matchAll(a, preds) {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

func matchAll(a *model.Approach, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Match(a) {
			return false
		}
	}
	return true
}

// Limit yields at most n items of seq. A non-positive n yields everything.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		count := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
