// Package database links near-Earth objects with their close approaches and
// answers lookups and filtered queries over the linked set.
//
// A Database is built once by New and is read-only afterwards, so it is safe
// for concurrent readers without locking.
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/neo/internal/model"
)

var (
	// ErrDuplicateDesignation is returned by New when two bodies share a
	// primary designation after normalization.
	ErrDuplicateDesignation = errors.New("duplicate designation")
	// ErrDuplicateName is returned by New when two bodies share a non-empty
	// name after normalization.
	ErrDuplicateName = errors.New("duplicate name")
)

// Reporter receives diagnostics raised while linking.
type Reporter interface {
	// UnresolvedApproach is called once for every approach whose designation
	// matches no body. Linking continues afterwards.
	UnresolvedApproach(a *model.Approach)
}

// Option configures New.
type Option func(*Database)

// WithReporter sets the Reporter notified of unresolved approaches.
func WithReporter(r Reporter) Option {
	return func(d *Database) {
		d.reporter = r
	}
}

// Database is a linked, immutable set of bodies and approaches.
type Database struct {
	bodies     []*model.Body
	approaches []*model.Approach
	unresolved []*model.Approach

	byDesignation map[string]*model.Body
	byName        map[string]*model.Body
	// byLinkKey holds trimmed, case-preserved designations for linking.
	byLinkKey map[string]*model.Body

	reporter Reporter
}

// Normalize returns the lookup key for a designation or name: surrounding
// whitespace trimmed, upper-cased.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// New indexes bodies by designation and name, then links every approach to
// the body whose designation matches exactly once surrounding whitespace is
// trimmed. Approaches without a match stay unlinked and are reported. The
// supplied records are mutated in place and must not have been linked before;
// if any error is returned, no record has been modified.
func New(bodies []*model.Body, approaches []*model.Approach, opts ...Option) (*Database, error) {
	d := &Database{
		bodies:        bodies,
		approaches:    approaches,
		byDesignation: make(map[string]*model.Body, len(bodies)),
		byName:        make(map[string]*model.Body),
		byLinkKey:     make(map[string]*model.Body, len(bodies)),
	}
	for _, opt := range opts {
		opt(d)
	}

	seen := make(map[*model.Approach]bool, len(approaches))
	for _, a := range approaches {
		if a.Body() != nil || seen[a] {
			return nil, fmt.Errorf("database: link %s: %w", a.Designation(), model.ErrAlreadyLinked)
		}
		seen[a] = true
	}

	for _, b := range bodies {
		key := Normalize(b.Designation)
		if _, dup := d.byDesignation[key]; dup {
			return nil, fmt.Errorf("database: index %q: %w", b.Designation, ErrDuplicateDesignation)
		}
		d.byDesignation[key] = b
		d.byLinkKey[strings.TrimSpace(b.Designation)] = b

		if !b.HasName() {
			continue
		}
		nameKey := Normalize(*b.Name)
		if nameKey == "" {
			continue
		}
		if other, dup := d.byName[nameKey]; dup {
			return nil, fmt.Errorf("database: index name %q of %s (already used by %s): %w",
				*b.Name, b.Designation, other.Designation, ErrDuplicateName)
		}
		d.byName[nameKey] = b
	}

	for _, a := range approaches {
		b, ok := d.byLinkKey[strings.TrimSpace(a.Designation())]
		if !ok {
			d.unresolved = append(d.unresolved, a)
			if d.reporter != nil {
				d.reporter.UnresolvedApproach(a)
			}
			continue
		}
		if err := a.LinkTo(b); err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	}

	return d, nil
}

// FindByIdentifier returns the body with the given primary designation, or
// nil if there is none. Matching ignores case and surrounding whitespace.
func (d *Database) FindByIdentifier(designation string) *model.Body {
	return d.byDesignation[Normalize(designation)]
}

// FindByName returns the body with the given name, or nil if there is none.
// No body is registered under an empty name, so empty input never matches.
func (d *Database) FindByName(name string) *model.Body {
	key := Normalize(name)
	if key == "" {
		return nil
	}
	return d.byName[key]
}

// Bodies returns all bodies in ingestion order. The slice must not be
// modified.
func (d *Database) Bodies() []*model.Body {
	return d.bodies
}

// Len returns the number of approaches, linked or not.
func (d *Database) Len() int {
	return len(d.approaches)
}

// Unresolved returns the approaches that matched no body, in ingestion order.
func (d *Database) Unresolved() []*model.Approach {
	return d.unresolved
}
