// Package model defines the two record types of the data set: near-Earth
// objects (bodies) and their close approaches to Earth.
//
// Records are created unlinked by the ingestion layer and linked exactly once
// by the database package. After linking they are never mutated again.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidField is returned by the record constructors when a raw field
// cannot be coerced into its typed value.
var ErrInvalidField = errors.New("invalid field")

// BodyFields holds the raw, untyped fields of a near-Earth object as they
// appear in the source data.
type BodyFields struct {
	Designation string
	Name        string
	Diameter    string
	Hazard      string
}

// Body is a near-Earth object. Designation is the unique primary key; Name is
// nil when the object has no IAU name; Diameter is NaN when unknown.
type Body struct {
	Designation string
	Name        *string
	Diameter    float64
	Hazardous   bool

	approaches []*Approach
}

// NewBody coerces raw fields into a Body. The designation is kept as given
// and must not be blank; whitespace is trimmed from the other fields. An empty
// name means the body is unnamed, an empty diameter means the diameter is
// unknown, and a hazard code of "Y" marks the body hazardous.
func NewBody(f BodyFields) (*Body, error) {
	designation := strings.TrimSpace(f.Designation)
	if designation == "" {
		return nil, fmt.Errorf("model: designation: %w: empty", ErrInvalidField)
	}

	b := &Body{
		Designation: f.Designation,
		Diameter:    math.NaN(),
		Hazardous:   strings.TrimSpace(f.Hazard) == "Y",
	}

	if name := strings.TrimSpace(f.Name); name != "" {
		b.Name = &name
	}

	if raw := strings.TrimSpace(f.Diameter); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("model: diameter %q for %s: %w", raw, designation, ErrInvalidField)
		}
		b.Diameter = d
	}

	return b, nil
}

// Approaches returns the body's close approaches in ingestion order. The
// returned slice must not be modified.
func (b *Body) Approaches() []*Approach {
	return b.approaches
}

// HasName reports whether the body has a non-empty name.
func (b *Body) HasName() bool {
	return b.Name != nil && *b.Name != ""
}

// FullName returns "designation (name)", or the bare designation when the
// body is unnamed.
func (b *Body) FullName() string {
	if !b.HasName() {
		return b.Designation
	}
	return fmt.Sprintf("%s (%s)", b.Designation, *b.Name)
}

// String returns a human-readable description of the body.
func (b *Body) String() string {
	haz := "is not"
	if b.Hazardous {
		haz = "is"
	}
	if math.IsNaN(b.Diameter) {
		return fmt.Sprintf("NEO %s has an unknown diameter and %s potentially hazardous.", b.FullName(), haz)
	}
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.", b.FullName(), b.Diameter, haz)
}
