package filter

import (
	"strings"
	"time"

	"github.com/papapumpkin/neo/internal/database"
	"github.com/papapumpkin/neo/internal/model"
)

// Criteria holds user-supplied query criteria. A nil field is not filtered on.
type Criteria struct {
	Date        *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
	MinDistance *float64
	MaxDistance *float64
	MinVelocity *float64
	MaxVelocity *float64
	MinDiameter *float64
	MaxDiameter *float64
	Hazardous   *bool
	Designation string
}

// Merge returns c with every field that is set in override replaced by the
// override's value. An exact date and a date range exclude each other, so
// setting either side in override clears the other from c.
func (c Criteria) Merge(override Criteria) Criteria {
	set := func(dst **time.Time, src *time.Time) {
		if src != nil {
			*dst = src
		}
	}
	setf := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}

	if override.Date != nil {
		c.StartDate, c.EndDate = nil, nil
	}
	if override.StartDate != nil || override.EndDate != nil {
		c.Date = nil
	}
	set(&c.Date, override.Date)
	set(&c.StartDate, override.StartDate)
	set(&c.EndDate, override.EndDate)
	setf(&c.MinDistance, override.MinDistance)
	setf(&c.MaxDistance, override.MaxDistance)
	setf(&c.MinVelocity, override.MinVelocity)
	setf(&c.MaxVelocity, override.MaxVelocity)
	setf(&c.MinDiameter, override.MinDiameter)
	setf(&c.MaxDiameter, override.MaxDiameter)
	if override.Hazardous != nil {
		c.Hazardous = override.Hazardous
	}
	if override.Designation != "" {
		c.Designation = override.Designation
	}
	return c
}

// Chain is an ordered conjunction of predicates. It is itself a predicate and
// stops at the first predicate that fails.
type Chain []database.Predicate

// Match reports whether every predicate in the chain matches a.
func (c Chain) Match(a *model.Approach) bool {
	for _, p := range c {
		if !p.Match(a) {
			return false
		}
	}
	return true
}

// String joins the descriptions of the chain's predicates with "and".
func (c Chain) String() string {
	if len(c) == 0 {
		return "(all)"
	}
	parts := make([]string, 0, len(c))
	for _, p := range c {
		if s, ok := p.(interface{ String() string }); ok {
			parts = append(parts, s.String())
		} else {
			parts = append(parts, "custom")
		}
	}
	return strings.Join(parts, " and ")
}

// Create turns criteria into a chain of filters. The order is stable: dates,
// distance, velocity, then filters that need the linked body.
func Create(c Criteria) Chain {
	var chain Chain

	if c.Date != nil {
		chain = append(chain, Date(*c.Date))
	}
	if c.StartDate != nil {
		chain = append(chain, StartDate(*c.StartDate))
	}
	if c.EndDate != nil {
		chain = append(chain, EndDate(*c.EndDate))
	}
	if c.MinDistance != nil {
		chain = append(chain, MinDistance(*c.MinDistance))
	}
	if c.MaxDistance != nil {
		chain = append(chain, MaxDistance(*c.MaxDistance))
	}
	if c.MinVelocity != nil {
		chain = append(chain, MinVelocity(*c.MinVelocity))
	}
	if c.MaxVelocity != nil {
		chain = append(chain, MaxVelocity(*c.MaxVelocity))
	}
	if c.Designation != "" {
		chain = append(chain, Designation(c.Designation))
	}
	if c.MinDiameter != nil {
		chain = append(chain, MinDiameter(*c.MinDiameter))
	}
	if c.MaxDiameter != nil {
		chain = append(chain, MaxDiameter(*c.MaxDiameter))
	}
	if c.Hazardous != nil {
		chain = append(chain, Hazard(*c.Hazardous))
	}

	return chain
}
