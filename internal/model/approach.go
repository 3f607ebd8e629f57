package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Time layouts used by the source data and by serialized output.
const (
	// SourceTimeLayout is the calendar date format of the JPL close-approach
	// data ("cd" field), e.g. "2020-Jan-01 12:30".
	SourceTimeLayout = "2006-Jan-02 15:04"
	// OutputTimeLayout drops seconds, which the source data never carries.
	OutputTimeLayout = "2006-01-02 15:04"
)

// precision is the number of decimal digits kept for distance and velocity.
const precision = 4

// ErrAlreadyLinked is returned by LinkTo when the approach already references
// a body.
var ErrAlreadyLinked = errors.New("approach already linked")

// ApproachFields holds the raw, untyped fields of a close approach.
type ApproachFields struct {
	Designation string
	Time        string
	Distance    string
	Velocity    string
}

// Approach is a single close approach of a body to Earth. Distance is in
// astronomical units and Velocity in kilometers per second.
type Approach struct {
	Time     time.Time
	Distance float64
	Velocity float64

	designation string
	body        *Body
}

// NewApproach coerces raw fields into an unlinked Approach. The designation
// is kept as given. The time must be in SourceTimeLayout and is interpreted as
// UTC. Distance and velocity must be finite.
func NewApproach(f ApproachFields) (*Approach, error) {
	designation := strings.TrimSpace(f.Designation)
	if designation == "" {
		return nil, fmt.Errorf("model: approach designation: %w: empty", ErrInvalidField)
	}

	t, err := time.ParseInLocation(SourceTimeLayout, strings.TrimSpace(f.Time), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("model: approach time %q for %s: %w", f.Time, designation, ErrInvalidField)
	}

	dist, err := parseRounded(f.Distance)
	if err != nil {
		return nil, fmt.Errorf("model: approach distance %q for %s: %w", f.Distance, designation, ErrInvalidField)
	}

	vel, err := parseRounded(f.Velocity)
	if err != nil {
		return nil, fmt.Errorf("model: approach velocity %q for %s: %w", f.Velocity, designation, ErrInvalidField)
	}

	return &Approach{
		Time:        t,
		Distance:    dist,
		Velocity:    vel,
		designation: f.Designation,
	}, nil
}

func parseRounded(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return round(v), nil
}

func round(v float64) float64 {
	scale := math.Pow(10, precision)
	return math.Round(v*scale) / scale
}

// Designation returns the primary designation of the body this approach
// belongs to, as given in the source data.
func (a *Approach) Designation() string {
	return a.designation
}

// Body returns the linked body, or nil if the approach was never linked.
func (a *Approach) Body() *Body {
	return a.body
}

// LinkTo attaches the approach to b: the approach is appended to b's
// approaches and its back-reference is set. An approach can be linked once.
func (a *Approach) LinkTo(b *Body) error {
	if a.body != nil {
		return fmt.Errorf("model: link %s: %w", a.designation, ErrAlreadyLinked)
	}
	a.body = b
	b.approaches = append(b.approaches, a)
	return nil
}

// TimeString formats the approach time without seconds.
func (a *Approach) TimeString() string {
	return a.Time.Format(OutputTimeLayout)
}

// String returns a human-readable description of the approach.
func (a *Approach) String() string {
	who := strings.TrimSpace(a.designation)
	if a.body != nil {
		who = a.body.FullName()
	}
	return fmt.Sprintf("At %s, NEO %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		a.TimeString(), who, a.Distance, a.Velocity)
}
