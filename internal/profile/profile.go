// Package profile loads named query presets from a TOML file, e.g.
//
//	[profiles.close-and-fast]
//	description = "closer than 0.05 au, faster than 20 km/s"
//	max_distance = 0.05
//	min_velocity = 20.0
//	start_date = 2020-01-01
//	limit = 50
package profile

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/neo/internal/filter"
)

// ErrUnknownProfile is returned by Get when no profile has the given name.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a saved set of query criteria.
type Profile struct {
	Description string          `toml:"description"`
	Date        *toml.LocalDate `toml:"date"`
	StartDate   *toml.LocalDate `toml:"start_date"`
	EndDate     *toml.LocalDate `toml:"end_date"`
	MinDistance *float64        `toml:"min_distance"`
	MaxDistance *float64        `toml:"max_distance"`
	MinVelocity *float64        `toml:"min_velocity"`
	MaxVelocity *float64        `toml:"max_velocity"`
	MinDiameter *float64        `toml:"min_diameter"`
	MaxDiameter *float64        `toml:"max_diameter"`
	Hazardous   *bool           `toml:"hazardous"`
	Designation string          `toml:"designation"`
	Limit       int             `toml:"limit"`
}

// Set is the parsed content of a profiles file.
type Set struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Load parses the profiles file at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes profiles from TOML and validates each of them.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("profile: parse: %w", err)
	}
	for _, name := range s.Names() {
		if err := s.Profiles[name].validate(); err != nil {
			return nil, fmt.Errorf("profile: %s: %w", name, err)
		}
	}
	return &s, nil
}

// Names returns the profile names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the named profile.
func (s *Set) Get(name string) (Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile: %w %q", ErrUnknownProfile, name)
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.Date != nil && (p.StartDate != nil || p.EndDate != nil) {
		return errors.New("date cannot be combined with start_date or end_date")
	}
	if p.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", p.Limit)
	}
	return nil
}

// Criteria converts the profile into filter criteria. Dates are taken as UTC
// calendar days.
func (p Profile) Criteria() filter.Criteria {
	return filter.Criteria{
		Date:        day(p.Date),
		StartDate:   day(p.StartDate),
		EndDate:     day(p.EndDate),
		MinDistance: p.MinDistance,
		MaxDistance: p.MaxDistance,
		MinVelocity: p.MinVelocity,
		MaxVelocity: p.MaxVelocity,
		MinDiameter: p.MinDiameter,
		MaxDiameter: p.MaxDiameter,
		Hazardous:   p.Hazardous,
		Designation: p.Designation,
	}
}

func day(d *toml.LocalDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.AsTime(time.UTC)
	return &t
}
