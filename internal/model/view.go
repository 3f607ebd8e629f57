package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Size is a diameter in kilometers that encodes an unknown (NaN) value as the
// text "NaN" instead of failing, as encoding/json does for NaN floats.
type Size float64

// Known reports whether the size is a real number.
func (s Size) Known() bool {
	return !math.IsNaN(float64(s))
}

// String returns "NaN" for an unknown size and the shortest decimal
// representation otherwise.
func (s Size) String() string {
	if !s.Known() {
		return "NaN"
	}
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

// MarshalJSON encodes an unknown size as the JSON string "NaN".
func (s Size) MarshalJSON() ([]byte, error) {
	if !s.Known() {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(float64(s))
}

// BodyView is the flat, serializable form of a Body.
type BodyView struct {
	Designation string `json:"designation"`
	Name        string `json:"name"`
	Diameter    Size   `json:"diameter_km"`
	Hazardous   string `json:"potentially_hazardous"`
}

// ApproachView is the flat, serializable form of an Approach.
type ApproachView struct {
	DateTime string  `json:"datetime_utc"`
	Distance float64 `json:"distance_au"`
	Velocity float64 `json:"velocity_km_s"`
}

// View returns the serializable form of the body. An absent name becomes the
// empty string and the hazard flag becomes "true" or "false".
func (b *Body) View() BodyView {
	v := BodyView{
		Designation: b.Designation,
		Diameter:    Size(b.Diameter),
		Hazardous:   strconv.FormatBool(b.Hazardous),
	}
	if b.Name != nil {
		v.Name = *b.Name
	}
	return v
}

// View returns the serializable form of the approach.
func (a *Approach) View() ApproachView {
	return ApproachView{
		DateTime: a.TimeString(),
		Distance: a.Distance,
		Velocity: a.Velocity,
	}
}
