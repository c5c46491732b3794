package model

import "fmt"

// DefaultInflationRate is applied when a plan does not specify one.
const DefaultInflationRate = 0.03

// Plan is the declarative input to a projection run.
type Plan struct {
	Name          string      `toml:"name,omitempty" json:"name,omitempty"`
	StartYear     int         `toml:"start_year" json:"start_year"`
	EndYear       int         `toml:"end_year" json:"end_year"`
	InflationRate float64     `toml:"inflation_rate" json:"inflation_rate"`
	Elements      Collections `toml:"elements" json:"elements"`
}

// Years returns the number of years in the inclusive horizon, or 0 when the
// horizon is inverted.
func (p Plan) Years() int {
	if p.EndYear < p.StartYear {
		return 0
	}
	return p.EndYear - p.StartYear + 1
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	p.Elements = p.Elements.Clone()
	return p
}

// Validate checks the element collections. An inverted horizon is not an
// error: the projection of such a plan is simply empty.
func (p Plan) Validate() error {
	if err := p.Elements.Validate(); err != nil {
		if p.Name != "" {
			return fmt.Errorf("plan %q: %w", p.Name, err)
		}
		return err
	}
	return nil
}
