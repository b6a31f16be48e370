package generator

import "fmt"

// Config describes the random scenario to generate.
type Config struct {
	Name                 string  `json:"name"`
	Devices              int     `json:"devices"`
	Locations            int     `json:"locations"`
	Nodes                int     `json:"nodes"`
	Radius               float64 `json:"radius"`
	CoverageRange        float64 `json:"coverage_range"`
	MaxGroupSize         int     `json:"max_group_size"`
	MaxGroupsPerLocation int     `json:"max_groups_per_location"`
	EnergyBase           float64 `json:"energy_base"`
	EnergyPerDistance    float64 `json:"energy_per_distance"`
	MaxPrecision         float64 `json:"max_precision"`
	// MaxPlacementAttempts bounds how often an uncovered location is moved.
	MaxPlacementAttempts int    `json:"max_placement_attempts"`
	Seed                 uint64 `json:"seed"`
}

// SetDefaults applies fallback values for optional fields.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = "generated"
	}
	if c.Devices <= 0 {
		c.Devices = 50
	}
	if c.Locations <= 0 {
		c.Locations = 20
	}
	if c.Nodes <= 0 {
		c.Nodes = 3
	}
	if c.Radius == 0 {
		c.Radius = 100
	}
	if c.CoverageRange == 0 {
		c.CoverageRange = 12
	}
	if c.MaxGroupSize <= 0 {
		c.MaxGroupSize = 2
	}
	if c.MaxGroupsPerLocation <= 0 {
		c.MaxGroupsPerLocation = 16
	}
	if c.EnergyBase == 0 {
		c.EnergyBase = 1
	}
	if c.EnergyPerDistance == 0 {
		c.EnergyPerDistance = 0.001
	}
	if c.MaxPrecision == 0 {
		c.MaxPrecision = 5
	}
	if c.MaxPlacementAttempts <= 0 {
		c.MaxPlacementAttempts = 1000
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.Devices <= 0 || c.Locations <= 0 || c.Nodes <= 0 {
		return fmt.Errorf("devices, locations and nodes must be >0")
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be >0")
	}
	if c.CoverageRange <= 0 {
		return fmt.Errorf("coverage_range must be >0")
	}
	if c.EnergyBase < 0 || c.EnergyPerDistance < 0 {
		return fmt.Errorf("energy parameters must not be negative")
	}
	if c.MaxGroupSize <= 0 || c.MaxGroupsPerLocation <= 0 {
		return fmt.Errorf("group limits must be >0")
	}
	return nil
}
