package domain

import "fmt"

// DOT hazmat classification. Restricts which tunnels and roads a load may use.
type HazmatClass string

const (
	HazmatNone             HazmatClass = "none"
	HazmatClass1Explosives HazmatClass = "class_1"
	HazmatClass2Gases      HazmatClass = "class_2"
	HazmatClass3Flammable  HazmatClass = "class_3"
	HazmatClass4Solids     HazmatClass = "class_4"
	HazmatClass5Oxidizers  HazmatClass = "class_5"
	HazmatClass6Poisons    HazmatClass = "class_6"
	HazmatClass7Radioactive HazmatClass = "class_7"
	HazmatClass8Corrosive  HazmatClass = "class_8"
	HazmatClass9Misc       HazmatClass = "class_9"
)

// Valid reports whether h is a recognized classification.
func (h HazmatClass) Valid() bool {
	switch h {
	case HazmatNone, HazmatClass1Explosives, HazmatClass2Gases, HazmatClass3Flammable,
		HazmatClass4Solids, HazmatClass5Oxidizers, HazmatClass6Poisons,
		HazmatClass7Radioactive, HazmatClass8Corrosive, HazmatClass9Misc:
		return true
	}
	return false
}

// VehicleProfile holds the physical and operational specs of a truck.
// These constraints determine which roads, bridges, and tunnels are safe,
// and how far the vehicle can travel before refueling.
type VehicleProfile struct {
	VehicleID string

	// Dimensions (feet). Height drives bridge clearance checks.
	HeightFeet float64
	WidthFeet  float64
	LengthFeet float64

	// Weight (affects bridge ratings and road restrictions).
	GrossWeightLbs int
	AxleCount      int

	// Fuel and range.
	FuelTankGallons    float64
	MPG                float64
	CurrentFuelGallons *float64

	HazmatClass HazmatClass
}

// DefaultVehicleProfile returns a standard dry-van configuration.
func DefaultVehicleProfile() VehicleProfile {
	return VehicleProfile{
		HeightFeet:      13.5,
		WidthFeet:       8.5,
		LengthFeet:      53.0,
		GrossWeightLbs:  80000,
		AxleCount:       5,
		FuelTankGallons: 300.0,
		MPG:             6.5,
		HazmatClass:     HazmatNone,
	}
}

// Validate checks all fields against DOT-typical operating ranges.
func (v VehicleProfile) Validate() error {
	if v.HeightFeet < 8.0 || v.HeightFeet > 14.5 {
		return fmt.Errorf("height_feet %.1f out of range (8.0 to 14.5)", v.HeightFeet)
	}
	if v.WidthFeet < 6.0 || v.WidthFeet > 10.0 {
		return fmt.Errorf("width_feet %.1f out of range (6.0 to 10.0)", v.WidthFeet)
	}
	if v.LengthFeet < 28.0 || v.LengthFeet > 80.0 {
		return fmt.Errorf("length_feet %.1f out of range (28.0 to 80.0)", v.LengthFeet)
	}
	if v.GrossWeightLbs < 10000 || v.GrossWeightLbs > 105500 {
		return fmt.Errorf("gross_weight_lbs %d out of range (10000 to 105500)", v.GrossWeightLbs)
	}
	if v.AxleCount < 2 || v.AxleCount > 9 {
		return fmt.Errorf("axle_count %d out of range (2 to 9)", v.AxleCount)
	}
	if v.FuelTankGallons < 50.0 || v.FuelTankGallons > 500.0 {
		return fmt.Errorf("fuel_tank_gallons %.1f out of range (50.0 to 500.0)", v.FuelTankGallons)
	}
	if v.MPG < 3.0 || v.MPG > 12.0 {
		return fmt.Errorf("mpg %.1f out of range (3.0 to 12.0)", v.MPG)
	}
	if v.CurrentFuelGallons != nil {
		if *v.CurrentFuelGallons < 0 {
			return fmt.Errorf("current_fuel_gallons must not be negative")
		}
		if *v.CurrentFuelGallons > v.FuelTankGallons {
			return fmt.Errorf("current_fuel_gallons %.1f exceeds tank capacity %.1f", *v.CurrentFuelGallons, v.FuelTankGallons)
		}
	}
	if !v.HazmatClass.Valid() {
		return fmt.Errorf("unknown hazmat class %q", v.HazmatClass)
	}
	return nil
}

// StartingFuelGallons is the fuel available at departure: the reported level
// when known, otherwise a full tank.
func (v VehicleProfile) StartingFuelGallons() float64 {
	if v.CurrentFuelGallons != nil {
		return *v.CurrentFuelGallons
	}
	return v.FuelTankGallons
}

// EstimatedRangeMiles is how far the vehicle can travel on its starting fuel.
func (v VehicleProfile) EstimatedRangeMiles() float64 {
	return v.StartingFuelGallons() * v.MPG
}
