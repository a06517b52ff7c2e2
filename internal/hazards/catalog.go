// Package hazards holds the geofenced restriction catalog and the checker
// that tests a route polyline against a vehicle profile.
//
// The catalog is immutable reference data: it is loaded once at process start
// and shared by reference across requests, so unsynchronized concurrent reads
// are safe.
package hazards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"truck-route-service/internal/domain"
)

// Catalog is the known set of geofenced restrictions, grouped by kind.
type Catalog struct {
	LowBridges   []domain.Hazard
	WeightLimits []domain.Hazard
	HazmatZones  []domain.Hazard
}

// Default returns the compiled-in catalog used when no hazard file is
// configured. In production this would be replaced by a live hazard-data
// source behind the same Catalog shape.
func Default() *Catalog {
	return &Catalog{
		LowBridges: []domain.Hazard{
			bridge("NYC Parkway Bridge", 40.7128, -74.0060, 11.5),
			bridge("Chicago Underpass", 41.8781, -87.6298, 12.0),
			bridge("Boston Tunnel", 42.3601, -71.0589, 10.5),
			bridge("Philadelphia Bridge", 39.9526, -75.1652, 11.0),
			bridge("Atlanta Overpass", 33.7490, -84.3880, 12.5),
		},
		WeightLimits: []domain.Hazard{
			weightLimit("Manhattan Local Road", 40.7580, -73.9855, 40000),
			weightLimit("LA Residential Zone", 34.0522, -118.2437, 60000),
		},
		HazmatZones: []domain.Hazard{
			hazmatZone("Holland Tunnel", 40.7282, -74.0326,
				domain.HazmatClass1Explosives, domain.HazmatClass2Gases, domain.HazmatClass3Flammable),
			hazmatZone("Lincoln Tunnel", 40.7614, -73.9776,
				domain.HazmatClass1Explosives, domain.HazmatClass7Radioactive),
		},
	}
}

func bridge(name string, lat, lon, clearance float64) domain.Hazard {
	return domain.Hazard{
		Kind:          domain.HazardLowBridge,
		Name:          name,
		Location:      domain.Coordinates{Lat: lat, Lon: lon},
		ClearanceFeet: clearance,
	}
}

func weightLimit(name string, lat, lon float64, limitLbs int) domain.Hazard {
	return domain.Hazard{
		Kind:           domain.HazardWeightLimit,
		Name:           name,
		Location:       domain.Coordinates{Lat: lat, Lon: lon},
		WeightLimitLbs: limitLbs,
	}
}

func hazmatZone(name string, lat, lon float64, restricted ...domain.HazmatClass) domain.Hazard {
	return domain.Hazard{
		Kind:       domain.HazardHazmat,
		Name:       name,
		Location:   domain.Coordinates{Lat: lat, Lon: lon},
		Restricted: restricted,
	}
}

type hazardFile struct {
	LowBridges []struct {
		Name          string  `yaml:"name"`
		Lat           float64 `yaml:"lat"`
		Lon           float64 `yaml:"lon"`
		ClearanceFeet float64 `yaml:"clearance_feet"`
	} `yaml:"low_bridges"`
	WeightLimits []struct {
		Name     string  `yaml:"name"`
		Lat      float64 `yaml:"lat"`
		Lon      float64 `yaml:"lon"`
		LimitLbs int     `yaml:"limit_lbs"`
	} `yaml:"weight_limits"`
	HazmatRestrictions []struct {
		Name       string   `yaml:"name"`
		Lat        float64  `yaml:"lat"`
		Lon        float64  `yaml:"lon"`
		Restricted []string `yaml:"restricted"`
	} `yaml:"hazmat_restrictions"`
}

// LoadFile reads a hazard catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load hazards: read %q: %w", path, err)
	}

	var f hazardFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("load hazards: parse %q: %w", path, err)
	}

	c := &Catalog{}
	for i, b := range f.LowBridges {
		loc := domain.Coordinates{Lat: b.Lat, Lon: b.Lon}
		if !loc.Valid() {
			return nil, fmt.Errorf("load hazards: low_bridges[%d] %q has invalid coordinates", i, b.Name)
		}
		if b.ClearanceFeet <= 0 {
			return nil, fmt.Errorf("load hazards: low_bridges[%d] %q clearance must be positive", i, b.Name)
		}
		c.LowBridges = append(c.LowBridges, bridge(b.Name, b.Lat, b.Lon, b.ClearanceFeet))
	}
	for i, w := range f.WeightLimits {
		loc := domain.Coordinates{Lat: w.Lat, Lon: w.Lon}
		if !loc.Valid() {
			return nil, fmt.Errorf("load hazards: weight_limits[%d] %q has invalid coordinates", i, w.Name)
		}
		if w.LimitLbs <= 0 {
			return nil, fmt.Errorf("load hazards: weight_limits[%d] %q limit must be positive", i, w.Name)
		}
		c.WeightLimits = append(c.WeightLimits, weightLimit(w.Name, w.Lat, w.Lon, w.LimitLbs))
	}
	for i, h := range f.HazmatRestrictions {
		loc := domain.Coordinates{Lat: h.Lat, Lon: h.Lon}
		if !loc.Valid() {
			return nil, fmt.Errorf("load hazards: hazmat_restrictions[%d] %q has invalid coordinates", i, h.Name)
		}
		restricted := make([]domain.HazmatClass, 0, len(h.Restricted))
		for _, r := range h.Restricted {
			class := domain.HazmatClass(r)
			if !class.Valid() || class == domain.HazmatNone {
				return nil, fmt.Errorf("load hazards: hazmat_restrictions[%d] %q has unknown class %q", i, h.Name, r)
			}
			restricted = append(restricted, class)
		}
		c.HazmatZones = append(c.HazmatZones, hazmatZone(h.Name, h.Lat, h.Lon, restricted...))
	}

	return c, nil
}

// Size returns the total number of cataloged hazards.
func (c *Catalog) Size() int {
	return len(c.LowBridges) + len(c.WeightLimits) + len(c.HazmatZones)
}
