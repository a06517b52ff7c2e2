package services

import (
	"fmt"
	"strings"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/hazards"
)

// BuildExplanation renders the human-readable summary of why the route looks
// the way it does. Sentences appear in a fixed order (bridges, weight, hazmat,
// added distance, breaks). The function is pure: the same inputs always
// produce the same string.
func BuildExplanation(report hazards.Report, breaks []domain.PlannedBreak, distanceAddedMiles float64) string {
	var parts []string

	if n := len(report.LowBridges); n > 0 {
		parts = append(parts, fmt.Sprintf("Avoided %d low bridges", n))
	}
	if n := len(report.WeightRestrictions); n > 0 {
		parts = append(parts, fmt.Sprintf("Avoided %d weight-restricted roads", n))
	}
	if n := len(report.HazmatRestrictions); n > 0 {
		parts = append(parts, fmt.Sprintf("Avoided %d hazmat-restricted areas", n))
	}
	if distanceAddedMiles > 0 {
		parts = append(parts, fmt.Sprintf("Added %.1f miles for truck-safe routing", distanceAddedMiles))
	}
	if n := len(breaks); n > 0 {
		parts = append(parts, fmt.Sprintf("Includes %d required HOS breaks", n))
	}

	if len(parts) == 0 {
		return "Standard route - no hazards avoided."
	}
	return strings.Join(parts, ". ") + "."
}
