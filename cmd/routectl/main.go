package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"truck-route-service/internal/adapters/osrm"
	"truck-route-service/internal/api/dto"
	"truck-route-service/internal/domain"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

// routectl plans truck routes from the command line, against a live OSRM
// backend or fully offline with straight-line estimates.
func main() {
	root := &cobra.Command{
		Use:           "routectl",
		Short:         "Truck route planning from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPlanCmd())
	root.AddCommand(newHazardsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// offlineProvider refuses every request so the planner falls back to its
// straight-line estimate.
type offlineProvider struct{}

func (offlineProvider) GetRoute(context.Context, []domain.Coordinates, ports.RouteOptions) (ports.RouteResult, error) {
	return ports.RouteResult{}, &ports.UpstreamError{Reason: "offline mode"}
}

func newPlanCmd() *cobra.Command {
	var (
		requestPath string
		catalogPath string
		osrmURL     string
		offline     bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a truck route from a JSON request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(requestPath)
			if err != nil {
				return fmt.Errorf("read request file: %w", err)
			}

			var req dto.PlanRouteRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parse request file: %w", err)
			}
			if req.StartLocation == nil {
				return fmt.Errorf("request file must set start_location")
			}

			stops := make([]domain.Stop, 0, len(req.Stops))
			for _, s := range req.Stops {
				stop, err := s.ToStop()
				if err != nil {
					return err
				}
				stops = append(stops, stop)
			}

			startTime := time.Now()
			if req.StartTime != nil {
				startTime = *req.StartTime
			}

			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			var provider ports.RouteProvider = osrm.NewOSRMRouteProvider(osrmURL)
			if offline {
				provider = offlineProvider{}
			}

			plan, err := services.PlanTruckRoute(cmd.Context(), services.PlanRouteRequest{
				Stops:   stops,
				Vehicle: req.Vehicle.ToVehicle(),
				HOS:     req.HOS.ToDutyStatus(),
				StartLocation: domain.Coordinates{
					Lat: req.StartLocation.Latitude,
					Lon: req.StartLocation.Longitude,
				},
				StartTime:          startTime,
				OptimizeOrder:      req.OptimizeOrder,
				FuelPricePerGallon: req.FuelPricePerGallon,
			}, provider, catalog)
			if err != nil {
				return err
			}

			return printJSON(cmd, dto.FromRoutePlan(plan))
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "path to a plan request JSON file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a hazard catalog YAML file (default: builtin)")
	cmd.Flags().StringVar(&osrmURL, "osrm", "", "OSRM base URL (default: public instance)")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip OSRM and use straight-line estimates")
	cmd.MarkFlagRequired("request")

	return cmd
}

func newHazardsCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "hazards",
		Short: "Print the hazard catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			out := struct {
				LowBridges   []domain.Hazard `json:"low_bridges"`
				WeightLimits []domain.Hazard `json:"weight_limits"`
				HazmatZones  []domain.Hazard `json:"hazmat_restrictions"`
			}{catalog.LowBridges, catalog.WeightLimits, catalog.HazmatZones}

			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a hazard catalog YAML file (default: builtin)")

	return cmd
}

func loadCatalog(path string) (*hazards.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return hazards.Default(), nil
	}
	return hazards.LoadFile(path)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
