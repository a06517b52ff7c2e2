package services

import (
	"math"
	"testing"

	"truck-route-service/internal/domain"
)

func restedDriver() domain.DutyStatus {
	return domain.DefaultDutyStatus()
}

func TestPlanHOSBreaksSingleBreak(t *testing.T) {
	// 9 hours of driving with a fresh 11-hour budget: exactly one 30-minute
	// break at the 8-hour mark and no overnight rest.
	breaks, alerts := PlanHOSBreaks(450, 9, restedDriver(), domain.DefaultVehicleProfile())

	if len(breaks) != 1 {
		t.Fatalf("expected 1 break, got %d: %+v", len(breaks), breaks)
	}
	b := breaks[0]
	if b.Kind != domain.Break30Min {
		t.Fatalf("break kind = %q, want %q", b.Kind, domain.Break30Min)
	}
	if math.Abs(b.TimeFromStartHours-8.0) > 1e-9 {
		t.Fatalf("break time = %v hours, want 8.0", b.TimeFromStartHours)
	}
	wantMiles := 8.0 / 9.0 * 450
	if math.Abs(b.DistanceFromStartMiles-wantMiles) > 1e-9 {
		t.Fatalf("break mile = %v, want %v", b.DistanceFromStartMiles, wantMiles)
	}
	if b.DurationMinutes != 30 {
		t.Fatalf("break duration = %d minutes, want 30", b.DurationMinutes)
	}
	if len(alerts) != 0 {
		t.Fatalf("no rest alert expected, got %+v", alerts)
	}
}

func TestPlanHOSBreaksNoBreakForShortDrive(t *testing.T) {
	breaks, alerts := PlanHOSBreaks(300, 6, restedDriver(), domain.DefaultVehicleProfile())
	if len(breaks) != 0 || len(alerts) != 0 {
		t.Fatalf("6-hour drive needs no breaks, got breaks=%+v alerts=%+v", breaks, alerts)
	}
}

func TestPlanHOSBreaksRestWhenBudgetExhausted(t *testing.T) {
	// 6 hours planned against a 5-hour remaining budget: one 10-hour rest at
	// the point the budget runs out, then budgets reset to the daily ceiling.
	hos := restedDriver()
	hos.DrivingHoursRemaining = 5.0

	breaks, alerts := PlanHOSBreaks(300, 6, hos, domain.DefaultVehicleProfile())

	if len(breaks) != 1 {
		t.Fatalf("expected 1 rest, got %d: %+v", len(breaks), breaks)
	}
	rest := breaks[0]
	if rest.Kind != domain.Break10HourRest {
		t.Fatalf("break kind = %q, want %q", rest.Kind, domain.Break10HourRest)
	}
	if math.Abs(rest.TimeFromStartHours-5.0) > 1e-9 {
		t.Fatalf("rest at %v hours, want 5.0", rest.TimeFromStartHours)
	}
	if rest.DurationMinutes != 600 {
		t.Fatalf("rest duration = %d minutes, want 600", rest.DurationMinutes)
	}

	if len(alerts) != 1 || alerts[0].Type != domain.AlertRestRequired {
		t.Fatalf("expected one rest_required alert, got %+v", alerts)
	}
	if alerts[0].Severity != domain.SeverityWarning {
		t.Fatalf("rest alert severity = %q, want warning", alerts[0].Severity)
	}
}

func TestPlanHOSBreaksLongHaulCombination(t *testing.T) {
	// 14 hours of driving on full budgets: a 30-minute break at hour 8, then
	// the remaining daily budget (3 hours) runs out at hour 11.
	breaks, _ := PlanHOSBreaks(700, 14, restedDriver(), domain.DefaultVehicleProfile())

	if len(breaks) != 2 {
		t.Fatalf("expected break + rest, got %d: %+v", len(breaks), breaks)
	}
	if breaks[0].Kind != domain.Break30Min || math.Abs(breaks[0].TimeFromStartHours-8.0) > 1e-9 {
		t.Fatalf("first break = %+v, want 30_min at hour 8", breaks[0])
	}
	if breaks[1].Kind != domain.Break10HourRest || math.Abs(breaks[1].TimeFromStartHours-11.0) > 1e-9 {
		t.Fatalf("second break = %+v, want 10_hour_rest at hour 11", breaks[1])
	}
}

func TestPlanHOSBreaksBreakRequiredImmediately(t *testing.T) {
	hos := restedDriver()
	hos.BreakRequired = true

	breaks, _ := PlanHOSBreaks(200, 4, hos, domain.DefaultVehicleProfile())

	if len(breaks) == 0 {
		t.Fatalf("break_required must force a break before driving")
	}
	first := breaks[0]
	if first.Kind != domain.Break30Min || first.DistanceFromStartMiles != 0 || first.TimeFromStartHours != 0 {
		t.Fatalf("forced break = %+v, want 30_min at mile 0", first)
	}
}

func TestPlanHOSBreaksFuelStopInsertedBeforeLowBreak(t *testing.T) {
	// 100 gallons at 6.5mpg covers 650 miles, but the reserve floor is hit at
	// 325 miles. The 8-hour break lands at mile 400, so a fuel stop goes in
	// 50 miles ahead of it.
	vehicle := domain.DefaultVehicleProfile()
	fuel := 100.0
	vehicle.CurrentFuelGallons = &fuel

	breaks, _ := PlanHOSBreaks(500, 10, restedDriver(), vehicle)

	if len(breaks) < 2 {
		t.Fatalf("expected fuel stop plus break, got %+v", breaks)
	}
	fuelStop := breaks[0]
	if fuelStop.Kind != domain.BreakFuel {
		t.Fatalf("first break kind = %q, want fuel", fuelStop.Kind)
	}
	if math.Abs(fuelStop.DistanceFromStartMiles-350.0) > 1e-9 {
		t.Fatalf("fuel stop at mile %v, want 350", fuelStop.DistanceFromStartMiles)
	}
	if fuelStop.DurationMinutes != 20 {
		t.Fatalf("fuel stop duration = %d minutes, want 20", fuelStop.DurationMinutes)
	}

	// Only one fuel stop is planned per invocation.
	fuelCount := 0
	for _, b := range breaks {
		if b.Kind == domain.BreakFuel {
			fuelCount++
		}
	}
	if fuelCount != 1 {
		t.Fatalf("expected exactly one fuel stop, got %d", fuelCount)
	}
}

func TestPlanHOSBreaksFullTankNeedsNoFuelStop(t *testing.T) {
	// A full 300-gallon tank at 6.5mpg keeps the tank far above reserve at a
	// mile-400 break.
	breaks, _ := PlanHOSBreaks(500, 10, restedDriver(), domain.DefaultVehicleProfile())

	for _, b := range breaks {
		if b.Kind == domain.BreakFuel {
			t.Fatalf("unexpected fuel stop: %+v", b)
		}
	}
}
