// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/streaming-roi/internal/projection"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/mathutil"
)

// ValidateAssumptions checks an assumption set and returns warnings. The
// projection accepts any numeric input, so nothing here is an error.
func ValidateAssumptions(a projection.AssumptionSet) []string {
	var warnings []string

	if a.WeeklyAttendance < 0 {
		warnings = append(warnings, fmt.Sprintf("weeklyAttendance is negative (%d)", a.WeeklyAttendance))
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"averageGiving", a.AverageGiving},
		{"streamingCost", a.StreamingCost},
		{"equipmentCost", a.EquipmentCost},
		{"staffHours", a.StaffHours},
		{"onlineEngagement", a.OnlineEngagement},
	}
	for _, field := range fields {
		if !mathutil.IsFinite(field.value) {
			warnings = append(warnings, fmt.Sprintf("%s is not a finite number (%v)", field.name, field.value))
			continue
		}
		if field.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%v)", field.name, field.value))
		}
	}

	if a.OnlineEngagement > constants.MaxEngagementPercent {
		warnings = append(warnings, fmt.Sprintf("onlineEngagement exceeds %.0f%% (%v)",
			constants.MaxEngagementPercent, a.OnlineEngagement))
	}

	switch costs := a.MonthlyCosts(); {
	case costs == 0:
		warnings = append(warnings, "monthly costs are zero; ROI is undefined for every period (division by zero)")
	case mathutil.IsZero(costs):
		warnings = append(warnings, fmt.Sprintf("monthly costs are under one cent (%v); ROI will be extreme", costs))
	}

	return warnings
}
