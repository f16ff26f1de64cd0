// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/streaming-roi/internal/projection"
)

// FindPeriod finds a period by its 1-based number in the projection.
// Returns a pointer to the period if found, nil otherwise.
func FindPeriod(result projection.Projection, period int) *projection.PeriodProjection {
	for i := range result {
		if result[i].Period == period {
			return &result[i]
		}
	}
	return nil
}

// ZeroCostAssumptions returns the default assumptions with every cost input
// zeroed, which drives each period's ROI to positive infinity.
func ZeroCostAssumptions() projection.AssumptionSet {
	return projection.DefaultAssumptions().
		WithStreamingCost(0).
		WithEquipmentCost(0).
		WithStaffHours(0)
}
