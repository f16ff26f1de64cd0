// Package projection computes the 12-period streaming return-on-investment
// projection from a set of attendance and cost assumptions.
package projection

import (
	"fmt"
	"math"

	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/mathutil"
	"go.uber.org/zap"
)

// PeriodProjection holds the projected figures for one period.
type PeriodProjection struct {
	Period    int       // 1-indexed
	Viewers   int       // projected online viewers
	Revenue   float64   // projected online giving
	Costs     float64   // total operating cost
	ROI       float64   // percent, rounded to a whole number; may be ±Inf or NaN
	ROIStatus ROIStatus // finite unless Costs is zero
}

// Projection is the ordered sequence of period projections produced by one
// computation. The caller owns it outright.
type Projection []PeriodProjection

// Engine computes projections and reports non-finite ROI values through its
// logger. It holds no state between calls.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a projection engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Compute produces the projection for the given assumptions and logs every
// period whose ROI is not finite.
func (e *Engine) Compute(inputs AssumptionSet) Projection {
	result := Compute(inputs)
	for _, p := range result.Defects() {
		e.logger.Warn(fmt.Sprintf("ROI for period %d is %s because monthly costs are zero", p.Period, p.ROIStatus),
			zap.String("op", "projection.Compute"),
			zap.Int("period", p.Period),
			zap.Float64("revenue", p.Revenue),
			zap.Float64("costs", p.Costs),
		)
	}
	e.logger.Debug("projection computed",
		zap.String("op", "projection.Compute"),
		zap.Int("periods", len(result)),
		zap.Float64("finalROI", result.FinalROI()),
		zap.Float64("finalRevenue", result.FinalRevenue()),
	)
	return result
}

// Compute is the pure projection function. Identical inputs always yield an
// identical projection and every input, including negative and zero values,
// yields exactly constants.ProjectionPeriods records.
//
// When monthly costs are exactly zero the ROI follows floating-point
// division semantics (+Inf, -Inf or NaN) and the record's ROIStatus says so.
func Compute(inputs AssumptionSet) Projection {
	costs := inputs.MonthlyCosts()
	givingRate := inputs.AverageGiving * constants.OnlineGivingRatio
	baseViewers := mathutil.ApplyPercentage(float64(inputs.WeeklyAttendance), inputs.OnlineEngagement)

	result := make(Projection, 0, constants.ProjectionPeriods)
	for i := 0; i < constants.ProjectionPeriods; i++ {
		// Growth is additive off the base rate, not compounded. The explicit
		// conversion stops multiply-add fusion.
		growth := 1 + float64(float64(i)*constants.EngagementGrowthPerPeriod)
		viewers := math.Floor(baseViewers * growth)
		revenue := viewers * givingRate * constants.WeeksPerPeriod
		roi := mathutil.RoundHalfUp((revenue - costs) / costs * constants.PercentageMultiplier)

		result = append(result, PeriodProjection{
			Period:    i + 1,
			Viewers:   mathutil.FloorToInt(viewers),
			Revenue:   revenue,
			Costs:     costs,
			ROI:       roi,
			ROIStatus: StatusOf(roi),
		})
	}
	return result
}

// Periods returns the number of periods in the projection.
func (p Projection) Periods() int {
	return len(p)
}

// Final returns the last period of the projection. The second return value
// is false for an empty projection.
func (p Projection) Final() (PeriodProjection, bool) {
	if len(p) == 0 {
		return PeriodProjection{}, false
	}
	return p[len(p)-1], true
}

// FinalROI returns the ROI of the last period, the "first year ROI" headline.
// An empty projection reports NaN.
func (p Projection) FinalROI() float64 {
	last, ok := p.Final()
	if !ok {
		return math.NaN()
	}
	return last.ROI
}

// FinalRevenue returns the revenue of the last period, the "monthly revenue
// potential" headline.
func (p Projection) FinalRevenue() float64 {
	last, _ := p.Final()
	return last.Revenue
}

// Defects returns the periods whose ROI is not a finite number.
func (p Projection) Defects() []PeriodProjection {
	var defects []PeriodProjection
	for _, period := range p {
		if period.ROIStatus != ROIFinite {
			defects = append(defects, period)
		}
	}
	return defects
}
