package projection

import "github.com/iwvelando/streaming-roi/pkg/constants"

// AssumptionSet holds the six user-supplied inputs that drive a projection.
// It is a value type: the With* methods return a modified copy and never
// change the receiver.
type AssumptionSet struct {
	WeeklyAttendance int     `json:"weeklyAttendance" yaml:"weeklyAttendance" mapstructure:"weeklyAttendance"` // people per week, in person
	AverageGiving    float64 `json:"averageGiving" yaml:"averageGiving" mapstructure:"averageGiving"`          // per person per week
	StreamingCost    float64 `json:"streamingCost" yaml:"streamingCost" mapstructure:"streamingCost"`          // per month, recurring
	EquipmentCost    float64 `json:"equipmentCost" yaml:"equipmentCost" mapstructure:"equipmentCost"`          // one time, amortized
	StaffHours       float64 `json:"staffHours" yaml:"staffHours" mapstructure:"staffHours"`                   // per week
	OnlineEngagement float64 `json:"onlineEngagement" yaml:"onlineEngagement" mapstructure:"onlineEngagement"` // percent of attendance
}

// DefaultAssumptions returns the assumptions a fresh session starts with.
func DefaultAssumptions() AssumptionSet {
	return AssumptionSet{
		WeeklyAttendance: constants.DefaultWeeklyAttendance,
		AverageGiving:    constants.DefaultAverageGiving,
		StreamingCost:    constants.DefaultStreamingCost,
		EquipmentCost:    constants.DefaultEquipmentCost,
		StaffHours:       constants.DefaultStaffHours,
		OnlineEngagement: constants.DefaultOnlineEngagement,
	}
}

func (a AssumptionSet) WithWeeklyAttendance(v int) AssumptionSet {
	a.WeeklyAttendance = v
	return a
}

func (a AssumptionSet) WithAverageGiving(v float64) AssumptionSet {
	a.AverageGiving = v
	return a
}

func (a AssumptionSet) WithStreamingCost(v float64) AssumptionSet {
	a.StreamingCost = v
	return a
}

func (a AssumptionSet) WithEquipmentCost(v float64) AssumptionSet {
	a.EquipmentCost = v
	return a
}

func (a AssumptionSet) WithStaffHours(v float64) AssumptionSet {
	a.StaffHours = v
	return a
}

func (a AssumptionSet) WithOnlineEngagement(v float64) AssumptionSet {
	a.OnlineEngagement = v
	return a
}

// MonthlyCosts returns the operating cost of one period: the recurring
// streaming cost, the amortized equipment cost and the staff cost.
func (a AssumptionSet) MonthlyCosts() float64 {
	// Explicit conversions keep the compiler from fusing multiply-add, so
	// results match step-by-step IEEE evaluation on every architecture.
	staff := float64(a.StaffHours * constants.StaffHourlyRate * constants.WeeksPerPeriod)
	equipment := a.EquipmentCost / constants.AmortizationPeriods
	return float64(a.StreamingCost+equipment) + staff
}
