package projection

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/mathutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestComputeDefaultAssumptions(t *testing.T) {
	result := Compute(DefaultAssumptions())

	expected := []struct {
		viewers int
		revenue float64
		roi     float64
	}{
		{100, 12000, 526},
		{105, 12600, 557},
		{110, 13200, 589},
		{114, 13680, 614}, // 500*0.2*1.15 floors to 114
		{120, 14400, 651},
		{125, 15000, 683},
		{130, 15600, 714},
		{135, 16200, 745},
		{140, 16800, 777},
		{145, 17400, 808},
		{150, 18000, 839},
		{155, 18600, 870},
	}

	if len(result) != len(expected) {
		t.Fatalf("expected %d periods, got %d", len(expected), len(result))
	}

	for i, want := range expected {
		got := result[i]
		if got.Period != i+1 {
			t.Errorf("period %d: Period = %d", i+1, got.Period)
		}
		if got.Viewers != want.viewers {
			t.Errorf("period %d: Viewers = %d, expected %d", i+1, got.Viewers, want.viewers)
		}
		if got.Revenue != want.revenue {
			t.Errorf("period %d: Revenue = %.2f, expected %.2f", i+1, got.Revenue, want.revenue)
		}
		if !mathutil.WithinTolerance(got.Costs, 1916.6666666666667, 1e-9) {
			t.Errorf("period %d: Costs = %v, expected 1916.67", i+1, got.Costs)
		}
		if got.ROI != want.roi {
			t.Errorf("period %d: ROI = %v, expected %v", i+1, got.ROI, want.roi)
		}
		if got.ROIStatus != ROIFinite {
			t.Errorf("period %d: ROIStatus = %s, expected finite", i+1, got.ROIStatus)
		}
	}

	if result.FinalROI() != 870 {
		t.Errorf("FinalROI() = %v, expected 870", result.FinalROI())
	}
	if result.FinalRevenue() != 18600 {
		t.Errorf("FinalRevenue() = %v, expected 18600", result.FinalRevenue())
	}
}

func TestComputeAlwaysReturnsAllPeriods(t *testing.T) {
	tests := []struct {
		name   string
		inputs AssumptionSet
	}{
		{"Defaults", DefaultAssumptions()},
		{"All zero", AssumptionSet{}},
		{"Negative values", AssumptionSet{
			WeeklyAttendance: -200,
			AverageGiving:    -5,
			StreamingCost:    -100,
			EquipmentCost:    -1200,
			StaffHours:       -3,
			OnlineEngagement: -40,
		}},
		{"Engagement above range", DefaultAssumptions().WithOnlineEngagement(250)},
		{"Zero costs", DefaultAssumptions().WithStreamingCost(0).WithEquipmentCost(0).WithStaffHours(0)},
		{"Non-finite engagement", DefaultAssumptions().WithOnlineEngagement(math.Inf(1))},
		{"NaN giving", DefaultAssumptions().WithAverageGiving(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.inputs)
			if len(result) != constants.ProjectionPeriods {
				t.Fatalf("expected %d periods, got %d", constants.ProjectionPeriods, len(result))
			}
			for i, p := range result {
				if p.Period != i+1 {
					t.Errorf("record %d has Period %d", i, p.Period)
				}
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	inputs := DefaultAssumptions().WithStaffHours(17.5).WithOnlineEngagement(33.3)

	first := Compute(inputs)
	second := Compute(inputs)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Compute() returned different results for identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestComputeViewersNonDecreasing(t *testing.T) {
	for _, engagement := range []float64{0, 1, 7.5, 20, 63, 100} {
		result := Compute(DefaultAssumptions().WithOnlineEngagement(engagement))
		for i := 1; i < len(result); i++ {
			if result[i].Viewers < result[i-1].Viewers {
				t.Errorf("engagement %.1f: viewers decreased from %d to %d at period %d",
					engagement, result[i-1].Viewers, result[i].Viewers, result[i].Period)
			}
		}
	}
}

func TestComputeZeroAudience(t *testing.T) {
	tests := []struct {
		name   string
		inputs AssumptionSet
	}{
		{"Zero attendance", DefaultAssumptions().WithWeeklyAttendance(0)},
		{"Zero engagement", DefaultAssumptions().WithOnlineEngagement(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range Compute(tt.inputs) {
				if p.Viewers != 0 {
					t.Errorf("period %d: Viewers = %d, expected 0", p.Period, p.Viewers)
				}
				if p.Revenue != 0 {
					t.Errorf("period %d: Revenue = %v, expected 0", p.Period, p.Revenue)
				}
				// All revenue is lost, so ROI is -100%.
				if p.ROI != -100 {
					t.Errorf("period %d: ROI = %v, expected -100", p.Period, p.ROI)
				}
			}
		})
	}
}

func TestComputeZeroCosts(t *testing.T) {
	zeroCosts := DefaultAssumptions().WithStreamingCost(0).WithEquipmentCost(0).WithStaffHours(0)

	tests := []struct {
		name   string
		inputs AssumptionSet
		status ROIStatus
		check  func(float64) bool
	}{
		{"Positive revenue", zeroCosts, ROIPositiveInfinity, func(v float64) bool { return math.IsInf(v, 1) }},
		{"Negative revenue", zeroCosts.WithAverageGiving(-10), ROINegativeInfinity, func(v float64) bool { return math.IsInf(v, -1) }},
		{"Zero revenue", zeroCosts.WithWeeklyAttendance(0), ROIUndefined, math.IsNaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.inputs)
			if len(result) != constants.ProjectionPeriods {
				t.Fatalf("expected %d periods, got %d", constants.ProjectionPeriods, len(result))
			}
			for _, p := range result {
				if p.Costs != 0 {
					t.Errorf("period %d: Costs = %v, expected 0", p.Period, p.Costs)
				}
				if !tt.check(p.ROI) {
					t.Errorf("period %d: unexpected ROI %v", p.Period, p.ROI)
				}
				if p.ROIStatus != tt.status {
					t.Errorf("period %d: ROIStatus = %s, expected %s", p.Period, p.ROIStatus, tt.status)
				}
			}
			if got := len(result.Defects()); got != constants.ProjectionPeriods {
				t.Errorf("Defects() returned %d periods, expected %d", got, constants.ProjectionPeriods)
			}
		})
	}
}

func TestMonthlyCosts(t *testing.T) {
	tests := []struct {
		name     string
		inputs   AssumptionSet
		expected float64
	}{
		{"Defaults", DefaultAssumptions(), 1916.6666666666667},
		{"Streaming only", AssumptionSet{StreamingCost: 250}, 250},
		{"Equipment amortized over twelve periods", AssumptionSet{EquipmentCost: 1200}, 100},
		{"Staff at 25 per hour for 4 weeks", AssumptionSet{StaffHours: 2}, 200},
		{"Zero", AssumptionSet{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inputs.MonthlyCosts(); !mathutil.WithinTolerance(got, tt.expected, 1e-9) {
				t.Errorf("MonthlyCosts() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestWithMethodsReturnCopies(t *testing.T) {
	base := DefaultAssumptions()
	edited := base.WithWeeklyAttendance(1000).WithAverageGiving(10).WithOnlineEngagement(50)

	if base != DefaultAssumptions() {
		t.Fatalf("With* mutated the receiver: %+v", base)
	}
	if edited.WeeklyAttendance != 1000 || edited.AverageGiving != 10 || edited.OnlineEngagement != 50 {
		t.Fatalf("With* did not apply edits: %+v", edited)
	}
	if edited.StreamingCost != base.StreamingCost {
		t.Fatalf("With* changed unrelated field: %+v", edited)
	}
}

func TestFinalOnEmptyProjection(t *testing.T) {
	var empty Projection
	if _, ok := empty.Final(); ok {
		t.Fatal("expected Final() to report false for empty projection")
	}
	if !math.IsNaN(empty.FinalROI()) {
		t.Errorf("FinalROI() = %v, expected NaN", empty.FinalROI())
	}
	if empty.FinalRevenue() != 0 {
		t.Errorf("FinalRevenue() = %v, expected 0", empty.FinalRevenue())
	}
}

func TestEngineLogsNonFiniteROI(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewEngine(zap.New(core))

	result := engine.Compute(DefaultAssumptions().WithStreamingCost(0).WithEquipmentCost(0).WithStaffHours(0))
	if len(result) != constants.ProjectionPeriods {
		t.Fatalf("expected %d periods, got %d", constants.ProjectionPeriods, len(result))
	}

	if logs.Len() != constants.ProjectionPeriods {
		t.Fatalf("expected %d warnings, got %d", constants.ProjectionPeriods, logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["op"] != "projection.Compute" {
		t.Errorf("expected op field projection.Compute, got %v", entry.ContextMap()["op"])
	}
}

func TestEngineMatchesPureCompute(t *testing.T) {
	inputs := DefaultAssumptions().WithWeeklyAttendance(320)
	if got, want := NewEngine(nil).Compute(inputs), Compute(inputs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Engine.Compute() = %+v, expected %+v", got, want)
	}
}

func TestPeriodProjectionJSON(t *testing.T) {
	tests := []struct {
		name    string
		period  PeriodProjection
		wantROI interface{}
		status  string
	}{
		{"Finite", PeriodProjection{Period: 1, Viewers: 100, Revenue: 12000, Costs: 1916.67, ROI: 526, ROIStatus: ROIFinite}, 526.0, "finite"},
		{"Positive infinity", PeriodProjection{Period: 2, ROI: math.Inf(1), ROIStatus: ROIPositiveInfinity}, nil, "positive-infinity"},
		{"Undefined", PeriodProjection{Period: 3, ROI: math.NaN(), ROIStatus: ROIUndefined}, nil, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.period)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}

			var raw map[string]interface{}
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if raw["roi"] != tt.wantROI {
				t.Errorf("roi = %v, expected %v", raw["roi"], tt.wantROI)
			}
			if raw["roiStatus"] != tt.status {
				t.Errorf("roiStatus = %v, expected %s", raw["roiStatus"], tt.status)
			}

			var decoded PeriodProjection
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if decoded.ROIStatus != tt.period.ROIStatus {
				t.Errorf("decoded ROIStatus = %s, expected %s", decoded.ROIStatus, tt.period.ROIStatus)
			}
			if StatusOf(decoded.ROI) != tt.period.ROIStatus {
				t.Errorf("decoded ROI %v does not match status %s", decoded.ROI, tt.period.ROIStatus)
			}
		})
	}
}

func TestROIStatusText(t *testing.T) {
	var status ROIStatus
	if err := status.UnmarshalText([]byte("negative-infinity")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if status != ROINegativeInfinity {
		t.Errorf("UnmarshalText() = %s, expected negative-infinity", status)
	}
	if err := status.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for unknown status")
	}
	if _, err := ROIStatus(42).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown status")
	}
	if ROIStatus(42).String() != "ROIStatus(42)" {
		t.Errorf("String() = %s", ROIStatus(42).String())
	}
}
