// Package constants provides shared constants for the streaming-roi application.
package constants

// Projection heuristics. These are product assumptions, kept as-is until a
// product owner supplies revised values.
const (
	// ProjectionPeriods is the number of periods (months) in a projection
	ProjectionPeriods = 12

	// EngagementGrowthPerPeriod is the additive relative growth applied to the
	// base engagement rate for each period after the first
	EngagementGrowthPerPeriod = 0.05

	// OnlineGivingRatio is the share of the in-person weekly gift an online
	// viewer is assumed to give
	OnlineGivingRatio = 0.6

	// WeeksPerPeriod approximates the number of giving weeks in a period
	WeeksPerPeriod = 4

	// StaffHourlyRate is the cost of one staff hour in currency units
	StaffHourlyRate = 25

	// AmortizationPeriods is the number of periods the equipment cost is spread over
	AmortizationPeriods = 12
)

// Default assumptions for a fresh session.
const (
	DefaultWeeklyAttendance = 500
	DefaultAverageGiving    = 50.0
	DefaultStreamingCost    = 500.0
	DefaultEquipmentCost    = 5000.0
	DefaultStaffHours       = 10.0
	DefaultOnlineEngagement = 20.0
)

// Numeric constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxEngagementPercent is the upper bound of the expected engagement range
	MaxEngagementPercent = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatChart is the terminal chart output format
	OutputFormatChart = "chart"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. STREAMING_ROI_LOGGING_LEVEL
	EnvPrefix = "STREAMING_ROI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
