package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/streaming-roi/internal/config"
	"github.com/iwvelando/streaming-roi/internal/projection"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/output"
	"github.com/iwvelando/streaming-roi/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func projectCmd() *cobra.Command {
	var configLocation string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Compute the 12 period projection and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, configLocation)
		},
	}

	defaults := projection.DefaultAssumptions()
	flags := cmd.Flags()
	flags.StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	flags.Int("weekly-attendance", defaults.WeeklyAttendance, "weekly in-person attendance")
	flags.Float64("average-giving", defaults.AverageGiving, "average weekly giving per person")
	flags.Float64("streaming-cost", defaults.StreamingCost, "monthly streaming cost")
	flags.Float64("equipment-cost", defaults.EquipmentCost, "one-time equipment investment")
	flags.Float64("staff-hours", defaults.StaffHours, "weekly staff hours")
	flags.Float64("online-engagement", defaults.OnlineEngagement, "expected online engagement as a percentage of in-person attendance")
	flags.String("output-format", "", "type of output override: pretty, csv, json, chart")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func runProject(cmd *cobra.Command, configLocation string) error {
	conf, err := config.LoadConfiguration(configLocation, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main.runProject"))
		return err
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runProject"),
		)
	}

	result := projection.NewEngine(logger).Compute(conf.Assumptions)

	if err := writeProjection(cmd.OutOrStdout(), outputFormat, conf.Assumptions, result, warnings); err != nil {
		logger.Error("failed to write projection",
			zap.String("op", "main.runProject"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func writeProjection(w io.Writer, outputFormat string, inputs projection.AssumptionSet, result projection.Projection, warnings []string) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, output.NewReport(inputs, result, warnings))
	case constants.OutputFormatChart:
		return output.ChartFormat(w, result)
	default:
		return output.PrettyFormat(w, result)
	}
}
