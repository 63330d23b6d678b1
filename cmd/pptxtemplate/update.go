package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/output"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/security"
)

var (
	reportPath         string
	noOverflowWarnings bool
	strict             bool
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <template.pptx> <updates.json|updates.xlsx> <output.pptx>",
		Short: "Replace shape text in a template",
		Long: `update applies text replacements to the template and saves the result.
Instructions that fail are listed in the summary and the rest still apply.
With --strict the command still writes the output but exits non-zero when
any instruction failed.`,
		Args: cobra.ExactArgs(3),
		RunE: runUpdate,
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the update report as JSON to this file")
	cmd.Flags().BoolVar(&noOverflowWarnings, "no-overflow-warnings", false, "Disable text overflow warnings")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any instruction fails")
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	warn := cfg.Update.WarnOnOverflow && !noOverflowWarnings

	var reportFile string
	if reportPath != "" {
		abs, err := security.ValidateOutputFile(reportPath, []string{".json"})
		if err != nil {
			return err
		}
		reportFile = abs
	}

	report, err := pptxtemplate.UpdateFile(args[0], args[1], args[2], pptxtemplate.UpdateOptions{
		WarnOnOverflow: &warn,
		OverflowRatio:  cfg.Update.OverflowRatio,
		MaxFileSize:    cfg.MaxFileSize(),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if reportFile != "" {
		data, err := output.ToJSON(report, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(reportFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Debug("report written", zap.String("path", reportFile))
	}

	if err := output.RenderReport(cmd.OutOrStdout(), report, output.DefaultReportStyles()); err != nil {
		return err
	}
	if strict && !report.OK() {
		return fmt.Errorf("%d of %d updates failed", len(report.Errors), len(report.Errors)+report.UpdatesApplied)
	}
	return nil
}
