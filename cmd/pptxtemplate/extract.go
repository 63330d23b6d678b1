package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/output"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/security"
)

var (
	outputPath string
	pretty     bool
	mode       string
	slidesDir  string
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <template.pptx>",
		Short: "Extract the editable structure of a template",
		Long: `extract lists every slide's shapes with their text, position and tables.
Write to .json for the structure report or to .xlsx for an update worksheet
that can be filled in and passed to the update command.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, .json or .xlsx (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&mode, "mode", "", "Extraction mode: light, standard, verbose (default from config)")
	cmd.Flags().StringVar(&slidesDir, "slides-dir", "", "Directory for per-slide output files")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	modeName := cfg.Extract.Mode
	if cmd.Flags().Changed("mode") {
		modeName = mode
	}
	extractMode, ok := pptxtemplate.ParseMode(modeName)
	if !ok {
		return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", modeName)
	}
	indent := pretty || cfg.Extract.Pretty

	s, err := pptxtemplate.Extract(args[0], pptxtemplate.Options{
		Mode:        extractMode,
		MaxFileSize: cfg.MaxFileSize(),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	switch {
	case outputPath != "":
		if err := writeStructure(s, outputPath, indent); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Structure extracted to: %s\n", outputPath)
	case slidesDir == "":
		data, err := output.ToJSON(s, indent)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if slidesDir != "" {
		if err := writeSlideFiles(s, slidesDir, indent); err != nil {
			return fmt.Errorf("failed to write slide files: %w", err)
		}
	}
	return nil
}

func writeStructure(s *models.TemplateStructure, path string, indent bool) error {
	abs, err := security.ValidateOutputFile(path, []string{".json", ".xlsx"})
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(abs), ".xlsx") {
		if err := output.WriteStructureXLSX(s, abs); err != nil {
			return fmt.Errorf("failed to write worksheet: %w", err)
		}
		return nil
	}
	data, err := output.ToJSON(s, indent)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeSlideFiles(s *models.TemplateStructure, dir string, indent bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, slide := range s.Slides {
		data, err := output.ToJSON(slide, indent)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("slide%d.json", slide.SlideNumber))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}
