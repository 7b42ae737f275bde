package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Koagonzalo/XcodeGen/pkg/report"
	"github.com/Koagonzalo/XcodeGen/pkg/spec"
	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "xcodegen",
	Short:        "Project spec tooling",
	Long:         "xcodegen checks declarative project specs for consistency before generation.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// --- validate ---

var (
	validateDisable     []string
	validateToolVersion string
	validateFormat      string
	validateWhere       string
)

var validateCmd = &cobra.Command{
	Use:   "validate [project.yml]",
	Short: "Validate a project spec and report every violation",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(validateFormat)
	if err != nil {
		return err
	}
	toolVersion := validateToolVersion
	if toolVersion == "" && version != "dev" {
		toolVersion = version
	}
	n, err := validateSpec(cmd.OutOrStdout(), args[0], validateRequest{
		Disabled:    spec.ParseCategories(validateDisable...),
		ToolVersion: toolVersion,
		Format:      format,
		Where:       validateWhere,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("validation failed with %d error(s)", n)
	}
	return nil
}

type validateRequest struct {
	Disabled    []spec.ValidationCategory
	ToolVersion string
	Format      report.Format
	Where       string
}

// validateSpec runs the version check and the validation pipeline on one
// file, renders the result to w and returns the number of errors shown.
func validateSpec(w io.Writer, path string, req validateRequest) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yml" && ext != ".yaml" {
		slog.Warn("spec file does not have a YAML extension", "path", path)
	}

	opts := validate.Options{Disabled: req.Disabled, Logger: slog.Default()}
	sum, errs, err := report.Check(path, report.Request{Options: opts, ToolVersion: req.ToolVersion, Where: req.Where})
	if err != nil {
		return 0, err
	}
	if err := report.Render(w, req.Format, sum, errs); err != nil {
		return 0, fmt.Errorf("render report: %w", err)
	}
	return report.ErrorCount(errs), nil
}

// --- schema ---

var schemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the project JSON Schema",
	RunE:  runSchemaExport,
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	data, err := spec.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	if schemaOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(schemaOut, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	slog.Info("schema written", "path", schemaOut)
	return nil
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xcodegen %s (build: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log validation phases at debug level")

	validateCmd.Flags().StringArrayVar(&validateDisable, "disable", nil, "Disable a validation category (missingConfigs, missingConfigFiles, missingTestPlans), repeatable")
	validateCmd.Flags().StringVar(&validateToolVersion, "tool-version", "", "Check this version against options.minimumXcodeGenVersion (default: the binary's version)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format: text, json, or markdown")
	validateCmd.Flags().StringVar(&validateWhere, "where", "", `Only report violations matching an expression, e.g. 'Kind == "invalidTargetSource"'`)

	schemaExportCmd.Flags().StringVar(&schemaOut, "out", "", "Write the schema to a file instead of stdout")
	schemaCmd.AddCommand(schemaExportCmd)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}
