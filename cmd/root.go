// Package cmd wires the errsum command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errsum/errsum/internal/config"
	"github.com/errsum/errsum/internal/synth"
)

var versionString = "dev"

// SetVersion wires build metadata injected via ldflags.
func SetVersion(version, buildTime string) {
	versionString = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// NewRootCmd builds the command tree. A fresh instance per call keeps flag
// state out of tests.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errsum [flags] <file.go> ...",
		Short: "Generate per-function combined error types",
		Long: `errsum rewrites Go source files: every function annotated with an
//errsum:errors directive gets a synthesized error type wrapping its declared
source error kinds, and its result list is extended to return that type. The
function body is never touched.`,
		Version:       versionString,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.Flags().BoolP("write", "w", false, "write result back to the source file instead of stdout")
	cmd.Flags().StringP("config", "c", config.DefaultPath, "path to the YAML config")
	cmd.Flags().String("mode", "", "treatment of malformed directive arguments: lenient or strict")
	cmd.Flags().Bool("check-collisions", false, "fail on duplicate variant names instead of deferring to the compiler")

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "errsum:", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Flags win over the config file.
	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		if err := cfg.Mode.UnmarshalText([]byte(raw)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("check-collisions") {
		cfg.CheckCollisions, _ = cmd.Flags().GetBool("check-collisions")
	}

	opts := synth.Options{
		Strict:          cfg.Mode == config.ModeStrict,
		CheckCollisions: cfg.CheckCollisions,
		Directive:       cfg.Directive,
	}

	write, _ := cmd.Flags().GetBool("write")

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		out, err := synth.Generate(path, src, opts)
		if err != nil {
			return err
		}

		if write {
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			continue
		}

		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}
