package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatstat configuration file without reading any chat.

Checks:
  - YAML syntax
  - Required fields and allowed values
  - Line pattern validity
  - Frame bounds
  - CHATSTAT_* environment overrides`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Pattern:      %s\n", cfg.TimestampFormat.Pattern)
	fmt.Fprintf(w, "  Layout:       %s\n", cfg.TimestampFormat.Layout)
	fmt.Fprintf(w, "  Delimiter:    %q\n", cfg.Delimiter)
	fmt.Fprintf(w, "  Parse policy: %s\n", cfg.ParsePolicy)
	fmt.Fprintf(w, "  Normalize:    %t\n", cfg.Normalize)
	fmt.Fprintf(w, "  Log level:    %s\n", cfg.LogLevel)
	if cfg.Frame != nil {
		fmt.Fprintf(w, "  Frame:        %s\n", describeFrame(*cfg.Frame))
	}

	if len(cfg.Keywords) > 0 {
		fmt.Fprintf(w, "\nKeywords:\n")
		for i, k := range cfg.Keywords {
			fmt.Fprintf(w, "  %d. %s\n", i+1, k)
		}
	}

	return nil
}
