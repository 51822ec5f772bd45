package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <chat-file>",
		Short: "Detect the timestamp format of a chat export",
		Long: `Analyze a chat export to work out its timestamp format.

Samples lines from the file and tries each known export layout. Reports the
layout that parses the most lines and prints a ready-to-use YAML snippet.

Exports whose dates could be month-first or day-first (2/3/16) are reported
as ambiguous; check a line whose day is above 12 to confirm.

Optionally writes a starter config file with --write-config.

Example:
  chatstat detect chat.txt
  chatstat detect --sample 500 --all chat.txt
  chatstat detect -w chatstat.yaml chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, chatFile string, opts *DetectOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	if _, err := os.Stat(chatFile); os.IsNotExist(err) {
		return fmt.Errorf("chat file not found: %s", chatFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result, err := d.DetectFromFile(ctx, chatFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(w, result, opts.WriteConfig); err != nil {
			return err
		}
	}

	return printDetection(w, result, chatFile, opts)
}

func printDetection(w io.Writer, result *detector.DetectionResult, chatFile string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Timestamp Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", chatFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with timestamps: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No timestamp format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: The export may use an uncommon layout.")
		fmt.Fprintln(w, "Check the first few lines manually and set timestamp_format.layout in the config.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)

	if best.Format.Ambiguous {
		fmt.Fprintln(w, "WARNING: This format has date ordering ambiguity (M/D vs D/M).")
		fmt.Fprintln(w, "Please verify the layout matches your export.")
		fmt.Fprintln(w)
	}
	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	snippet, err := yaml.Marshal(struct {
		TimestampFormat config.TimestampConfig `yaml:"timestamp_format"`
	}{best.Config().TimestampFormat})
	if err != nil {
		return fmt.Errorf("encoding snippet: %w", err)
	}
	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, string(snippet))

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			fmt.Fprintf(w, "   layout: %q\n", m.Format.Layout)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// writeStarterConfig saves a config using the best detected format.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	if err := config.Save(configPath, result.BestMatch().Config()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}
