package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/internal/logging"
	"github.com/ccollicutt/chatstat/pkg/analyzer"
	"github.com/ccollicutt/chatstat/pkg/chat"
	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/detector"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Diagnostic statuses.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <config-file> [chat-file...]",
		Short: "Diagnose configuration and chat export issues",
		Long: `Diagnose common problems with a configuration file and the chat exports it reads.

This command checks:
- Config file syntax and structure
- Chat file existence and content type
- How many lines the configured format parses
- Chronological order of the messages
- Members found and messages inside the configured frame

Exits with status 1 when any check fails.

Example:
  chatstat diagnose chatstat.yaml chat.txt
  chatstat diagnose -v chatstat.yaml 'exports/*.txt'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runDiagnose(cmd.Context(), args[0], args[1:])
			if printDiagnostics(cmd.OutOrStdout(), results, g.Verbose) > 0 {
				ExitCode = 1
			}
			return nil
		},
	}
}

func runDiagnose(ctx context.Context, configPath string, chatArgs []string) []DiagnosticResult {
	if ctx == nil {
		ctx = context.Background()
	}
	results := []DiagnosticResult{}

	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == StatusError {
		return results
	}

	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == StatusError {
		return results
	}

	if len(chatArgs) == 0 {
		return results
	}

	files, err := parser.ExpandGlobs(chatArgs)
	if err != nil {
		return append(results, DiagnosticResult{
			Check:   "Chat Files",
			Status:  StatusError,
			Message: err.Error(),
		})
	}

	for _, path := range files {
		results = append(results, checkChatFile(ctx, cfg, path)...)
	}
	return results
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'chatstat detect <chat-file> --write-config chatstat.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = StatusError
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = StatusError
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'chatstat detect <chat-file> --write-config chatstat.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = StatusOK
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = StatusOK
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Layout: %s", cfg.TimestampFormat.Layout),
		fmt.Sprintf("Parse policy: %s", cfg.ParsePolicy),
		fmt.Sprintf("Keywords: %d", len(cfg.Keywords)),
	}
	return cfg, result
}

// checkChatFile runs every check that needs the chat file itself.
func checkChatFile(ctx context.Context, cfg *config.Config, path string) []DiagnosticResult {
	result := checkChatContent(path)
	if result.Status == StatusError {
		return []DiagnosticResult{result}
	}
	results := []DiagnosticResult{result}

	c, result := checkParse(ctx, cfg, path)
	results = append(results, result)
	if c == nil || c.Len() == 0 {
		return results
	}

	results = append(results, checkOrder(c), checkMembers(c))
	if cfg.Frame != nil {
		results = append(results, checkFrame(c, *cfg.Frame))
	}
	return results
}

func checkChatContent(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Chat File: %s", path),
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		result.Status = StatusError
		result.Message = "File does not exist"
		result.Suggests = []string{"Check if the chat export path is correct"}
		return result
	case err != nil:
		result.Status = StatusError
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	case info.IsDir():
		result.Status = StatusError
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Use a glob pattern to match exports in a directory"}
		return result
	case info.Size() == 0:
		result.Status = StatusWarning
		result.Message = "File is empty (0 bytes)"
		return result
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		return result
	}
	if !isText(mtype) {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Not a text export (detected %s)", mtype.String())
		result.Suggests = []string{
			"Export the chat as plain text without media",
			"Unzip the export first if it was shared as an archive",
		}
		return result
	}

	result.Status = StatusOK
	result.Message = fmt.Sprintf("Text file (%d bytes, %s)", info.Size(), mtype.String())
	return result
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func checkParse(ctx context.Context, cfg *config.Config, path string) (*chat.Chat, DiagnosticResult) {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Parse: %s", path),
	}

	c, err := chat.Load(ctx, path, cfg.ParserOptions(logging.Discard())...)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Failed to parse: %v", err)
		if cfg.ParsePolicy == string(parser.PolicyStrict) {
			result.Suggests = []string{"Set parse_policy: lenient to skip lines whose timestamp does not parse"}
		}
		result.Suggests = append(result.Suggests, suggestFormat(ctx, path)...)
		return nil, result
	}

	stats := c.ParseStats()
	result.Details = []string{
		fmt.Sprintf("Lines: %d", stats.Lines),
		fmt.Sprintf("Messages: %d", stats.Parsed),
		fmt.Sprintf("Skipped (continuation or system lines): %d", stats.Skipped),
		fmt.Sprintf("Malformed: %d", stats.Malformed),
	}

	switch {
	case stats.Parsed == 0:
		result.Status = StatusError
		result.Message = "No messages parsed"
		result.Suggests = suggestFormat(ctx, path)
	case stats.Malformed > stats.Parsed:
		result.Status = StatusWarning
		result.Message = fmt.Sprintf("More malformed lines (%d) than messages (%d)", stats.Malformed, stats.Parsed)
		result.Suggests = suggestFormat(ctx, path)
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf("Parsed %d messages from %d lines", stats.Parsed, stats.Lines)
	}
	return c, result
}

// suggestFormat runs the detector and turns its best match into hints.
func suggestFormat(ctx context.Context, path string) []string {
	res, err := detector.New(detector.WithSampleSize(50)).DetectFromFile(ctx, path)
	if err != nil || !res.HasMatch() {
		return []string{"The timestamp layout may not match your export"}
	}
	best := res.BestMatch()
	return []string{
		fmt.Sprintf("Detected format: %s", best.Format.Name),
		fmt.Sprintf("Suggested layout: %s", best.Format.Layout),
		"Use 'chatstat detect " + path + "' for details",
	}
}

func checkOrder(c *chat.Chat) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Message Order",
	}

	idx := c.OutOfOrderAt()
	if idx < 0 {
		result.Status = StatusOK
		result.Message = "Messages are in chronological order"
		return result
	}

	m := c.Messages()[idx]
	result.Status = StatusWarning
	result.Message = fmt.Sprintf("Line %d is earlier than the message before it", m.LineNum)
	result.Details = []string{
		truncate(fmt.Sprintf("%s: %s", m.Author, m.Text), 80),
		"Daily series and breakdowns use the first and last message in file order",
	}
	return result
}

func checkMembers(c *chat.Chat) DiagnosticResult {
	members := c.Members()
	result := DiagnosticResult{
		Check:   "Members",
		Status:  StatusOK,
		Message: fmt.Sprintf("%d member(s), %d message(s)", len(members), c.Len()),
		Details: members,
	}
	if len(members) < 2 {
		result.Status = StatusWarning
		result.Suggests = []string{"A chat with one author may be a partial export"}
	}
	return result
}

func checkFrame(c *chat.Chat, frame analyzer.Frame) DiagnosticResult {
	result := DiagnosticResult{
		Check:   "Frame",
		Details: []string{describeFrame(frame)},
	}

	hits := analyzer.New(c).CountByMember(frame).Total()
	if hits == 0 {
		result.Status = StatusWarning
		result.Message = "No messages fall inside the configured frame"
		result.Suggests = []string{"Each bound is tested on its own; check that every interval overlaps the chat"}
		return result
	}

	result.Status = StatusOK
	result.Message = fmt.Sprintf("%d of %d messages inside the configured frame", hits, c.Len())
	return result
}

// printDiagnostics writes the report and returns the number of errors.
func printDiagnostics(w io.Writer, results []DiagnosticResult, verbose bool) int {
	fmt.Fprintln(w, "=== chatstat Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case StatusOK:
			icon = "PASS"
			okCount++
		case StatusWarning:
			icon = "WARN"
			warnCount++
		case StatusError:
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if verbose || r.Status != StatusOK {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	switch {
	case errCount > 0:
		fmt.Fprintln(w, "\nFix the errors above before running queries.")
	case warnCount > 0:
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	default:
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
	return errCount
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
