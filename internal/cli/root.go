// Package cli provides the command-line interface for chatstat.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/internal/cli/commands"
	"github.com/ccollicutt/chatstat/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// An unknown first word may name a chatstat-<name> plugin
	potential := pluginCandidate(rootCmd, args)
	if potential != "" {
		if pluginPath, err := plugins.FindPlugin(potential); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
	}

	if err := rootCmd.Execute(); err != nil {
		if potential != "" {
			_, _ = fmt.Fprintln(stderr, plugins.FormatNotFoundError(potential))
			return 2
		}
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// pluginCandidate returns the first argument when it is neither a flag nor a built-in command.
func pluginCandidate(rootCmd *cobra.Command, args []string) string {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return ""
	}
	if isBuiltinCommand(rootCmd, args[0]) {
		return ""
	}
	return args[0]
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "chatstat",
		Short: "Statistics for exported group chats",
		Long: `chatstat reads a plain-text group chat export and reports who wrote how much,
and when.

It answers:
  - Messages per member, optionally within a time frame
  - Daily, hourly and monthly message frequency, optionally per keyword
  - Breakdowns by year, month, day or hour

Settings come from --config, then CHATSTAT_* environment variables (a .env file
in the working directory is read first).

PLUGINS:
  chatstat supports plugins for extended functionality. Plugins are standalone
  binaries named ` + plugins.Prefix + `<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the chatstat binary
    2. ~/.chatstat/plugins/
    3. Anywhere in PATH

  Known plugins:
    plot      Chart member activity
    export    Write query results as JSON or CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine
			_ = godotenv.Load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.ConfigPath, "config", "c", "", "Config file (defaults plus CHATSTAT_* overrides when unset)")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error), overrides the config")
	flags.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Show parse accounting and passing check details")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "Print only a one-line summary")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(commands.NewMembersCommand(g))
	rootCmd.AddCommand(commands.NewFrequencyCommand(g))
	rootCmd.AddCommand(commands.NewBreakdownCommand(g))
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
