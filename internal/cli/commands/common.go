package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/internal/logging"
	"github.com/ccollicutt/chatstat/pkg/analyzer"
	"github.com/ccollicutt/chatstat/pkg/chat"
	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/output"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Globals holds the persistent flags shared by every command.
type Globals struct {
	ConfigPath string
	LogLevel   string
	NoColor    bool
	Verbose    bool
	Quiet      bool
}

// env is what a command needs after flags are parsed.
type env struct {
	ctx context.Context
	cfg *config.Config
	log *logrus.Logger
}

// setup loads the configuration and builds the logger.
func (g *Globals) setup(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &env{ctx: ctx, cfg: cfg, log: log}, nil
}

// formatter returns the text formatter configured by the global flags.
func (g *Globals) formatter() output.Formatter {
	return output.NewTextFormatter(output.FormatOptions{
		Verbose: g.Verbose,
		Quiet:   g.Quiet,
		NoColor: g.NoColor,
	})
}

// chatFiles expands the positional chat-file arguments.
func chatFiles(args []string) ([]string, error) {
	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return nil, fmt.Errorf("expanding chat files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no chat files matched: %v", args)
	}
	return files, nil
}

// analyze loads one chat export and wraps it in an Analyzer.
func (e *env) analyze(path string) (*analyzer.Analyzer, error) {
	c, err := chat.Load(e.ctx, path, e.cfg.ParserOptions(e.log)...)
	if err != nil {
		return nil, err
	}
	return analyzer.New(c, analyzer.WithLogger(e.log)), nil
}

// print renders a report to the command's output.
func (g *Globals) print(cmd *cobra.Command, e *env, report *output.Report) error {
	if err := g.formatter().Format(e.ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
