package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/output"
)

// NewMembersCommand creates the members command.
func NewMembersCommand(g *Globals) *cobra.Command {
	frame := &frameFlags{}
	var words bool

	cmd := &cobra.Command{
		Use:   "members <chat-file>...",
		Short: "Count messages per member",
		Long: `Count the messages each member sent, optionally restricted to a time frame.

Each frame bound is tested on its own: --from-hour 22 --until-hour 23 counts
late-evening messages on every day of the chat. Unset bounds come from the
config file's frame, or span the whole chat.

Chat files may be globs. Each file is analyzed on its own. --words adds how
much each member wrote over the whole chat.

Example:
  chatstat members chat.txt
  chatstat members --from-month 6 --until-month 8 chat.txt
  chatstat members --words 'exports/*.txt'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembers(cmd, args, g, frame, words)
		},
	}

	frame.register(cmd)
	cmd.Flags().BoolVar(&words, "words", false, "Also show messages, words and words per message for each member")
	return cmd
}

func runMembers(cmd *cobra.Command, args []string, g *Globals, frame *frameFlags, words bool) error {
	e, err := g.setup(cmd)
	if err != nil {
		return err
	}

	files, err := chatFiles(args)
	if err != nil {
		return err
	}

	for _, path := range files {
		a, err := e.analyze(path)
		if err != nil {
			return err
		}

		base := a.DefaultFrame()
		if e.cfg.Frame != nil {
			base = *e.cfg.Frame
		}
		f, err := frame.apply(cmd, base)
		if err != nil {
			return err
		}

		report := output.NewReport(a)
		report.Add(output.NewTallyTable(fmt.Sprintf("Messages per member (%s)", describeFrame(f)), a.CountByMember(f)))
		if words {
			report.Add(output.NewWordsTable("Words per member (whole chat)", a.MessagesByMember()))
		}
		if err := g.print(cmd, e, report); err != nil {
			return err
		}
	}

	return nil
}
