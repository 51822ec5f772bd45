package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
)

// frameFlags binds the eight frame bounds to command flags.
type frameFlags struct {
	fromHour, untilHour   int
	fromDay, untilDay     int
	fromMonth, untilMonth int
	fromYear, untilYear   int
}

func (f *frameFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.fromHour, "from-hour", 0, "First hour of day counted (0-23)")
	flags.IntVar(&f.untilHour, "until-hour", 23, "Last hour of day counted (0-23)")
	flags.IntVar(&f.fromDay, "from-day", 1, "First day of month counted (1-31)")
	flags.IntVar(&f.untilDay, "until-day", 31, "Last day of month counted (1-31)")
	flags.IntVar(&f.fromMonth, "from-month", 1, "First month counted (1-12)")
	flags.IntVar(&f.untilMonth, "until-month", 12, "Last month counted (1-12)")
	flags.IntVar(&f.fromYear, "from-year", analyzer.MinFrameYear, "First year counted")
	flags.IntVar(&f.untilYear, "until-year", analyzer.MaxFrameYear, "Last year counted")
}

// apply overrides base with every bound set on the command line.
func (f *frameFlags) apply(cmd *cobra.Command, base analyzer.Frame) (analyzer.Frame, error) {
	set := func(name string, dst *int, v int) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("from-hour", &base.FromHour, f.fromHour)
	set("until-hour", &base.UntilHour, f.untilHour)
	set("from-day", &base.FromDay, f.fromDay)
	set("until-day", &base.UntilDay, f.untilDay)
	set("from-month", &base.FromMonth, f.fromMonth)
	set("until-month", &base.UntilMonth, f.untilMonth)
	set("from-year", &base.FromYear, f.fromYear)
	set("until-year", &base.UntilYear, f.untilYear)

	if err := base.Validate(); err != nil {
		return analyzer.Frame{}, err
	}
	return base, nil
}

func describeFrame(f analyzer.Frame) string {
	return fmt.Sprintf("hours %d-%d, days %d-%d, months %d-%d, years %d-%d",
		f.FromHour, f.UntilHour, f.FromDay, f.UntilDay,
		f.FromMonth, f.UntilMonth, f.FromYear, f.UntilYear)
}
