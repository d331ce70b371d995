package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/duration"
	"github.com/vvlevchenko/mini32k/kernel/trap"
)

var tickCmd = &cobra.Command{
	Use:   "tick [count]",
	Short: "Inject N timer ticks",
	Long: `Dispatch vector 0x20 count times (default 1), advancing both clocks by
PIT_DURATION each time and rescheduling (spec.md §4.6/§8's tick-monotonicity
property).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTick,
}

func init() {
	rootCmd.AddCommand(tickCmd)
}

func runTick(cmd *cobra.Command, args []string) error {
	count := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("count must be a non-negative integer, got %q", args[0])
		}
		count = n
	}

	env, disp := newKernel()
	for i := 0; i < count; i++ {
		disp.Dispatch(0x20, &trap.Regs{})
	}

	var clock duration.Duration
	env.ClockMonotonic.With(func(c *duration.Duration) { clock = *c })
	fmt.Printf("monotonic clock after %d tick(s): %d.%09ds\n", count, clock.Secs, clock.Nanos)
	return nil
}
