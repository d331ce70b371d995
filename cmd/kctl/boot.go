package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/duration"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

var bootCmd = &cobra.Command{
	Use:   "boot",
	Short: "Run the kernel-init sequence and the idle loop",
	Long: `Boot allocates a fresh Environment, registers the built-in
schemes, pushes the root context, spawns kinit, and runs the idle loop
(spec.md §4.7/§4.8): one pass as part of the vector 0xFF init and one
more pass afterwards — the hosted equivalent of reaching the
"halt until interrupt" steady state.`,
	Args: cobra.NoArgs,
	RunE: runBoot,
}

func init() {
	rootCmd.AddCommand(bootCmd)
}

func runBoot(cmd *cobra.Command, args []string) error {
	env, disp := newKernel()
	disp.IdleLoop()

	var clock duration.Duration
	env.ClockMonotonic.With(func(c *duration.Duration) { clock = *c })

	var count int
	env.Contexts.With(func(m *task.Manager) { count = len(m.All()) })

	fmt.Printf("booted: %d contexts, monotonic clock %d.%09ds\n", count, clock.Secs, clock.Nanos)
	return nil
}
