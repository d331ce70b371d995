package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/task"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List contexts",
	Long:  `List every context in the boot-time ContextManager (spec.md §4.4).`,
	Args:  cobra.NoArgs,
	RunE:  runPS,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPS(cmd *cobra.Command, args []string) error {
	env, _ := newKernel()

	var contexts []*task.Context
	env.Contexts.With(func(m *task.Manager) { contexts = m.All() })

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tNAME\tBLOCKED\tTIME\tFILES")
	for _, c := range contexts {
		fmt.Fprintf(w, "%d\t%s\t%t\t%d\t%d\n", c.PID, c.Name, c.Blocked, c.Time, len(c.Files))
	}
	return w.Flush()
}
