package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/fsyscall"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Stat a scheme:reference path",
	Long:  `Resolve path against the boot context's cwd and print its Stat record (spec.md §3/§6).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	env, _ := newKernel()

	var out stat.Stat
	if err := fsyscall.Stat(env, args[0], &out); err != nil {
		return err
	}

	fmt.Printf("mode=%o size=%d blocks=%d mtime=%d.%09d\n",
		out.Mode, out.Size, out.Blocks, out.Mtime, out.MtimeNsec)
	return nil
}
