package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/kurl"
)

var mountsCmd = &cobra.Command{
	Use:   "mounts",
	Short: "List registered schemes",
	Long:  `Open the synthetic root directory ("':'", spec.md §4.3) and print its listing.`,
	Args:  cobra.NoArgs,
	RunE:  runMounts,
}

func init() {
	rootCmd.AddCommand(mountsCmd)
}

func runMounts(cmd *cobra.Command, args []string) error {
	env, _ := newKernel()

	url, err := kurl.Parse(":")
	if err != nil {
		return err
	}
	res, err := env.Open(url, 0)
	if err != nil {
		return err
	}
	defer res.Close()

	buf := make([]byte, 4096)
	n, err := res.Read(buf)
	if err != nil {
		return err
	}
	fmt.Println(string(buf[:n]))
	return nil
}
