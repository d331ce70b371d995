package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/trap"
)

var sendIRQCmd = &cobra.Command{
	Use:   "send-irq <irq>",
	Short: "Inject a hardware IRQ",
	Long: `Dispatch vector 0x20+irq through the trap dispatcher. For irq 1-15
(spec.md §4.6's IRQ fan-out range) this calls OnIRQ on every registered
scheme in order; irq 0 is vector 0x20, which the dispatcher handles as a
timer tick instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSendIRQ,
}

func init() {
	rootCmd.AddCommand(sendIRQCmd)
}

func runSendIRQ(cmd *cobra.Command, args []string) error {
	irq, err := strconv.Atoi(args[0])
	if err != nil || irq < 0 || irq > 15 {
		return fmt.Errorf("irq must be 0-15, got %q", args[0])
	}

	_, disp := newKernel()
	vector := uint8(0x20 + irq)
	disp.Dispatch(vector, &trap.Regs{})

	fmt.Printf("dispatched vector %#02x\n", vector)
	return nil
}
