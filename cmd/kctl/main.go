// Command kctl boots and inspects a mini32k kernel instance.
//
// Commands:
//
//	boot      - run the kernel-init sequence and idle loop once
//	ps        - list contexts (the "context:" scheme)
//	mounts    - list registered schemes (the root "':'" listing)
//	stat      - stat a scheme:reference path
//	send-irq  - inject an IRQ vector
//	tick      - inject N timer ticks
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kctl:", err)
		os.Exit(1)
	}
}
