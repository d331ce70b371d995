package builtin

import (
	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
)

// Config supplies the optional collaborators the built-in schemes need
// (spec.md §1's narrow-interface reduction of each out-of-scope
// device). Every field is optional; a nil value degrades the
// corresponding scheme to a harmless stub rather than a boot failure.
type Config struct {
	Term      Termsize
	Allocator Allocator
	NIC       NIC
	InitfsTar map[string][]byte
	DisplayW  int
	DisplayH  int
}

// Install builds the ordered list of built-in schemes spec.md §4.8
// names: "debug, initfs, context, display, env, interrupt, klog,
// memory, test, disk, and network". PS/2, serial, and PCI-discovered
// devices are hardware enumeration with no hosted analogue and are
// intentionally absent (spec.md §1).
func Install(env *environment.Environment, cfg Config) []scheme.Scheme {
	width, height := cfg.DisplayW, cfg.DisplayH
	if width == 0 {
		width = 640
	}
	if height == 0 {
		height = 400
	}
	return []scheme.Scheme{
		NewDebugScheme(env, cfg.Term),
		NewInitfsScheme(cfg.InitfsTar),
		NewContextScheme(env),
		NewDisplayScheme(width, height),
		NewEnvScheme(env),
		NewInterruptScheme(env),
		NewKlogScheme(env),
		NewMemoryScheme(cfg.Allocator),
		NewTestScheme(),
		NewDiskScheme(env),
		NewNetworkScheme(cfg.NIC),
	}
}
